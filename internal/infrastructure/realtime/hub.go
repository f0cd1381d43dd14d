// Package realtime implementa el fan-out de notificaciones hacia los visores conectados.
//
// La entrega es de mejor esfuerzo: cada suscriptor tiene un buffer acotado y, si está
// lleno, el evento se descarta para ese suscriptor. Los eventos solo significan
// "refresca tu vista", así que perder uno no deja datos inconsistentes.
package realtime

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/pkg/logger"
)

// DefaultBufferSize tamaño del canal por suscriptor.
const DefaultBufferSize = 64

var _ ports.EventPublisher = (*Hub)(nil)

// Subscription conexión registrada en el Hub. Events se cierra al desuscribir.
type Subscription struct {
	ch      chan ports.Event
	topics  map[string]bool // vacío = todos los tópicos
	dropped atomic.Int64
}

// Events canal de lectura de la suscripción.
func (s *Subscription) Events() <-chan ports.Event { return s.ch }

// Dropped cuántos eventos se descartaron por buffer lleno.
func (s *Subscription) Dropped() int64 { return s.dropped.Load() }

func (s *Subscription) wants(topic string) bool {
	return len(s.topics) == 0 || s.topics[topic]
}

// Hub registro de suscriptores de todo el proceso.
type Hub struct {
	mu      sync.RWMutex
	subs    map[*Subscription]struct{}
	bufSize int
	log     *logger.Logger
}

// NewHub crea un Hub vacío. bufSize <= 0 usa DefaultBufferSize.
func NewHub(log *logger.Logger, bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		subs:    make(map[*Subscription]struct{}),
		bufSize: bufSize,
		log:     log,
	}
}

// Subscribe registra un suscriptor para los tópicos dados (ninguno = todos).
func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		ch:     make(chan ports.Event, h.bufSize),
		topics: make(map[string]bool, len(topics)),
	}
	for _, t := range topics {
		if t != "" {
			sub.topics[t] = true
		}
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	h.log.Debug().Int("subscribers", n).Strs("topics", topics).Msg("visor conectado")
	return sub
}

// Unsubscribe retira al suscriptor y cierra su canal. Es idempotente.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
	n := len(h.subs)
	h.mu.Unlock()
	h.log.Debug().Int("subscribers", n).Int64("dropped", sub.Dropped()).Msg("visor desconectado")
}

// Publish entrega el evento a los suscriptores interesados sin bloquear.
// Los envíos ocurren bajo el candado de lectura, así que nunca compiten con el close de Unsubscribe.
func (h *Hub) Publish(_ context.Context, ev ports.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if !sub.wants(ev.Topic) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			sub.dropped.Add(1)
		}
	}
}

// Len número de suscriptores conectados.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
