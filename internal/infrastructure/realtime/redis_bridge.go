package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/pkg/config"
	"github.com/naisata/servicios-api/pkg/logger"
)

const publishTimeout = 2 * time.Second

var _ ports.EventPublisher = (*RedisBridge)(nil)

// envelope formato en el canal de Redis. Origin evita reentregar a la instancia que publicó.
type envelope struct {
	Origin string      `json:"origin"`
	Event  ports.Event `json:"event"`
}

// RedisBridge comparte el fan-out entre varias instancias de la API.
// Cada evento se entrega primero al Hub local y luego se publica en <prefix>:<topic>;
// Run reenvía al Hub local lo que publican las demás instancias.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
	prefix string
	origin string
	log    *logger.Logger
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return client, nil
}

// NewRedisBridge construye el puente sobre un cliente ya conectado.
func NewRedisBridge(client *redis.Client, hub *Hub, prefix string, log *logger.Logger) *RedisBridge {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisBridge{
		client: client,
		hub:    hub,
		prefix: strings.TrimSuffix(prefix, ":"),
		origin: entity.NewID(),
		log:    log,
	}
}

func (b *RedisBridge) channel(topic string) string {
	return b.prefix + ":" + topic
}

// Publish entrega localmente y publica en Redis en segundo plano.
// Un fallo de Redis solo se registra: los visores locales ya recibieron el evento.
func (b *RedisBridge) Publish(ctx context.Context, ev ports.Event) {
	b.hub.Publish(ctx, ev)

	data, err := json.Marshal(envelope{Origin: b.origin, Event: ev})
	if err != nil {
		b.log.Warn().Err(err).Str("topic", ev.Topic).Msg("no se pudo serializar evento")
		return
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := b.client.Publish(pubCtx, b.channel(ev.Topic), data).Err(); err != nil {
			b.log.Warn().Err(err).Str("topic", ev.Topic).Str("event", ev.Name).Msg("publicar en Redis")
		}
	}()
}

// Run escucha <prefix>:* hasta que ctx termine.
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, b.channel("*"))
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("suscribir a Redis: %w", err)
	}
	b.log.Info().Str("pattern", b.channel("*")).Msg("puente Redis activo")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.relay(ctx, msg.Payload)
		}
	}
}

// relay decodifica un mensaje remoto y lo entrega al Hub local.
func (b *RedisBridge) relay(ctx context.Context, payload string) bool {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		b.log.Warn().Err(err).Msg("mensaje de Redis inválido")
		return false
	}
	if env.Origin == b.origin || env.Event.Topic == "" {
		return false
	}
	b.hub.Publish(ctx, env.Event)
	return true
}
