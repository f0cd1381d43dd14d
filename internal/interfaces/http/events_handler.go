package http

import (
	"bufio"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/infrastructure/realtime"
	"github.com/naisata/servicios-api/pkg/logger"
)

// DefaultHeartbeat intervalo del comentario keep-alive en el stream SSE.
const DefaultHeartbeat = 25 * time.Second

// EventsHandler canal Server-Sent Events para los visores. Sin autenticación.
type EventsHandler struct {
	hub       *realtime.Hub
	log       *logger.Logger
	heartbeat time.Duration
	done      <-chan struct{}
}

// NewEventsHandler done se cierra al apagar el servidor para liberar los streams abiertos.
func NewEventsHandler(hub *realtime.Hub, log *logger.Logger, heartbeat time.Duration, done <-chan struct{}) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EventsHandler{hub: hub, log: log, heartbeat: heartbeat, done: done}
}

// Stream godoc
// @Summary      Notificaciones en tiempo real (SSE)
// @Description  Cada evento llega como "event: <nombre>" con data JSON {topic, event, data, at}. Sin topics recibe todos.
// @Tags         events
// @Produce      text/event-stream
// @Param        topics  query  string  false  "Lista separada por comas: companies,sites,tickets,users,settings,checkins,schedules,attendance,vacations,config"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	topics, err := parseTopics(c.Query("topics"))
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	sub := h.hub.Subscribe(topics...)
	encode := c.App().Config().JSONEncoder
	done := h.done
	heartbeat := h.heartbeat
	log := h.log

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.hub.Unsubscribe(sub)
		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		if _, err := w.WriteString("retry: 3000\n\n"); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				data, err := encode(ev)
				if err != nil {
					log.Warn().Err(err).Str("event", ev.Name).Msg("evento no serializable")
					continue
				}
				if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, data); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				// Un flush fallido significa que el visor se desconectó.
				if err := w.Flush(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}))
	return nil
}

func parseTopics(raw string) ([]string, error) {
	var topics []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !slices.Contains(ports.AllTopics, t) {
			return nil, fmt.Errorf("%w: tópico desconocido %q", domain.ErrInvalidInput, t)
		}
		topics = append(topics, t)
	}
	return topics, nil
}
