package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/pkg/logger"
)

func recv(t *testing.T, sub *Subscription) ports.Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no llegó el evento")
		return ports.Event{}
	}
}

func TestHub_FiltraPorTopico(t *testing.T) {
	hub := NewHub(logger.Nop(), 4)
	tickets := hub.Subscribe(ports.TopicTickets)
	all := hub.Subscribe()
	defer hub.Unsubscribe(tickets)
	defer hub.Unsubscribe(all)

	ctx := context.Background()
	hub.Publish(ctx, ports.NewEvent(ports.TopicSites, "new_site", nil))
	hub.Publish(ctx, ports.NewEvent(ports.TopicTickets, "new_ticket", map[string]string{"id": "t1"}))

	assert.Equal(t, "new_ticket", recv(t, tickets).Name)
	assert.Equal(t, "new_site", recv(t, all).Name)
	assert.Equal(t, "new_ticket", recv(t, all).Name)
	assert.Len(t, tickets.Events(), 0)
}

func TestHub_BufferLlenoDescartaSinBloquear(t *testing.T) {
	hub := NewHub(logger.Nop(), 2)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Publish(context.Background(), ports.NewEvent(ports.TopicUsers, "user_updated", nil))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish bloqueó con un suscriptor lento")
	}
	assert.Equal(t, int64(8), sub.Dropped())
}

func TestHub_UnsubscribeCierraCanal(t *testing.T) {
	hub := NewHub(nil, 0)
	sub := hub.Subscribe(ports.TopicConfig)
	require.Equal(t, 1, hub.Len())

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Len())

	_, ok := <-sub.Events()
	assert.False(t, ok)

	// Publicar sin suscriptores no hace nada.
	hub.Publish(context.Background(), ports.NewEvent(ports.TopicConfig, "config_updated", nil))
}

func newUnreachableBridge(hub *Hub) *RedisBridge {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewRedisBridge(client, hub, "naisata:events:", logger.Nop())
}

func TestRedisBridge_EntregaLocalAunqueRedisFalle(t *testing.T) {
	hub := NewHub(logger.Nop(), 4)
	sub := hub.Subscribe(ports.TopicTickets)
	defer hub.Unsubscribe(sub)

	bridge := newUnreachableBridge(hub)
	defer bridge.client.Close()
	assert.Equal(t, "naisata:events:tickets", bridge.channel(ports.TopicTickets))

	bridge.Publish(context.Background(), ports.NewEvent(ports.TopicTickets, "ticket_signed", map[string]string{"ticketId": "t1"}))
	assert.Equal(t, "ticket_signed", recv(t, sub).Name)
}

func TestRedisBridge_RelayIgnoraPropiosYDecodifica(t *testing.T) {
	hub := NewHub(logger.Nop(), 4)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)
	bridge := newUnreachableBridge(hub)
	defer bridge.client.Close()
	ctx := context.Background()

	own, err := json.Marshal(envelope{Origin: bridge.origin, Event: ports.NewEvent(ports.TopicSites, "new_site", nil)})
	require.NoError(t, err)
	assert.False(t, bridge.relay(ctx, string(own)))

	remote, err := json.Marshal(envelope{Origin: "otra-instancia", Event: ports.NewEvent(ports.TopicSites, "site_deleted", map[string]string{"id": "s1"})})
	require.NoError(t, err)
	assert.True(t, bridge.relay(ctx, string(remote)))

	ev := recv(t, sub)
	assert.Equal(t, "site_deleted", ev.Name)
	payload, ok := ev.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "s1", payload["id"])

	assert.False(t, bridge.relay(ctx, "no-es-json"))
}
