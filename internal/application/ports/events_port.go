package ports

import (
	"context"
	"time"
)

// Tópicos de notificación: uno por tipo de entidad.
const (
	TopicCompanies  = "companies"
	TopicSites      = "sites"
	TopicTickets    = "tickets"
	TopicUsers      = "users"
	TopicSettings   = "settings"
	TopicCheckIns   = "checkins"
	TopicSchedules  = "schedules"
	TopicAttendance = "attendance"
	TopicVacations  = "vacations"
	TopicConfig     = "config"
)

// AllTopics lista de tópicos conocidos, en el orden en que se documentan.
var AllTopics = []string{
	TopicCompanies, TopicSites, TopicTickets, TopicUsers, TopicSettings,
	TopicCheckIns, TopicSchedules, TopicAttendance, TopicVacations, TopicConfig,
}

// Event aviso de cambio para los visores conectados ("refresca tu vista").
type Event struct {
	Topic   string    `json:"topic"`
	Name    string    `json:"event"`
	Payload any       `json:"data,omitempty"`
	At      time.Time `json:"at"`
}

// NewEvent construye un evento con la hora actual.
func NewEvent(topic, name string, payload any) Event {
	return Event{Topic: topic, Name: name, Payload: payload, At: time.Now().UTC()}
}

// EventPublisher puerto de salida para el fan-out de notificaciones.
// Publish nunca bloquea la petición esperando la entrega: es de mejor esfuerzo.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
