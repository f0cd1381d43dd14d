package repository

import (
	"context"
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// TicketRepository define el puerto de persistencia para Ticket.
// Las operaciones de escritura única y cuota son atómicas en el adaptador:
// nunca se implementan como lectura seguida de escritura.
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	ListBySite(ctx context.Context, siteID string) ([]*entity.Ticket, error)
	// AppendPhotos agrega al final de la lista; devuelve nil si el ticket no existe.
	AppendPhotos(ctx context.Context, id string, photos []string, now time.Time) (*entity.Ticket, error)
	// SignIfUnsigned guarda la firma del cliente solo si no había una; marca el ticket terminado.
	SignIfUnsigned(ctx context.Context, id, signature, clientName string, now time.Time) (bool, error)
	// IncrementDownloads suma una descarga solo si el ticket está firmado y no alcanzó max.
	// Devuelve el ticket actualizado o nil si la condición no se cumplió.
	IncrementDownloads(ctx context.Context, id string, max int, now time.Time) (*entity.Ticket, error)
	DeleteBySite(ctx context.Context, siteID string) (int64, error)
	UnlinkCompany(ctx context.Context, companyID string) (int64, error)
}
