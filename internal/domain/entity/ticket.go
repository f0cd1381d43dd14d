package entity

import "time"

// Estados de un ticket.
const (
	TicketPending  = "pendiente"
	TicketFinished = "terminado"
)

// Ticket entregable de un servicio en sitio.
type Ticket struct {
	ID                  string
	Folio               string
	Title               string
	Description         string
	SiteID              string
	Salesperson         string
	CompanyID           *string
	Photos              []string
	TechnicianSignature string
	TechnicianName      string
	ClientSignature     string // escritura única
	ClientName          string
	Status              string
	ClientDownloads     int
	SignedAt            *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsSigned informa si el cliente ya firmó.
func (t *Ticket) IsSigned() bool { return t.ClientSignature != "" }

// DownloadsRemaining descargas que le quedan al cliente con el tope dado.
func (t *Ticket) DownloadsRemaining(max int) int {
	if r := max - t.ClientDownloads; r > 0 {
		return r
	}
	return 0
}
