package dto

import "time"

// CreateTicketRequest entrada para crear un ticket.
type CreateTicketRequest struct {
	Folio               string   `json:"folio" validate:"required,max=60"`
	Title               string   `json:"nombreTrabajo" validate:"required,max=200"`
	Description         string   `json:"descripcion" validate:"required"`
	SiteID              string   `json:"siteId" validate:"required"`
	Salesperson         string   `json:"vendedor" validate:"max=120"`
	CompanyID           string   `json:"empresaId"`
	Photos              []string `json:"fotos" validate:"max=15"`
	TechnicianSignature string   `json:"firmaTecnico"`
	TechnicianName      string   `json:"nombreTecnico" validate:"max=120"`
}

// SignTicketRequest firma remota del cliente.
type SignTicketRequest struct {
	Signature  string `json:"signature" validate:"required"`
	ClientName string `json:"nombreCliente" validate:"required,max=120"`
}

// AppendPhotosRequest fotos adicionales de evidencia.
type AppendPhotosRequest struct {
	Photos []string `json:"fotos" validate:"required,min=1,max=15"`
}

// TicketResponse salida completa de un ticket.
type TicketResponse struct {
	ID                  string     `json:"id"`
	Folio               string     `json:"folio"`
	Title               string     `json:"nombreTrabajo"`
	Description         string     `json:"descripcion"`
	SiteID              string     `json:"siteId"`
	Salesperson         string     `json:"vendedor"`
	CompanyID           *string    `json:"empresaId"`
	Photos              []string   `json:"fotos"`
	TechnicianSignature string     `json:"firmaTecnico,omitempty"`
	TechnicianName      string     `json:"nombreTecnico,omitempty"`
	ClientSignature     string     `json:"firmaCliente,omitempty"`
	ClientName          string     `json:"nombreCliente,omitempty"`
	Status              string     `json:"estado"`
	ClientDownloads     int        `json:"descargasPdfCliente"`
	SignedAt            *time.Time `json:"firmadoEn,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// PublicTicketResponse proyección reducida para la liga de firma remota.
// Si el ticket ya está firmado solo se informan AlreadySigned y DownloadsRemaining.
type PublicTicketResponse struct {
	ID                 string   `json:"id"`
	Folio              string   `json:"folio,omitempty"`
	Title              string   `json:"nombreTrabajo,omitempty"`
	Description        string   `json:"descripcion,omitempty"`
	Photos             []string `json:"fotos,omitempty"`
	AlreadySigned      bool     `json:"alreadySigned"`
	DownloadsRemaining *int     `json:"downloadsRemaining,omitempty"`
}

// TicketDownloadResponse datos para que el cliente genere el PDF.
type TicketDownloadResponse struct {
	Ticket             TicketResponse   `json:"ticket"`
	Site               *SiteResponse    `json:"site"`
	Company            *CompanyResponse `json:"company"`
	DownloadsRemaining int              `json:"downloadsRemaining"`
}
