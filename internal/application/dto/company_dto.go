package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name string `json:"nombre" validate:"required,min=1,max=200"`
	Logo string `json:"logo"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Logo *string `json:"logo"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Logo      string    `json:"logo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateSiteRequest entrada para crear un sitio.
type CreateSiteRequest struct {
	Name      string `json:"nombre" validate:"required,min=1,max=200"`
	Location  string `json:"ubicacion" validate:"required,max=500"`
	Logo      string `json:"logo"`
	CompanyID string `json:"companyId"`
}

// UpdateSiteRequest entrada para actualizar un sitio (campos opcionales).
// Un companyId vacío desvincula el sitio de su empresa.
type UpdateSiteRequest struct {
	Name      *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Location  *string `json:"ubicacion" validate:"omitempty,max=500"`
	CompanyID *string `json:"companyId"`
}

// UpdateLogoRequest reemplazo del logo de un sitio.
type UpdateLogoRequest struct {
	Logo string `json:"logo" validate:"required"`
}

// SiteResponse salida de un sitio.
type SiteResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Location  string    `json:"ubicacion"`
	Logo      string    `json:"logo"`
	CompanyID *string   `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteResponse resultado de un borrado con sus efectos secundarios.
type DeleteResponse struct {
	Message  string `json:"message"`
	Affected int64  `json:"afectados"`
}
