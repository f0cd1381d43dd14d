package entity

import "time"

// Company empresa cliente a la que se le prestan servicios.
type Company struct {
	ID        string
	Name      string
	Logo      string // data URI o URL del almacén de medios
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Site sitio de trabajo; CompanyID es una referencia blanda (puede quedar colgando o en nil).
type Site struct {
	ID        string
	Name      string
	Location  string
	Logo      string
	CompanyID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
