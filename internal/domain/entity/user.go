package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "empleado"
)

// ValidRole informa si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleEmployee
}

// AccountState etapa de configuración de una cuenta.
type AccountState int

const (
	AccountRegistered  AccountState = iota // sin contraseña
	AccountPasswordSet                     // con contraseña, sin firma
	AccountActive                          // contraseña y firma
)

// User representa un empleado (técnico o administrador).
type User struct {
	ID           string
	Name         string
	Surname      string
	Email        string
	Phone        string
	PasswordHash string // bcrypt; vacío = cuenta heredada sin contraseña
	Signature    string // data URI o referencia al almacén de medios
	Role         string
	Schedule     []ScheduleDay
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword informa si la cuenta ya configuró contraseña.
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

// HasSignature informa si la cuenta ya registró firma.
func (u *User) HasSignature() bool { return u.Signature != "" }

// State devuelve la etapa más avanzada alcanzada por la cuenta.
func (u *User) State() AccountState {
	switch {
	case !u.HasPassword():
		return AccountRegistered
	case !u.HasSignature():
		return AccountPasswordSet
	default:
		return AccountActive
	}
}
