package dto

import (
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// RegisterRequest alta de cuenta. Password y firma son opcionales (cuentas en migración).
type RegisterRequest struct {
	Name      string `json:"nombre" validate:"required,max=120"`
	Surname   string `json:"apellido" validate:"required,max=120"`
	Email     string `json:"correo" validate:"required,email"`
	Phone     string `json:"telefono" validate:"required,max=30"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	Signature string `json:"firma"`
}

// LoginRequest entrada para iniciar sesión.
type LoginRequest struct {
	Email    string `json:"correo" validate:"required"`
	Password string `json:"password"`
}

// SetPasswordRequest primer paso de configuración de una cuenta heredada.
type SetPasswordRequest struct {
	Email    string `json:"correo" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// SetSignatureRequest segundo paso: requiere confirmar la contraseña.
type SetSignatureRequest struct {
	Email     string `json:"correo" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Signature string `json:"firma" validate:"required"`
}

// AssignRoleRequest cambio de rol (solo admin).
type AssignRoleRequest struct {
	Role string `json:"rol" validate:"required,oneof=admin empleado"`
}

// AssignScheduleRequest horario personalizado por día (solo admin).
type AssignScheduleRequest struct {
	Schedule []entity.ScheduleDay `json:"horario" validate:"max=7"`
}

// UserResponse salida de un usuario (sin password ni firma).
type UserResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"nombre"`
	Surname      string               `json:"apellido"`
	Email        string               `json:"correo"`
	Phone        string               `json:"telefono"`
	Role         string               `json:"rol"`
	Schedule     []entity.ScheduleDay `json:"horario"`
	HasPassword  bool                 `json:"tienePassword"`
	HasSignature bool                 `json:"tieneFirma"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}
