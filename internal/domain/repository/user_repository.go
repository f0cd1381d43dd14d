package repository

import (
	"context"
	"time"

	"github.com/naisata/servicios-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create devuelve domain.ErrEmailAlreadyExists si el correo ya existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// SetPasswordIfEmpty y SetSignatureIfEmpty son actualizaciones condicionales:
	// devuelven false si el dato ya estaba configurado (o el usuario no existe).
	SetPasswordIfEmpty(ctx context.Context, id, hash string, now time.Time) (bool, error)
	SetSignatureIfEmpty(ctx context.Context, id, signature string, now time.Time) (bool, error)
	UpdateRole(ctx context.Context, id, role string, now time.Time) (*entity.User, error)
	UpdateSchedule(ctx context.Context, id string, schedule []entity.ScheduleDay, now time.Time) (*entity.User, error)
}
