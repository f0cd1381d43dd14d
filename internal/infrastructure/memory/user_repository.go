package memory

import (
	"context"
	"sync"
	"time"

	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria con índice único por correo.
type UserRepo struct {
	t *table[entity.User]

	// emailMu serializa altas para que el índice por correo sea la última palabra.
	emailMu sync.Mutex
	byEmail map[string]string
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{
		t: newTable(func(u *entity.User) *entity.User {
			c := *u
			c.Schedule = cloneDays(u.Schedule)
			return &c
		}, func(u *entity.User) time.Time { return u.CreatedAt }),
		byEmail: make(map[string]string),
	}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.emailMu.Lock()
	defer r.emailMu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}
	r.byEmail[user.Email] = user.ID
	r.t.insert(user.ID, user)
	return nil
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.t.get(id), nil
}

// GetByEmail obtiene un usuario por correo; nil si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.emailMu.Lock()
	id, ok := r.byEmail[email]
	r.emailMu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.t.get(id), nil
}

// List lista usuarios, más recientes primero.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	return r.t.list(nil), nil
}

// SetPasswordIfEmpty guarda el hash solo si la cuenta no tenía contraseña.
func (r *UserRepo) SetPasswordIfEmpty(_ context.Context, id, hash string, now time.Time) (bool, error) {
	u := r.t.mutate(id, func(u *entity.User) bool {
		if u.PasswordHash != "" {
			return false
		}
		u.PasswordHash = hash
		u.UpdatedAt = now
		return true
	})
	return u != nil, nil
}

// SetSignatureIfEmpty guarda la firma solo si la cuenta no tenía una.
func (r *UserRepo) SetSignatureIfEmpty(_ context.Context, id, signature string, now time.Time) (bool, error) {
	u := r.t.mutate(id, func(u *entity.User) bool {
		if u.Signature != "" {
			return false
		}
		u.Signature = signature
		u.UpdatedAt = now
		return true
	})
	return u != nil, nil
}

// UpdateRole sobrescribe el rol; nil si el usuario no existe.
func (r *UserRepo) UpdateRole(_ context.Context, id, role string, now time.Time) (*entity.User, error) {
	return r.t.mutate(id, func(u *entity.User) bool {
		u.Role = role
		u.UpdatedAt = now
		return true
	}), nil
}

// UpdateSchedule sobrescribe el horario personalizado; nil si el usuario no existe.
func (r *UserRepo) UpdateSchedule(_ context.Context, id string, schedule []entity.ScheduleDay, now time.Time) (*entity.User, error) {
	return r.t.mutate(id, func(u *entity.User) bool {
		u.Schedule = cloneDays(schedule)
		u.UpdatedAt = now
		return true
	}), nil
}
