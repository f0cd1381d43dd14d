package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, surname, email, phone, password_hash, signature, role, schedule, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El índice único sobre email decide altas simultáneas.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	schedule, err := toJSON(nonNilDays(user.Schedule))
	if err != nil {
		return err
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		user.ID, user.Name, user.Surname, user.Email, user.Phone, user.PasswordHash, user.Signature,
		user.Role, schedule, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email; nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List lista usuarios, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// SetPasswordIfEmpty actualización condicional: solo escribe si password_hash está vacío.
func (r *UserRepo) SetPasswordIfEmpty(ctx context.Context, id, hash string, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1 AND password_hash = ''`,
		id, hash, now)
	if err != nil {
		return false, fmt.Errorf("set password: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SetSignatureIfEmpty actualización condicional: solo escribe si signature está vacía.
func (r *UserRepo) SetSignatureIfEmpty(ctx context.Context, id, signature string, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET signature = $2, updated_at = $3 WHERE id = $1 AND signature = ''`,
		id, signature, now)
	if err != nil {
		return false, fmt.Errorf("set signature: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateRole sobrescribe el rol; nil si el usuario no existe.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string, now time.Time) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx,
		`UPDATE users SET role = $2, updated_at = $3 WHERE id = $1 RETURNING `+userColumns,
		id, role, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return u, nil
}

// UpdateSchedule sobrescribe el horario personalizado; nil si el usuario no existe.
func (r *UserRepo) UpdateSchedule(ctx context.Context, id string, schedule []entity.ScheduleDay, now time.Time) (*entity.User, error) {
	raw, err := toJSON(nonNilDays(schedule))
	if err != nil {
		return nil, err
	}
	u, err := scanUser(r.q.QueryRow(ctx,
		`UPDATE users SET schedule = $2, updated_at = $3 WHERE id = $1 RETURNING `+userColumns,
		id, raw, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update schedule: %w", err)
	}
	return u, nil
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	var schedule []byte
	err := row.Scan(
		&u.ID, &u.Name, &u.Surname, &u.Email, &u.Phone, &u.PasswordHash, &u.Signature,
		&u.Role, &schedule, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(schedule, &u.Schedule); err != nil {
		return nil, err
	}
	return &u, nil
}

func nonNilDays(days []entity.ScheduleDay) []entity.ScheduleDay {
	if days == nil {
		return []entity.ScheduleDay{}
	}
	return days
}
