package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/naisata/servicios-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo documentos únicos por clave en la tabla settings.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.q.QueryRow(ctx, `SELECT data FROM settings WHERE name = $1`, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings %s: %w", key, err)
	}
	return data, nil
}

func (r *SettingsRepo) Put(ctx context.Context, key string, data []byte) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO settings (name, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		key, data)
	if err != nil {
		return fmt.Errorf("put settings %s: %w", key, err)
	}
	return nil
}

// InsertIfAbsent inserta el documento por defecto; si otra instancia lo creó antes, devuelve el suyo.
func (r *SettingsRepo) InsertIfAbsent(ctx context.Context, key string, data []byte) ([]byte, error) {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO settings (name, data, updated_at) VALUES ($1, $2, now()) ON CONFLICT (name) DO NOTHING`,
		key, data); err != nil {
		return nil, fmt.Errorf("insert settings %s: %w", key, err)
	}
	return r.Get(ctx, key)
}
