package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var _ repository.VacationRepository = (*VacationRepo)(nil)

const vacationColumns = `id, user_id, user_name, start_date, end_date, reason, status, reviewed_by, created_at, updated_at`

// VacationRepo solicitudes de vacaciones sobre PostgreSQL.
type VacationRepo struct {
	q Querier
}

// NewVacationRepository construye el adaptador.
func NewVacationRepository(q Querier) *VacationRepo {
	return &VacationRepo{q: q}
}

func (r *VacationRepo) Create(ctx context.Context, v *entity.Vacation) error {
	query := `INSERT INTO vacations (` + vacationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.q.Exec(ctx, query,
		v.ID, v.UserID, v.UserName, v.StartDate, v.EndDate, v.Reason, v.Status, v.ReviewedBy, v.CreatedAt, v.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert vacation: %w", err)
	}
	return nil
}

func (r *VacationRepo) GetByID(ctx context.Context, id string) (*entity.Vacation, error) {
	v, err := scanVacation(r.q.QueryRow(ctx, `SELECT `+vacationColumns+` FROM vacations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vacation: %w", err)
	}
	return v, nil
}

func (r *VacationRepo) List(ctx context.Context, f repository.VacationFilter) ([]*entity.Vacation, error) {
	var w whereBuilder
	w.eq("user_id", f.UserID)
	w.eq("status", f.Status)
	rows, err := r.q.Query(ctx, `SELECT `+vacationColumns+` FROM vacations`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vacation
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vacation: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VacationRepo) UpdateStatus(ctx context.Context, id, status, reviewedBy string, now time.Time) (*entity.Vacation, error) {
	v, err := scanVacation(r.q.QueryRow(ctx,
		`UPDATE vacations SET status = $2, reviewed_by = $3, updated_at = $4 WHERE id = $1 RETURNING `+vacationColumns,
		id, status, reviewedBy, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update vacation status: %w", err)
	}
	return v, nil
}

func scanVacation(row pgxScanner) (*entity.Vacation, error) {
	var v entity.Vacation
	if err := row.Scan(
		&v.ID, &v.UserID, &v.UserName, &v.StartDate, &v.EndDate, &v.Reason, &v.Status, &v.ReviewedBy,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}
