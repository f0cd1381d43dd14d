package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

var (
	_ repository.CheckInRepository    = (*CheckInRepo)(nil)
	_ repository.AttendanceRepository = (*AttendanceRepo)(nil)
	_ repository.ScheduleRepository   = (*ScheduleRepo)(nil)
)

// whereBuilder arma cláusulas WHERE de igualdad con parámetros posicionales.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) eq(expr string, v string) {
	if v == "" {
		return
	}
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf("%s = $%d", expr, len(w.args)))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// CheckInRepo bitácora del reloj checador.
type CheckInRepo struct {
	q Querier
}

// NewCheckInRepository construye el adaptador.
func NewCheckInRepository(q Querier) *CheckInRepo {
	return &CheckInRepo{q: q}
}

const checkInColumns = `id, user_id, user_name, type, service, lat, lng, photo, distance_meters, late, minutes_late, created_at`

func (r *CheckInRepo) Create(ctx context.Context, c *entity.CheckIn) error {
	query := `INSERT INTO checkins (` + checkInColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UserID, c.UserName, c.Type, c.Service, c.Lat, c.Lng, c.Photo,
		c.DistanceMeters, c.Late, c.MinutesLate, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert checkin: %w", err)
	}
	return nil
}

// List filtra por usuario y por día calendario UTC de creación.
func (r *CheckInRepo) List(ctx context.Context, f repository.AttendanceFilter) ([]*entity.CheckIn, error) {
	var w whereBuilder
	w.eq("user_id", f.UserID)
	w.eq("to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')", f.Date)
	rows, err := r.q.Query(ctx, `SELECT `+checkInColumns+` FROM checkins`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()
	var list []*entity.CheckIn
	for rows.Next() {
		var c entity.CheckIn
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.UserName, &c.Type, &c.Service, &c.Lat, &c.Lng, &c.Photo,
			&c.DistanceMeters, &c.Late, &c.MinutesLate, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// AttendanceRepo registros pareados entrada/salida.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador.
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

const attendanceColumns = `id, user_id, user_name, date, service, entry, exit, created_at, updated_at`

func (r *AttendanceRepo) Create(ctx context.Context, a *entity.Attendance) error {
	entry, exit, err := punches(a)
	if err != nil {
		return err
	}
	query := `INSERT INTO attendance (` + attendanceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.q.Exec(ctx, query,
		a.ID, a.UserID, a.UserName, a.Date, a.Service, entry, exit, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepo) GetByID(ctx context.Context, id string) (*entity.Attendance, error) {
	a, err := scanAttendance(r.q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return a, nil
}

func (r *AttendanceRepo) Update(ctx context.Context, a *entity.Attendance) error {
	entry, exit, err := punches(a)
	if err != nil {
		return err
	}
	query := `
		UPDATE attendance SET user_id = $2, user_name = $3, date = $4, service = $5, entry = $6, exit = $7, updated_at = $8
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query,
		a.ID, a.UserID, a.UserName, a.Date, a.Service, entry, exit, a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepo) List(ctx context.Context, f repository.AttendanceFilter) ([]*entity.Attendance, error) {
	var w whereBuilder
	w.eq("user_id", f.UserID)
	w.eq("date", f.Date)
	rows, err := r.q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance`+w.String()+` ORDER BY created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	var list []*entity.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func punches(a *entity.Attendance) (entry, exit []byte, err error) {
	if entry, err = toJSON(a.Entry); err != nil {
		return nil, nil, err
	}
	if exit, err = toJSON(a.Exit); err != nil {
		return nil, nil, err
	}
	return entry, exit, nil
}

func scanAttendance(row pgxScanner) (*entity.Attendance, error) {
	var a entity.Attendance
	var entry, exit []byte
	if err := row.Scan(&a.ID, &a.UserID, &a.UserName, &a.Date, &a.Service, &entry, &exit, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSON(entry, &a.Entry); err != nil {
		return nil, err
	}
	if err := fromJSON(exit, &a.Exit); err != nil {
		return nil, err
	}
	return &a, nil
}

// ScheduleRepo horarios globales nombrados.
type ScheduleRepo struct {
	q Querier
}

// NewScheduleRepository construye el adaptador.
func NewScheduleRepository(q Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

const scheduleColumns = `id, name, days, geofence, created_at, updated_at`

func (r *ScheduleRepo) Create(ctx context.Context, s *entity.Schedule) error {
	days, geofence, err := scheduleJSON(s)
	if err != nil {
		return err
	}
	query := `INSERT INTO schedules (` + scheduleColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, days, geofence, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (*entity.Schedule, error) {
	s, err := scanSchedule(r.q.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return s, nil
}

func (r *ScheduleRepo) Update(ctx context.Context, s *entity.Schedule) error {
	days, geofence, err := scheduleJSON(s)
	if err != nil {
		return err
	}
	query := `UPDATE schedules SET name = $2, days = $3, geofence = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, days, geofence, s.UpdatedAt); err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepo) List(ctx context.Context) ([]*entity.Schedule, error) {
	rows, err := r.q.Query(ctx, `SELECT `+scheduleColumns+` FROM schedules ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()
	var list []*entity.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete schedule: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scheduleJSON(s *entity.Schedule) (days, geofence []byte, err error) {
	if days, err = toJSON(nonNilDays(s.Days)); err != nil {
		return nil, nil, err
	}
	if geofence, err = toJSON(s.Geofence); err != nil {
		return nil, nil, err
	}
	return days, geofence, nil
}

func scanSchedule(row pgxScanner) (*entity.Schedule, error) {
	var s entity.Schedule
	var days, geofence []byte
	if err := row.Scan(&s.ID, &s.Name, &days, &geofence, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSON(days, &s.Days); err != nil {
		return nil, err
	}
	if err := fromJSON(geofence, &s.Geofence); err != nil {
		return nil, err
	}
	return &s, nil
}
