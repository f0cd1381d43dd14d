package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

// AttendanceUseCase registros pareados entrada/salida y su sincronización sin conexión.
type AttendanceUseCase struct {
	repo      repository.AttendanceRepository
	media     ports.MediaStore
	publisher ports.EventPublisher
	now       func() time.Time
}

func NewAttendanceUseCase(repo repository.AttendanceRepository, media ports.MediaStore, publisher ports.EventPublisher) *AttendanceUseCase {
	return &AttendanceUseCase{repo: repo, media: media, publisher: publisher, now: time.Now}
}

// List filtra por usuario y fecha, más recientes primero.
func (uc *AttendanceUseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.AttendanceResponse, error) {
	if err := dto.Validate(f); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.AttendanceFilter{UserID: f.UserID, Date: f.Date})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttendanceResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *dto.FromAttendance(a))
	}
	return items, nil
}

// Create guarda un registro nuevo; el id enviado por el cliente se ignora.
func (uc *AttendanceUseCase) Create(ctx context.Context, in dto.AttendanceRequest) (*dto.AttendanceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	a, err := uc.insert(ctx, entity.NewID(), in)
	if err != nil {
		return nil, err
	}
	out := dto.FromAttendance(a)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicAttendance, "attendance_saved", out))
	return out, nil
}

// Sync aplica la cola del modo sin conexión. Un id temporal del cliente (no es un id del
// servidor) se inserta como registro nuevo; un id del servidor se fusiona y los campos no
// vacíos del cliente sobrescriben. Un id del servidor que ya no existe se vuelve a insertar
// con el mismo id.
func (uc *AttendanceUseCase) Sync(ctx context.Context, in dto.AttendanceSyncRequest) (*dto.AttendanceSyncResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	res := &dto.AttendanceSyncResponse{
		IDs:     make(map[string]string, len(in.Records)),
		Records: make([]dto.AttendanceResponse, 0, len(in.Records)),
	}
	for i, rec := range in.Records {
		clientID := strings.TrimSpace(rec.ID)
		var (
			a   *entity.Attendance
			err error
		)
		if entity.ValidID(clientID) {
			a, err = uc.merge(ctx, clientID, rec)
			if err == nil && a == nil {
				a, err = uc.insert(ctx, clientID, rec)
				res.Inserted++
			} else if err == nil {
				res.Merged++
			}
		} else {
			a, err = uc.insert(ctx, entity.NewID(), rec)
			res.Inserted++
		}
		if err != nil {
			return nil, fmt.Errorf("registro %d: %w", i+1, err)
		}
		if clientID != "" {
			res.IDs[clientID] = a.ID
		}
		res.Records = append(res.Records, *dto.FromAttendance(a))
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicAttendance, "attendance_synced", map[string]int{
		"insertados":   res.Inserted,
		"actualizados": res.Merged,
	}))
	return res, nil
}

func (uc *AttendanceUseCase) insert(ctx context.Context, id string, in dto.AttendanceRequest) (*entity.Attendance, error) {
	entry, err := uc.storePunch(ctx, in.Entry)
	if err != nil {
		return nil, err
	}
	exit, err := uc.storePunch(ctx, in.Exit)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	a := &entity.Attendance{
		ID:        id,
		UserID:    strings.TrimSpace(in.UserID),
		UserName:  strings.TrimSpace(in.UserName),
		Date:      in.Date,
		Service:   strings.TrimSpace(in.Service),
		Entry:     entry,
		Exit:      exit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// merge devuelve nil si el registro no existe.
func (uc *AttendanceUseCase) merge(ctx context.Context, id string, in dto.AttendanceRequest) (*entity.Attendance, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.UserID); v != "" {
		a.UserID = v
	}
	if v := strings.TrimSpace(in.UserName); v != "" {
		a.UserName = v
	}
	if in.Date != "" {
		a.Date = in.Date
	}
	if v := strings.TrimSpace(in.Service); v != "" {
		a.Service = v
	}
	if in.Entry != nil {
		if a.Entry, err = uc.storePunch(ctx, in.Entry); err != nil {
			return nil, err
		}
	}
	if in.Exit != nil {
		if a.Exit, err = uc.storePunch(ctx, in.Exit); err != nil {
			return nil, err
		}
	}
	a.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AttendanceUseCase) storePunch(ctx context.Context, p *entity.Punch) (*entity.Punch, error) {
	if p == nil {
		return nil, nil
	}
	if p.Time.IsZero() {
		return nil, fmt.Errorf("%w: la marca requiere hora", domain.ErrInvalidInput)
	}
	out := *p
	photo, err := uc.media.Store(ctx, ports.MediaPhoto, p.Photo)
	if err != nil {
		return nil, err
	}
	out.Photo = photo
	return &out, nil
}
