package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/naisata/servicios-api/internal/application/dto"
	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/domain/repository"
	"github.com/naisata/servicios-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Policy reglas de alta que dependen de la revisión del esquema de cuentas.
type Policy struct {
	EmailDomain      string // sufijo obligatorio, ej. "@naisata.com"
	RequireSignature bool   // la revisión vigente exige firma para completar el alta
}

// dummyHash se compara cuando el correo no existe para no revelar, por tiempo de respuesta,
// qué cuentas están registradas.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("cuenta-inexistente"), bcrypt.DefaultCost)
	return h
})

// AuthUseCase máquina de estados de cuentas: registro, login y configuración en dos pasos.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	media     ports.MediaStore
	publisher ports.EventPublisher
	policy    Policy
	jwtCfg    JWTConfig
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de cuentas.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	media ports.MediaStore,
	publisher ports.EventPublisher,
	policy Policy,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		media:     media,
		publisher: publisher,
		policy:    policy,
		jwtCfg:    jwtCfg,
		now:       time.Now,
	}
}

// RegisterUser crea la cuenta en la etapa más avanzada que permiten los datos recibidos.
// Errores: ErrInvalidInput, ErrDomainNotAllowed, ErrEmailAlreadyExists.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !uc.allowedDomain(in.Email) {
		return nil, domain.ErrDomainNotAllowed
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	var hash string
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(h)
	}
	signature, err := uc.media.Store(ctx, ports.MediaSignature, in.Signature)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	user := &entity.User{
		ID:           entity.NewID(),
		Name:         in.Name,
		Surname:      in.Surname,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Signature:    signature,
		Role:         entity.RoleEmployee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El índice único del adaptador resuelve registros simultáneos con el mismo correo.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	out := dto.FromUser(user)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicUsers, "user_registered", out))
	return out, nil
}

// Login verifica credenciales y señala el siguiente paso pendiente de configuración.
// Errores: ErrDomainNotAllowed, ErrInvalidCredentials, ErrPasswordSetupRequired, ErrSignatureSetupRequired.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if err := dto.Validate(dto.LoginRequest{Email: email, Password: in.Password}); err != nil {
		return nil, err
	}
	if !uc.allowedDomain(email) {
		return nil, domain.ErrDomainNotAllowed
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if !user.HasPassword() {
		return nil, domain.ErrPasswordSetupRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if uc.policy.RequireSignature && !user.HasSignature() {
		return nil, domain.ErrSignatureSetupRequired
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Message: "Inicio de sesión exitoso",
		Token:   token,
		User:    *dto.FromUser(user),
	}, nil
}

// SetPassword primer paso de configuración para cuentas creadas sin contraseña.
// Errores: ErrInvalidInput, ErrNotFound, ErrAlreadyConfigured.
func (uc *AuthUseCase) SetPassword(ctx context.Context, in dto.SetPasswordRequest) error {
	in.Email = normalizeEmail(in.Email)
	if err := dto.Validate(in); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.HasPassword() {
		return domain.ErrAlreadyConfigured
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	ok, err := uc.userRepo.SetPasswordIfEmpty(ctx, user.ID, string(hash), uc.now())
	if err != nil {
		return err
	}
	if !ok {
		// Otra petición configuró la contraseña entre la lectura y la escritura.
		return domain.ErrAlreadyConfigured
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicUsers, "user_updated", map[string]string{"id": user.ID}))
	return nil
}

// SetSignature segundo paso: registra la firma tras confirmar la contraseña.
// Errores: ErrInvalidInput, ErrNotFound, ErrPasswordSetupRequired, ErrInvalidCredentials, ErrAlreadyConfigured.
func (uc *AuthUseCase) SetSignature(ctx context.Context, in dto.SetSignatureRequest) error {
	in.Email = normalizeEmail(in.Email)
	if err := dto.Validate(in); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if !user.HasPassword() {
		return domain.ErrPasswordSetupRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return domain.ErrInvalidCredentials
	}
	if user.HasSignature() {
		return domain.ErrAlreadyConfigured
	}

	signature, err := uc.media.Store(ctx, ports.MediaSignature, in.Signature)
	if err != nil {
		return err
	}
	ok, err := uc.userRepo.SetSignatureIfEmpty(ctx, user.ID, signature, uc.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAlreadyConfigured
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicUsers, "user_updated", map[string]string{"id": user.ID}))
	return nil
}

// ListUsers lista cuentas, más recientes primero, sin datos sensibles.
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.FromUser(u))
	}
	return items, nil
}

// AssignRole cambia el rol sin pasar por la máquina de estados (solo admin).
func (uc *AuthUseCase) AssignRole(ctx context.Context, userID string, in dto.AssignRoleRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !entity.ValidID(userID) {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.UpdateRole(ctx, userID, in.Role, uc.now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromUser(user)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicUsers, "user_updated", out))
	return out, nil
}

// AssignSchedule reemplaza el horario personalizado del usuario (solo admin).
func (uc *AuthUseCase) AssignSchedule(ctx context.Context, userID string, in dto.AssignScheduleRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := validateDays(in.Schedule); err != nil {
		return nil, err
	}
	if !entity.ValidID(userID) {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.UpdateSchedule(ctx, userID, in.Schedule, uc.now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromUser(user)
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicUsers, "user_updated", out))
	return out, nil
}

func (uc *AuthUseCase) allowedDomain(email string) bool {
	return strings.HasSuffix(email, uc.policy.EmailDomain)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateDays(days []entity.ScheduleDay) error {
	if err := entity.ValidateSchedule(days); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// IsSetupSignal informa si err pide al cliente completar un paso de configuración.
func IsSetupSignal(err error) bool {
	return errors.Is(err, domain.ErrPasswordSetupRequired) || errors.Is(err, domain.ErrSignatureSetupRequired)
}
