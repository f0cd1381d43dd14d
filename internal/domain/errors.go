package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: detalle") cuando hace falta contexto.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Cuentas.
	ErrDomainNotAllowed       = errors.New("solo se permiten correos corporativos")
	ErrEmailAlreadyExists     = errors.New("el correo ya está registrado")
	ErrInvalidCredentials     = errors.New("credenciales inválidas")
	ErrPasswordSetupRequired  = errors.New("la cuenta requiere configurar contraseña")
	ErrSignatureSetupRequired = errors.New("la cuenta requiere registrar su firma")
	ErrAlreadyConfigured      = errors.New("la cuenta ya tiene este dato configurado")

	// Tickets.
	ErrAlreadySigned = errors.New("el ticket ya fue firmado por el cliente")
	ErrNotYetSigned  = errors.New("el ticket aún no tiene firma del cliente")
	ErrQuotaExceeded = errors.New("se alcanzó el límite de descargas")

	// Asistencia.
	ErrOutsideGeofence = errors.New("la ubicación está fuera del área permitida")
)
