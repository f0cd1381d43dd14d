package repository

import "context"

// Claves de los registros únicos de configuración.
const (
	SettingsTimeclock = "timeclock"
	SettingsConfig    = "config"
)

// SettingsRepository guarda documentos JSON únicos identificados por clave.
type SettingsRepository interface {
	// Get devuelve nil si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	// InsertIfAbsent guarda data solo si la clave no existe y devuelve el documento vigente.
	InsertIfAbsent(ctx context.Context, key string, data []byte) ([]byte, error)
}
