package memory

import (
	"context"
	"sync"

	"github.com/naisata/servicios-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo documentos de configuración por clave.
type SettingsRepo struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewSettingsRepository construye el repositorio vacío.
func NewSettingsRepository() *SettingsRepo {
	return &SettingsRepo{docs: make(map[string][]byte)}
}

func (r *SettingsRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

func (r *SettingsRepo) Put(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = append([]byte(nil), data...)
	return nil
}

func (r *SettingsRepo) InsertIfAbsent(_ context.Context, key string, data []byte) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[key]; ok {
		return append([]byte(nil), doc...), nil
	}
	r.docs[key] = append([]byte(nil), data...)
	return append([]byte(nil), data...), nil
}
