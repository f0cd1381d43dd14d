package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/domain"
	"github.com/naisata/servicios-api/internal/domain/repository"
)

// ConfigUseCase mapa clave/valor de configuración general de la app.
type ConfigUseCase struct {
	settings  repository.SettingsRepository
	publisher ports.EventPublisher

	// mu serializa lectura-fusión-escritura dentro de la instancia.
	mu sync.Mutex
}

func NewConfigUseCase(settings repository.SettingsRepository, publisher ports.EventPublisher) *ConfigUseCase {
	return &ConfigUseCase{settings: settings, publisher: publisher}
}

// Get devuelve el mapa completo; vacío si nunca se configuró.
func (uc *ConfigUseCase) Get(ctx context.Context) (map[string]any, error) {
	raw, err := uc.settings.Get(ctx, repository.SettingsConfig)
	if err != nil {
		return nil, err
	}
	values := map[string]any{}
	if raw == nil {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decodificar configuración: %w", err)
	}
	return values, nil
}

// Merge agrega o reemplaza las claves recibidas; las demás se conservan.
func (uc *ConfigUseCase) Merge(ctx context.Context, in map[string]any) (map[string]any, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: no se recibió ninguna clave", domain.ErrInvalidInput)
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		if strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: clave vacía", domain.ErrInvalidInput)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	values, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	for k, v := range in {
		values[k] = v
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := uc.settings.Put(ctx, repository.SettingsConfig, raw); err != nil {
		return nil, err
	}
	uc.publisher.Publish(ctx, ports.NewEvent(ports.TopicConfig, "config_updated", map[string]any{"claves": keys}))
	return values, nil
}
