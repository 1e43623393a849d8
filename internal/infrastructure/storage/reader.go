package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/pkg/logger"
)

// Load читает снапшот мира из файла. Формат определяется расширением;
// при незнакомом расширении пробуем YAML, затем JSON.
func Load(path string) (*domain.WorldState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save file %s: %w", path, err)
	}

	var snap domain.WorldSnapshot

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &snap)
	case ".json":
		err = json.Unmarshal(data, &snap)
	default:
		// Неизвестное расширение: YAML, потом JSON
		if err = yaml.Unmarshal(data, &snap); err != nil {
			err = json.Unmarshal(data, &snap)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decode save file %s: %w", path, err)
	}

	// Восстановление идет через обычный AddEntity: файл с дублями ID
	// отклоняется здесь же
	world, err := domain.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("load save file %s: %w", path, err)
	}

	logger.Log.WithFields(map[string]any{
		"path":     path,
		"time":     world.Time(),
		"entities": world.EntityCount(),
	}).Info("Loaded world state")
	return world, nil
}
