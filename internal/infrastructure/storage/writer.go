// Package storage - сериализация WorldState в файлы сохранений.
// Слой работает поверх плоского снапшота мира и не знает ничего
// о самой симуляции.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scottfrye/dnd/internal/domain"
	"github.com/scottfrye/dnd/pkg/logger"
)

// Форматы сохранений.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Save пишет мир в файл в указанном формате.
func Save(world *domain.WorldState, path string, format string) error {
	return SaveSnapshot(world.Snapshot(), path, format)
}

// SaveSnapshot пишет уже снятый снапшот. Отдельная точка входа для
// вызывающих, которые снимают снапшот под своим замком.
func SaveSnapshot(snap domain.WorldSnapshot, path string, format string) error {
	var data []byte
	var err error

	switch strings.ToLower(format) {
	case FormatYAML:
		data, err = yaml.Marshal(snap)
	case FormatJSON:
		data, err = json.MarshalIndent(snap, "", "  ")
	default:
		return fmt.Errorf("unsupported save format %q (use yaml or json)", format)
	}
	if err != nil {
		return fmt.Errorf("encode world state: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Log.WithField("path", path).Errorf("Failed to save world state: %v", err)
		return fmt.Errorf("write save file %s: %w", path, err)
	}

	logger.Log.WithFields(map[string]any{
		"path":     path,
		"format":   strings.ToLower(format),
		"entities": len(snap.Entities),
	}).Info("Saved world state")
	return nil
}
