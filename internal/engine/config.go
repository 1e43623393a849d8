package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config хранит параметры запуска движка и обвязки.
type Config struct {
	// Port - порт HTTP/WebSocket сервера наблюдателей.
	Port string `yaml:"port"`

	// Mode - стартовый режим цикла ("player" или "headless").
	Mode GameMode `yaml:"mode"`

	// SaveFormat - формат сохранений: "yaml" или "json".
	SaveFormat string `yaml:"save_format"`

	// SavePath - путь файла сохранения (пустой = не сохранять на выходе).
	SavePath string `yaml:"save_path"`

	// ScriptsDir - каталог Lua-скриптов резолвера боя (пустой = бой
	// только логируется, урон не считается).
	ScriptsDir string `yaml:"scripts_dir"`
}

// NewConfig возвращает конфиг по умолчанию.
func NewConfig() Config {
	return Config{
		Port:       "8080",
		Mode:       ModePlayer,
		SaveFormat: "yaml",
	}
}

// LoadConfig читает конфиг из YAML-файла. Отсутствующий файл - не ошибка:
// возвращаются значения по умолчанию. Незаполненные поля тоже добиваются
// дефолтами, чтобы частичный конфиг оставался валидным.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return NewConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	defaults := NewConfig()
	if cfg.Port == "" {
		cfg.Port = defaults.Port
	}
	if cfg.Mode == "" {
		cfg.Mode = defaults.Mode
	}
	if cfg.SaveFormat == "" {
		cfg.SaveFormat = defaults.SaveFormat
	}
	return cfg, nil
}
