package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Enterprise конфигурация
type Config struct {
	Shred     ShredConfig     `yaml:"shred"`
	Security  SecurityConfig  `yaml:"security"`
	Logging   LoggingConfig   `yaml:"logging"`
	Reporting ReportingConfig `yaml:"reporting"`
}

// ShredConfig параметры затирания файлов
type ShredConfig struct {
	Passes        int   `yaml:"passes"`
	FinalZeroPass bool  `yaml:"final_zero_pass"`
	ChunkSize     int64 `yaml:"chunk_size"`
}

// SecurityConfig защитные ограничения
type SecurityConfig struct {
	ProtectedPaths      []string `yaml:"protected_paths"`
	RequireConfirmation bool     `yaml:"require_confirmation"`
}

// LoggingConfig настройки журналирования
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ReportingConfig настройки отчётов о запусках
type ReportingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	LocalPath string `yaml:"local_path"`
	Format    string `yaml:"format"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Shred: ShredConfig{
			Passes:        3,
			FinalZeroPass: false,
			ChunkSize:     1024 * 1024, // 1MB
		},
		Security: SecurityConfig{
			ProtectedPaths: []string{
				"/boot",
				"/etc",
				"/usr",
				"/bin",
				"/sbin",
				"/lib",
			},
			RequireConfirmation: true,
		},
		Logging: LoggingConfig{
			Level: "INFO",
			File:  "",
		},
		Reporting: ReportingConfig{
			Enabled:   false,
			LocalPath: "./reports",
			Format:    "json",
		},
	}
}

// Load загружает конфигурацию из файла
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Валидация конфигурации
	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate проверяет конфигурацию на валидность
func Validate(config *Config) error {
	if config.Shred.Passes <= 0 || config.Shred.Passes > 64 {
		return fmt.Errorf("passes must be between 1 and 64, got %d", config.Shred.Passes)
	}

	if config.Shred.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", config.Shred.ChunkSize)
	}
	if config.Shred.ChunkSize > 64*1024*1024 { // 64MB max
		return fmt.Errorf("chunk size too large (max 64MB), got %d", config.Shred.ChunkSize)
	}

	validLevels := map[string]bool{
		"DEBUG": true,
		"INFO":  true,
		"WARN":  true,
		"ERROR": true,
	}
	if !validLevels[config.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true,
	}
	if config.Reporting.Enabled && !validFormats[config.Reporting.Format] {
		return fmt.Errorf("invalid report format: %s", config.Reporting.Format)
	}

	// Валидация путей
	for _, path := range config.Security.ProtectedPaths {
		if path == "" {
			return fmt.Errorf("empty protected path")
		}

		absPath := filepath.Clean(path)
		if absPath == "" || absPath == "." || absPath == "/" {
			return fmt.Errorf("invalid protected path: %s", path)
		}
	}

	return nil
}

// Save сохраняет конфигурацию в файл
func Save(config *Config, path string) error {
	// Валидация перед сохранением
	if err := Validate(config); err != nil {
		return fmt.Errorf("cannot save invalid config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
