package config

import (
	"fmt"
)

// ApplyProfile применяет профиль затирания к конфигурации
func ApplyProfile(cfg *Config, profile string) error {
	switch profile {
	case "quick":
		cfg.Shred.Passes = 1
		cfg.Shred.FinalZeroPass = false
		cfg.Shred.ChunkSize = 4 * 1024 * 1024 // 4MB
	case "standard":
		cfg.Shred.Passes = 3
		cfg.Shred.FinalZeroPass = false
		cfg.Shred.ChunkSize = 1024 * 1024 // 1MB
	case "dod":
		// DOD 5220.22-M: 3 прохода плюс финальные нули
		cfg.Shred.Passes = 3
		cfg.Shred.FinalZeroPass = true
		cfg.Shred.ChunkSize = 1024 * 1024 // 1MB
	case "paranoid":
		cfg.Shred.Passes = 7
		cfg.Shred.FinalZeroPass = true
		cfg.Shred.ChunkSize = 1024 * 1024 // 1MB
	default:
		return fmt.Errorf("неизвестный профиль: %s", profile)
	}
	return nil
}
