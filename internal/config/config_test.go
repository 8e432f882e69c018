package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	require.Equal(t, 3, cfg.Shred.Passes)
	require.False(t, cfg.Shred.FinalZeroPass)
	require.Equal(t, int64(1024*1024), cfg.Shred.ChunkSize)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	yamlData := `
shred:
  passes: 5
  final_zero_pass: true
  chunk_size: 2048
security:
  protected_paths: ["/boot"]
  require_confirmation: false
logging:
  level: DEBUG
reporting:
  enabled: true
  local_path: ./out
  format: json
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Shred.Passes)
	require.True(t, cfg.Shred.FinalZeroPass)
	require.Equal(t, int64(2048), cfg.Shred.ChunkSize)
	require.Equal(t, []string{"/boot"}, cfg.Security.ProtectedPaths)
	require.False(t, cfg.Security.RequireConfirmation)
	require.Equal(t, "DEBUG", cfg.Logging.Level)
	require.True(t, cfg.Reporting.Enabled)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shred: [broken"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero passes", func(c *Config) { c.Shred.Passes = 0 }},
		{"too many passes", func(c *Config) { c.Shred.Passes = 100 }},
		{"zero chunk", func(c *Config) { c.Shred.ChunkSize = 0 }},
		{"huge chunk", func(c *Config) { c.Shred.ChunkSize = 128 * 1024 * 1024 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "TRACE" }},
		{"bad report format", func(c *Config) {
			c.Reporting.Enabled = true
			c.Reporting.Format = "xml"
		}},
		{"empty protected path", func(c *Config) { c.Security.ProtectedPaths = []string{""} }},
		{"root protected path", func(c *Config) { c.Security.ProtectedPaths = []string{"/"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.Error(t, Validate(cfg))
		})
	}
}

func TestApplyProfile(t *testing.T) {
	tests := []struct {
		profile  string
		passes   int
		zeroPass bool
	}{
		{"quick", 1, false},
		{"standard", 3, false},
		{"dod", 3, true},
		{"paranoid", 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, ApplyProfile(cfg, tt.profile))
			require.Equal(t, tt.passes, cfg.Shred.Passes)
			require.Equal(t, tt.zeroPass, cfg.Shred.FinalZeroPass)
			require.NoError(t, Validate(cfg))
		})
	}
}

func TestApplyProfileUnknown(t *testing.T) {
	require.Error(t, ApplyProfile(Default(), "turbo"))
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Shred.Passes = 7
	cfg.Shred.FinalZeroPass = true

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	cfg := Default()
	cfg.Shred.Passes = -1
	require.Error(t, Save(cfg, filepath.Join(t.TempDir(), "config.yaml")))
}
