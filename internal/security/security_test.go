package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shredfile_enterprise/internal/config"
)

func TestCheckPathAllowsRegularTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	require.NoError(t, CheckPath(config.Default(), path))
}

func TestCheckPathRejectsProtected(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Security.ProtectedPaths = []string{dir}

	require.Error(t, CheckPath(cfg, filepath.Join(dir, "file.txt")))
	require.Error(t, CheckPath(cfg, filepath.Join(dir, "nested", "deep.txt")))
	require.Error(t, CheckPath(cfg, dir))
}

func TestCheckPathComponentWiseNotPrefix(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Security.ProtectedPaths = []string{dir}

	// Соседняя директория с общим строковым префиксом не защищена
	sibling := dir + "_other"
	require.NoError(t, os.MkdirAll(sibling, 0755))
	require.NoError(t, CheckPath(cfg, filepath.Join(sibling, "file.txt")))
}

func TestCheckPathDefaultProtectsSystem(t *testing.T) {
	require.Error(t, CheckPath(config.Default(), "/etc/passwd"))
	require.Error(t, CheckPath(config.Default(), "/boot/vmlinuz"))
}

func TestCheckPathNilConfig(t *testing.T) {
	require.Error(t, CheckPath(nil, "/etc/passwd"))
}
