package shred

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"shredfile_enterprise/internal/random"
)

var hexNameRe = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestObfuscatorRenamesAndUnlinks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "victim.txt")
	require.NoError(t, os.WriteFile(path, []byte("gone"), 0600))

	o := &Obfuscator{Random: random.System()}
	res, err := o.Run(path)
	require.NoError(t, err)

	require.Equal(t, path, res.OriginalPath)
	require.True(t, res.RenameSucceeded)
	require.True(t, res.DirSyncAttempted)
	require.Equal(t, res.ObfuscatedPath, res.UnlinkedPath)

	// Имя: 32 hex-символа в нижнем регистре, в той же директории
	require.Equal(t, dir, filepath.Dir(res.ObfuscatedPath))
	require.Regexp(t, hexNameRe, filepath.Base(res.ObfuscatedPath))

	// Ни исходной, ни переименованной записи не осталось
	_, err = os.Lstat(path)
	require.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestObfuscatorUnlinksOriginalWhenRandomFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "victim.txt")
	require.NoError(t, os.WriteFile(path, []byte("gone"), 0600))

	o := &Obfuscator{Random: failingSource{err: errors.New("no entropy")}}
	res, err := o.Run(path)
	require.NoError(t, err)

	require.False(t, res.RenameSucceeded)
	require.Empty(t, res.ObfuscatedPath)
	require.Equal(t, path, res.UnlinkedPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestObfuscatorUnlinkFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.txt")

	// Rename несуществующего файла падает, fallback unlink тоже
	o := &Obfuscator{Random: random.System()}
	res, err := o.Run(path)
	require.Error(t, err)
	require.Equal(t, path, res.UnlinkedPath)
	require.False(t, res.RenameSucceeded)

	// Никакой замаскированной записи не появилось
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Empty(t, entries)
}
