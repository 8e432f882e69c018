package shred

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shredfile_enterprise/internal/config"
	"shredfile_enterprise/internal/logging"
)

func newTestShredder(t *testing.T, mutate func(*config.Config)) *FileShredder {
	t.Helper()

	cfg := config.Default()
	cfg.Logging.Level = "ERROR"
	if mutate != nil {
		mutate(cfg)
	}

	logger, err := logging.NewAuditLogger(cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	return New(cfg, logger)
}

func TestProcessSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0600))

	sh := newTestShredder(t, func(cfg *config.Config) {
		cfg.Shred.Passes = 2
		cfg.Shred.FinalZeroPass = true
	})

	op := sh.Process(path)
	require.Equal(t, OutcomeSuccess, op.Outcome)
	require.True(t, op.Succeeded())
	require.Equal(t, int64(10), op.Size)
	require.Equal(t, uint64(30), op.BytesWritten) // 2 случайных + 1 нулевой
	require.Len(t, op.PassResults, 3)
	require.NotNil(t, op.Obfuscation)
	require.True(t, op.Obfuscation.RenameSucceeded)
	require.NotNil(t, op.EndTime)

	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestProcessZeroByteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	op := newTestShredder(t, nil).Process(path)
	require.Equal(t, OutcomeSuccess, op.Outcome)
	require.Zero(t, op.BytesWritten)

	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err))
}

func TestProcessDirectorySkipped(t *testing.T) {
	dir := t.TempDir()
	inner := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(inner, []byte("intact"), 0600))

	op := newTestShredder(t, nil).Process(dir)
	require.Equal(t, OutcomeSkippedNotRegular, op.Outcome)
	require.Contains(t, op.Warning, "directory")

	// Директория и её содержимое не тронуты
	content, err := os.ReadFile(inner)
	require.NoError(t, err)
	require.Equal(t, []byte("intact"), content)
}

func TestProcessSymlinkSkipped(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("original"), 0600))
	require.NoError(t, os.Symlink(target, link))

	op := newTestShredder(t, nil).Process(link)
	require.Equal(t, OutcomeSkippedNotRegular, op.Outcome)
	require.Contains(t, op.Warning, "symlink")

	// Цель симлинка не тронута
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []byte("original"), content)
}

func TestProcessNonexistent(t *testing.T) {
	op := newTestShredder(t, nil).Process(filepath.Join(t.TempDir(), "nope"))
	require.Equal(t, OutcomeStatFailed, op.Outcome)
	require.NotEmpty(t, op.Error)
}

func TestProcessProtectedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "protected.txt")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0600))

	sh := newTestShredder(t, func(cfg *config.Config) {
		cfg.Security.ProtectedPaths = []string{dir}
	})

	op := sh.Process(path)
	require.Equal(t, OutcomeSkippedProtected, op.Outcome)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("keep"), content)
}

func TestProcessDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.txt")
	require.NoError(t, os.WriteFile(path, []byte("untouched"), 0600))

	sh := newTestShredder(t, nil)
	sh.DryRun = true

	op := sh.Process(path)
	require.Equal(t, OutcomeSuccess, op.Outcome)
	require.Contains(t, op.Warning, "dry run")
	require.Zero(t, op.BytesWritten)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("untouched"), content)
}

func TestProcessBatchContinuesAfterFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("права доступа не ограничивают root")
	}

	dir := t.TempDir()
	denied := filepath.Join(dir, "denied.txt")
	ok := filepath.Join(dir, "ok.txt")
	require.NoError(t, os.WriteFile(denied, []byte("locked"), 0400))
	require.NoError(t, os.WriteFile(ok, []byte("shred me"), 0600))

	sh := newTestShredder(t, nil)

	first := sh.Process(denied)
	require.Equal(t, OutcomeOverwriteFailed, first.Outcome)

	second := sh.Process(ok)
	require.Equal(t, OutcomeSuccess, second.Outcome)

	_, err := os.Lstat(denied)
	require.NoError(t, err) // недоступный файл остался
	_, err = os.Lstat(ok)
	require.True(t, os.IsNotExist(err))
}

func TestProcessClampsConfiguredPasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	sh := newTestShredder(t, func(cfg *config.Config) {
		cfg.Shred.Passes = 0
	})

	op := sh.Process(path)
	require.Equal(t, OutcomeSuccess, op.Outcome)
	require.Equal(t, 1, op.Passes)
	require.Len(t, op.PassResults, 1)
}
