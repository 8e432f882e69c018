package shred

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"shredfile_enterprise/internal/logging"
	"shredfile_enterprise/internal/random"
)

// obfuscatedNameBytes из 16 случайных байт получается имя в 32 hex-символа
const obfuscatedNameBytes = 16

// Obfuscator renames an already-overwritten file to a random hex name
// in the same directory before unlinking it, so the original filename
// leaves less of a trace in directory metadata and journals.
type Obfuscator struct {
	Random random.Source
	Logger *logging.AuditLogger
}

// Run маскирует и удаляет файл; ошибка только если финальный unlink не удался
func (o *Obfuscator) Run(path string) (ObfuscationResult, error) {
	res := ObfuscationResult{OriginalPath: path}

	target := path
	if newPath, err := o.randomSibling(path); err != nil {
		// Без случайного имени переименование теряет смысл,
		// удаляем файл под исходным именем
		o.logf("WARN", "Не удалось сгенерировать случайное имя", "path", path, "error", err.Error())
	} else if err := os.Rename(path, newPath); err != nil {
		o.logf("WARN", "Переименование не удалось, удаляем исходный путь", "path", path, "error", err.Error())
	} else {
		res.ObfuscatedPath = newPath
		res.RenameSucceeded = true
		res.DirSyncAttempted = true
		o.syncDir(filepath.Dir(newPath))
		target = newPath
	}

	res.UnlinkedPath = target
	if err := os.Remove(target); err != nil {
		return res, fmt.Errorf("unlink %s: %w", target, err)
	}

	o.logf("INFO", "Файл удалён", "path", path, "renamed", res.RenameSucceeded)
	return res, nil
}

// randomSibling строит путь со случайным hex-именем в той же директории
func (o *Obfuscator) randomSibling(path string) (string, error) {
	raw := make([]byte, obfuscatedNameBytes)
	if err := o.Random.Fill(raw); err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), hex.EncodeToString(raw)), nil
}

// syncDir best-effort flush of the directory entry. Many filesystems
// refuse fsync on a directory handle; failure here is advisory only.
func (o *Obfuscator) syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		o.logf("DEBUG", "Не удалось открыть директорию для fsync", "dir", dir, "error", err.Error())
		return
	}
	defer d.Close()

	if err := d.Sync(); err != nil {
		o.logf("DEBUG", "fsync директории не поддерживается", "dir", dir, "error", err.Error())
	}
}

func (o *Obfuscator) logf(level, message string, fields ...interface{}) {
	if o.Logger != nil {
		o.Logger.Log(level, message, fields...)
	}
}
