package shred

import (
	"fmt"
	"os"
	"time"

	"shredfile_enterprise/internal/config"
	"shredfile_enterprise/internal/logging"
	"shredfile_enterprise/internal/random"
	"shredfile_enterprise/internal/security"
	"shredfile_enterprise/internal/system"
)

// FileShredder выполняет полный цикл для одного файла: валидация,
// затирание, маскировка имени, удаление
type FileShredder struct {
	Config *config.Config
	Logger *logging.AuditLogger
	Random random.Source
	DryRun bool

	// Хуки прогресса, пробрасываются в PassScheduler
	OnPassStart func(kind PassKind, index, total int, size int64)
	OnChunk     func(n int64)
}

// New создаёт шреддер с системным источником случайных данных
func New(cfg *config.Config, logger *logging.AuditLogger) *FileShredder {
	return &FileShredder{
		Config: cfg,
		Logger: logger,
		Random: random.System(),
	}
}

// Process обрабатывает один файл. Каждый файл независим: ошибка здесь
// не мешает обработке остальных файлов пакета.
func (fs *FileShredder) Process(path string) *FileOperation {
	passes := fs.Config.Shred.Passes
	if passes < 1 {
		passes = 1
	}

	op := &FileOperation{
		ID:        fmt.Sprintf("shred_%d", time.Now().UnixNano()),
		Path:      path,
		Passes:    passes,
		ZeroPass:  fs.Config.Shred.FinalZeroPass,
		StartTime: time.Now(),
	}
	defer fs.finish(op)

	if err := security.CheckPath(fs.Config, path); err != nil {
		op.Outcome = OutcomeSkippedProtected
		op.Warning = err.Error()
		fs.Logger.Log("WARN", "Файл пропущен: защищённый путь", "path", path)
		return op
	}

	// Lstat: симлинк отвергается сам, а не его цель
	info, err := os.Lstat(path)
	if err != nil {
		op.Outcome = OutcomeStatFailed
		op.Error = err.Error()
		fs.Logger.Log("ERROR", "Не удалось получить метаданные", "path", path, "error", err.Error())
		return op
	}

	if !info.Mode().IsRegular() {
		op.Outcome = OutcomeSkippedNotRegular
		op.Warning = fmt.Sprintf("not a regular file (%s)", system.Classify(info.Mode()))
		fs.Logger.Log("WARN", "Файл пропущен: не обычный файл", "path", path, "kind", system.Classify(info.Mode()))
		return op
	}

	// Размер фиксируется здесь и используется весь цикл затирания
	op.Size = info.Size()

	fs.warnWeakFilesystem(path)

	if fs.DryRun {
		op.Outcome = OutcomeSuccess
		op.Warning = "dry run: no data written"
		fs.Logger.Log("INFO", "DRY RUN: файл прошёл валидацию", "path", path, "size", op.Size)
		return op
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		op.Outcome = OutcomeOverwriteFailed
		op.Error = err.Error()
		fs.Logger.Log("ERROR", "Не удалось открыть файл на запись", "path", path, "error", err.Error())
		return op
	}

	scheduler := &PassScheduler{
		Random:      fs.Random,
		ChunkSize:   fs.Config.Shred.ChunkSize,
		Passes:      passes,
		ZeroPass:    fs.Config.Shred.FinalZeroPass,
		Logger:      fs.Logger,
		OnPassStart: fs.OnPassStart,
		OnChunk:     fs.OnChunk,
	}

	results, runErr := scheduler.Run(NewDurableWriter(f), op.Size)
	op.PassResults = results
	for _, r := range results {
		op.BytesWritten += uint64(r.BytesWritten)
		if !r.Durable {
			op.Warning = "durability degraded: sync not confirmed for at least one pass"
		}
	}

	if runErr != nil {
		f.Close()
		// Уже записанные проходы не откатываются
		op.Outcome = OutcomeOverwriteFailed
		op.Error = runErr.Error()
		fs.Logger.Log("ERROR", "Затирание прервано", "path", path, "error", runErr.Error())
		return op
	}

	if err := f.Close(); err != nil {
		fs.Logger.Log("WARN", "Ошибка закрытия файла", "path", path, "error", err.Error())
	}

	obfuscator := &Obfuscator{Random: fs.Random, Logger: fs.Logger}
	res, obfErr := obfuscator.Run(path)
	op.Obfuscation = &res
	if obfErr != nil {
		op.Outcome = OutcomeUnlinkFailed
		op.Error = obfErr.Error()
		fs.Logger.Log("ERROR", "Не удалось удалить файл", "path", path, "error", obfErr.Error())
		return op
	}

	op.Outcome = OutcomeSuccess
	fs.Logger.Log("INFO", "Файл затёрт и удалён",
		"path", path, "passes", passes, "zero_pass", op.ZeroPass, "bytes", op.BytesWritten)
	return op
}

// warnWeakFilesystem предупреждает о ФС без гарантии уничтожения данных
func (fs *FileShredder) warnWeakFilesystem(path string) {
	info, err := system.GetFilesystemInfo(path)
	if err != nil {
		fs.Logger.Log("DEBUG", "Не удалось определить файловую систему", "path", path, "error", err.Error())
		return
	}
	if info.Weak {
		fs.Logger.Log("WARN", "Файловая система не гарантирует уничтожение данных при перезаписи",
			"path", path, "fs", info.Type)
	}
}

func (fs *FileShredder) finish(op *FileOperation) {
	now := time.Now()
	op.EndTime = &now

	if elapsed := now.Sub(op.StartTime).Seconds(); elapsed > 0 {
		op.SpeedMBps = float64(op.BytesWritten) / (1024 * 1024) / elapsed
	}
}
