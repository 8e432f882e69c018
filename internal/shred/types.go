package shred

import (
	"time"
)

// Outcome итоговый статус обработки одного файла
type Outcome string

const (
	OutcomeSuccess           Outcome = "SUCCESS"
	OutcomeSkippedNotRegular Outcome = "SKIPPED_NOT_REGULAR"
	OutcomeSkippedProtected  Outcome = "SKIPPED_PROTECTED"
	OutcomeStatFailed        Outcome = "STAT_FAILED"
	OutcomeOverwriteFailed   Outcome = "OVERWRITE_FAILED"
	OutcomeUnlinkFailed      Outcome = "UNLINK_FAILED"
)

// PassKind тип содержимого прохода
type PassKind string

const (
	PassRandom PassKind = "random"
	PassZero   PassKind = "zero"
)

// PassResult итог одного прохода затирания
type PassResult struct {
	Index        int
	Total        int
	Kind         PassKind
	BytesWritten int64
	// Durable is false when neither fdatasync nor fsync confirmed the
	// pass; the data sits in the page cache with reduced confidence.
	Durable bool
}

// ObfuscationResult итог маскировки имени файла
type ObfuscationResult struct {
	OriginalPath     string
	ObfuscatedPath   string
	UnlinkedPath     string
	RenameSucceeded  bool
	DirSyncAttempted bool
}

// FileOperation запись об обработке одного файла
type FileOperation struct {
	ID           string
	Path         string
	Size         int64
	Passes       int
	ZeroPass     bool
	Outcome      Outcome
	StartTime    time.Time
	EndTime      *time.Time
	BytesWritten uint64
	SpeedMBps    float64
	PassResults  []PassResult
	Obfuscation  *ObfuscationResult
	Error        string
	Warning      string
}

// Succeeded сообщает, завершилась ли операция успешно
func (op *FileOperation) Succeeded() bool {
	return op.Outcome == OutcomeSuccess
}
