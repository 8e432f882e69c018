package shred

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// DefaultChunkSize размер потокового буфера затирания
const DefaultChunkSize = 1024 * 1024 // 1MB

// BarrierStatus итог барьера долговечности
type BarrierStatus int

const (
	BarrierClean BarrierStatus = iota
	BarrierDegraded
)

// syncStrategy одна стратегия сброса данных на носитель
type syncStrategy struct {
	name string
	fn   func(*os.File) error
}

// DurableWriter performs positioned writes on an open file and flushes
// them to stable storage. Sync strategies are an ordered list; the
// platform-specific list lives in the build-tagged sync_*.go files.
type DurableWriter struct {
	file       *os.File
	strategies []syncStrategy
}

// NewDurableWriter оборачивает открытый на запись файл
func NewDurableWriter(f *os.File) *DurableWriter {
	return &DurableWriter{file: f, strategies: syncStrategies()}
}

// WriteChunk записывает данные по смещению, повторяя частичные записи
func (w *DurableWriter) WriteChunk(offset int64, data []byte) error {
	off := 0
	for off < len(data) {
		n, err := w.file.WriteAt(data[off:], offset+int64(off))
		if n > 0 {
			off += n
		}
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return fmt.Errorf("write at offset %d: %w", offset+int64(off), err)
		}
		if n == 0 {
			return fmt.Errorf("write at offset %d returned 0 bytes without error", offset+int64(off))
		}
	}
	return nil
}

// Barrier tries each sync strategy in order. All strategies failing is
// degraded, not fatal: the pass data already reached the page cache and
// aborting would discard completed overwrite work.
func (w *DurableWriter) Barrier() BarrierStatus {
	for _, s := range w.strategies {
		if err := s.fn(w.file); err == nil {
			return BarrierClean
		}
	}
	return BarrierDegraded
}
