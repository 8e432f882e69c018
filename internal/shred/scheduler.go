package shred

import (
	"fmt"

	"shredfile_enterprise/internal/logging"
	"shredfile_enterprise/internal/random"
)

// PassScheduler прогоняет случайные и нулевые проходы по файлу
//
// One buffer is owned per Run invocation and refilled chunk by chunk,
// so peak memory stays at one chunk regardless of file size. The size
// passed to Run is the size captured at stat time and drives the whole
// loop even if the file changes underneath (known race, not handled).
type PassScheduler struct {
	Random    random.Source
	ChunkSize int64
	Passes    int
	ZeroPass  bool
	Logger    *logging.AuditLogger

	// Хуки прогресса для CLI; оба необязательны
	OnPassStart func(kind PassKind, index, total int, size int64)
	OnChunk     func(n int64)
}

// Run выполняет все проходы; любая жёсткая ошибка прерывает файл
func (ps *PassScheduler) Run(w *DurableWriter, size int64) ([]PassResult, error) {
	passes := ps.Passes
	if passes < 1 {
		passes = 1
	}

	chunk := ps.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	if size > 0 && size < chunk {
		chunk = size
	}
	buf := make([]byte, chunk)

	total := passes
	if ps.ZeroPass {
		total++
	}
	results := make([]PassResult, 0, total)

	for pass := 1; pass <= passes; pass++ {
		if ps.OnPassStart != nil {
			ps.OnPassStart(PassRandom, pass, total, size)
		}

		written, err := ps.streamPass(w, size, buf, true)
		if err != nil {
			return results, fmt.Errorf("random pass %d/%d: %w", pass, total, err)
		}

		res := PassResult{
			Index:        pass,
			Total:        total,
			Kind:         PassRandom,
			BytesWritten: written,
			Durable:      w.Barrier() == BarrierClean,
		}
		results = append(results, res)

		if !res.Durable {
			ps.logf("WARN", "Барьер долговечности не подтверждён", "pass", pass, "total", total)
		}
	}

	if ps.ZeroPass {
		if ps.OnPassStart != nil {
			ps.OnPassStart(PassZero, total, total, size)
		}

		// Нулевой буфер заполняется один раз
		for i := range buf {
			buf[i] = 0
		}

		written, err := ps.streamPass(w, size, buf, false)
		if err != nil {
			return results, fmt.Errorf("zero pass: %w", err)
		}

		res := PassResult{
			Index:        total,
			Total:        total,
			Kind:         PassZero,
			BytesWritten: written,
			Durable:      w.Barrier() == BarrierClean,
		}
		results = append(results, res)

		if !res.Durable {
			ps.logf("WARN", "Барьер долговечности не подтверждён", "pass", total, "total", total)
		}
	}

	return results, nil
}

// streamPass пишет size байт от начала файла чанк за чанком
func (ps *PassScheduler) streamPass(w *DurableWriter, size int64, buf []byte, refill bool) (int64, error) {
	var written int64
	for written < size {
		n := int64(len(buf))
		if size-written < n {
			n = size - written
		}

		b := buf[:n]
		if refill {
			// Свежие случайные байты на каждый чанк, без остатков
			// предыдущего заполнения
			if err := ps.Random.Fill(b); err != nil {
				return written, fmt.Errorf("random data generation: %w", err)
			}
		}

		if err := w.WriteChunk(written, b); err != nil {
			return written, err
		}
		written += n

		if ps.OnChunk != nil {
			ps.OnChunk(n)
		}
	}
	return written, nil
}

func (ps *PassScheduler) logf(level, message string, fields ...interface{}) {
	if ps.Logger != nil {
		ps.Logger.Log(level, message, fields...)
	}
}
