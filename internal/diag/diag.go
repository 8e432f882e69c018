package diag

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"shredfile_enterprise/internal/logging"
	"shredfile_enterprise/internal/random"
	"shredfile_enterprise/internal/shred"
)

// Check результат одной проверки самодиагностики
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll прогоняет все проверки в scratch-директории. Каждая проверка
// независима: падение одной не мешает остальным.
func RunAll(logger *logging.AuditLogger) []Check {
	checks := []Check{
		checkRandomSource(),
		checkOverwrite(logger),
		checkObfuscation(logger),
	}

	for _, c := range checks {
		level := "INFO"
		if !c.Passed {
			level = "ERROR"
		}
		logger.Log(level, "Диагностика", "check", c.Name, "passed", c.Passed, "detail", c.Detail)
	}

	return checks
}

// AllPassed сообщает, прошли ли все проверки
func AllPassed(checks []Check) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// checkRandomSource проверяет, что системная цепочка отдаёт данные
func checkRandomSource() Check {
	c := Check{Name: "random-source"}

	src := random.System()
	buf := make([]byte, 64)
	if err := src.Fill(buf); err != nil {
		c.Detail = err.Error()
		return c
	}

	// Нулевой буфер после заполнения означает нерабочий источник
	if bytes.Equal(buf, make([]byte, 64)) {
		c.Detail = "source produced 64 zero bytes"
		return c
	}

	c.Passed = true
	c.Detail = "filled 64 bytes"
	return c
}

// checkOverwrite затирает временный файл и проверяет финальные нули
func checkOverwrite(logger *logging.AuditLogger) Check {
	c := Check{Name: "overwrite"}

	dir, err := os.MkdirTemp("", "shredfile_diag")
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "probe.bin")
	payload := bytes.Repeat([]byte("diagnostic"), 100)
	if err := os.WriteFile(path, payload, 0600); err != nil {
		c.Detail = err.Error()
		return c
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		c.Detail = err.Error()
		return c
	}

	scheduler := &shred.PassScheduler{
		Random:   random.System(),
		Passes:   1,
		ZeroPass: true,
		Logger:   logger,
	}
	results, err := scheduler.Run(shred.NewDurableWriter(f), int64(len(payload)))
	f.Close()
	if err != nil {
		c.Detail = err.Error()
		return c
	}

	content, err := os.ReadFile(path)
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	if !bytes.Equal(content, make([]byte, len(payload))) {
		c.Detail = "final zero pass left non-zero bytes"
		return c
	}

	durable := true
	for _, r := range results {
		durable = durable && r.Durable
	}

	c.Passed = true
	c.Detail = fmt.Sprintf("%d passes, durable=%v", len(results), durable)
	return c
}

// checkObfuscation проверяет rename+unlink на временном файле
func checkObfuscation(logger *logging.AuditLogger) Check {
	c := Check{Name: "obfuscation"}

	dir, err := os.MkdirTemp("", "shredfile_diag")
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "probe.bin")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		c.Detail = err.Error()
		return c
	}

	obfuscator := &shred.Obfuscator{Random: random.System(), Logger: logger}
	res, err := obfuscator.Run(path)
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		c.Detail = "original directory entry still present"
		return c
	}

	c.Passed = true
	c.Detail = fmt.Sprintf("renamed=%v", res.RenameSucceeded)
	return c
}
