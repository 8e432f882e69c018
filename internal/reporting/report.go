package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"shredfile_enterprise/internal/shred"
)

// Report представляет JSON отчёт о запуске
type Report struct {
	RunID         string        `json:"run_id"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Profile       string        `json:"profile,omitempty"`
	DryRun        bool          `json:"dry_run"`
	Passes        int           `json:"passes"`
	FinalZeroPass bool          `json:"final_zero_pass"`
	Files         []FileReport  `json:"files"`
	Summary       SummaryReport `json:"summary"`
	ExitCode      int           `json:"exit_code"`
	Duration      string        `json:"duration"`
}

// FileReport представляет отчёт об обработке одного файла
type FileReport struct {
	ID           string     `json:"id"`
	Path         string     `json:"path"`
	Outcome      string     `json:"outcome"`
	Size         int64      `json:"size"`
	Passes       int        `json:"passes"`
	ZeroPass     bool       `json:"zero_pass"`
	BytesWritten uint64     `json:"bytes_written"`
	SpeedMBps    float64    `json:"speed_mbps"`
	Renamed      bool       `json:"renamed"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Error        string     `json:"error,omitempty"`
	Warning      string     `json:"warning,omitempty"`
}

// SummaryReport представляет сводную информацию
type SummaryReport struct {
	TotalFiles      int     `json:"total_files"`
	Succeeded       int     `json:"succeeded"`
	Skipped         int     `json:"skipped"`
	Failed          int     `json:"failed"`
	TotalBytes      uint64  `json:"total_bytes"`
	TotalBytesHuman string  `json:"total_bytes_human"`
	AverageSpeed    float64 `json:"average_speed_mbps"`
	SuccessRate     float64 `json:"success_rate"`
}

// New создаёт отчёт для текущего запуска
func New(version string) *Report {
	return &Report{
		RunID:     fmt.Sprintf("run_%d", time.Now().UnixNano()),
		Version:   version,
		Timestamp: time.Now(),
	}
}

// AddOperation добавляет запись об обработанном файле
func (r *Report) AddOperation(op *shred.FileOperation) {
	fr := FileReport{
		ID:           op.ID,
		Path:         op.Path,
		Outcome:      string(op.Outcome),
		Size:         op.Size,
		Passes:       op.Passes,
		ZeroPass:     op.ZeroPass,
		BytesWritten: op.BytesWritten,
		SpeedMBps:    op.SpeedMBps,
		StartTime:    op.StartTime,
		EndTime:      op.EndTime,
		Error:        op.Error,
		Warning:      op.Warning,
	}
	if op.Obfuscation != nil {
		fr.Renamed = op.Obfuscation.RenameSucceeded
	}
	r.Files = append(r.Files, fr)
}

// Finalize подсчитывает сводку и фиксирует код завершения
func (r *Report) Finalize(exitCode int, started time.Time) {
	r.ExitCode = exitCode
	r.Duration = time.Since(started).Round(time.Millisecond).String()

	s := SummaryReport{TotalFiles: len(r.Files)}
	var speedSum float64
	var speedCount int

	for _, f := range r.Files {
		switch shred.Outcome(f.Outcome) {
		case shred.OutcomeSuccess:
			s.Succeeded++
		case shred.OutcomeSkippedNotRegular, shred.OutcomeSkippedProtected:
			s.Skipped++
		default:
			s.Failed++
		}

		s.TotalBytes += f.BytesWritten
		if f.SpeedMBps > 0 {
			speedSum += f.SpeedMBps
			speedCount++
		}
	}

	s.TotalBytesHuman = humanize.Bytes(s.TotalBytes)
	if speedCount > 0 {
		s.AverageSpeed = speedSum / float64(speedCount)
	}
	if s.TotalFiles > 0 {
		s.SuccessRate = float64(s.Succeeded) / float64(s.TotalFiles) * 100
	}

	r.Summary = s
}

// Save записывает отчёт в директорию и возвращает путь к файлу
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(dir, r.RunID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return path, nil
}
