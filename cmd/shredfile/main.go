package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"shredfile_enterprise/internal/config"
	"shredfile_enterprise/internal/diag"
	"shredfile_enterprise/internal/logging"
	"shredfile_enterprise/internal/reporting"
	"shredfile_enterprise/internal/shred"
	"shredfile_enterprise/internal/system"
)

const (
	Version = "1.0.2"
	AppName = "ShredFile Enterprise"

	// Exit codes
	EXIT_SUCCESS = 0
	EXIT_ERROR   = 1
	EXIT_WARNING = 2
)

var (
	errSomeFailed   = errors.New("некоторые файлы не были удалены")
	errWithWarnings = errors.New("операция завершена с предупреждениями")
)

var (
	cfg        *config.Config
	logger     *logging.AuditLogger
	verbose    bool
	dryRun     bool
	configPath string
	profile    string

	passCount  int
	zeroPass   bool
	force      bool
	reportPath string
)

// CLI команды
var rootCmd = &cobra.Command{
	Use:     "shredfile",
	Short:   "ShredFile Enterprise - утилита безопасного удаления файлов",
	Long:    "Enterprise утилита для безвозвратного удаления файлов: многопроходная перезапись случайными данными, маскировка имени и удаление",
	Version: Version,

	// Ошибки выполнения не должны печатать usage
	SilenceUsage: true,
}

var shredCmd = &cobra.Command{
	Use:   "shred [файлы]",
	Short: "Затереть и удалить файлы",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShred,
}

var infoCmd = &cobra.Command{
	Use:   "info [пути]",
	Short: "Показать информацию о файловой системе",
	RunE:  runInfo,
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Самодиагностика",
	RunE:  runDiagnose,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Подробный вывод")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Тестовый режим: без записи и удаления")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Путь к конфигурации")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "Профиль затирания (quick/standard/dod/paranoid)")

	shredCmd.Flags().IntVarP(&passCount, "passes", "n", 3, "Количество случайных проходов")
	shredCmd.Flags().BoolVarP(&zeroPass, "zero", "z", false, "Финальный проход нулями")
	shredCmd.Flags().BoolVarP(&force, "force", "f", false, "Пропустить подтверждение")
	shredCmd.Flags().StringVar(&reportPath, "report", "", "Директория для сохранения отчёта")

	rootCmd.AddCommand(shredCmd, infoCmd, diagnoseCmd)
}

// setup загружает конфигурацию и инициализирует логгер
func setup() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if profile != "" {
		if err := config.ApplyProfile(cfg, profile); err != nil {
			return fmt.Errorf("ошибка применения профиля %s: %w", profile, err)
		}
	}

	logger, err = logging.NewAuditLogger(cfg, verbose)
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}

	if profile != "" {
		logger.Log("INFO", "Применён профиль", "profile", profile)
	}

	return nil
}

func runShred(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	if err := setup(); err != nil {
		return err
	}
	defer logger.Close()

	// Флаги перекрывают конфигурацию; неположительное число проходов
	// тихо ограничивается единицей
	if cmd.Flags().Changed("passes") {
		if passCount < 1 {
			passCount = 1
		}
		cfg.Shred.Passes = passCount
	}
	if zeroPass {
		cfg.Shred.FinalZeroPass = true
	}

	logger.Log("INFO", "Запуск ShredFile Enterprise", "version", Version,
		"files", len(args), "passes", cfg.Shred.Passes, "zero_pass", cfg.Shred.FinalZeroPass, "dry_run", dryRun)

	if cfg.Security.RequireConfirmation && !force && !dryRun {
		fmt.Printf("ВНИМАНИЕ: %d файлов будут удалены без возможности восстановления:\n", len(args))
		for _, path := range args {
			fmt.Printf("  %s\n", path)
		}
		fmt.Print("Продолжить? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			logger.Log("INFO", "Операция отменена пользователем")
			return nil
		}
	}

	report := reporting.New(Version)
	report.Profile = profile
	report.DryRun = dryRun
	report.Passes = cfg.Shred.Passes
	report.FinalZeroPass = cfg.Shred.FinalZeroPass

	shredder := shred.New(cfg, logger)
	shredder.DryRun = dryRun

	// Прогресс-бар по байтам каждого прохода в verbose режиме
	var bar *progressbar.ProgressBar
	var currentPath string
	if verbose {
		shredder.OnPassStart = func(kind shred.PassKind, index, total int, size int64) {
			bar = progressbar.NewOptions64(
				size,
				progressbar.OptionSetDescription(fmt.Sprintf("%s: проход %d/%d (%s)", filepath.Base(currentPath), index, total, kind)),
				progressbar.OptionSetRenderBlankState(true),
				progressbar.OptionShowBytes(true),
				progressbar.OptionThrottle(100*time.Millisecond),
			)
		}
		shredder.OnChunk = func(n int64) {
			if bar != nil {
				bar.Add64(n)
			}
		}
	}

	var hasWarnings, hasErrors bool
	var operations []*shred.FileOperation

	// Файлы обрабатываются строго последовательно и независимо
	for _, path := range args {
		currentPath = path
		op := shredder.Process(path)
		operations = append(operations, op)
		report.AddOperation(op)

		if verbose && bar != nil {
			fmt.Println()
			bar = nil
		}

		switch op.Outcome {
		case shred.OutcomeSuccess:
			if op.Warning != "" {
				hasWarnings = true
			}
		case shred.OutcomeSkippedNotRegular, shred.OutcomeSkippedProtected:
			hasWarnings = true
			fmt.Fprintf(os.Stderr, "Пропущено %s: %s\n", path, op.Warning)
		default:
			hasErrors = true
			fmt.Fprintf(os.Stderr, "Ошибка %s: %s (%s)\n", path, op.Error, op.Outcome)
		}
	}

	// Вывод результатов
	fmt.Println("\nРезультаты:")
	fmt.Println("==================")
	for _, op := range operations {
		status := "✓"
		if op.Outcome == shred.OutcomeSkippedNotRegular || op.Outcome == shred.OutcomeSkippedProtected {
			status = "⚠"
		} else if op.Outcome != shred.OutcomeSuccess {
			status = "✗"
		}

		fmt.Printf("%s %s - %s (%s, %.1f MB/s)\n", status, op.Path, op.Outcome,
			humanize.Bytes(op.BytesWritten), op.SpeedMBps)

		if op.Warning != "" {
			fmt.Printf("  Предупреждение: %s\n", op.Warning)
		}
		if op.Error != "" {
			fmt.Printf("  Ошибка: %s\n", op.Error)
		}
	}

	exitCode := EXIT_SUCCESS
	if hasErrors {
		exitCode = EXIT_ERROR
	} else if hasWarnings {
		exitCode = EXIT_WARNING
	}

	report.Finalize(exitCode, startTime)
	if cfg.Reporting.Enabled || reportPath != "" {
		dir := cfg.Reporting.LocalPath
		if reportPath != "" {
			dir = reportPath
		}
		if saved, err := report.Save(dir); err != nil {
			logger.Log("WARN", "Ошибка сохранения отчёта", "error", err.Error())
		} else {
			logger.Log("INFO", "Отчёт сохранён", "run_id", report.RunID, "file", saved)
		}
	}

	if hasErrors {
		return errSomeFailed
	}
	if hasWarnings {
		return errWithWarnings
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer logger.Close()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	for _, path := range paths {
		info, err := system.GetFilesystemInfo(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка %s: %v\n", path, err)
			continue
		}

		fmt.Printf("%s: %s, всего %s, свободно %s\n", info.Path, info.Type,
			humanize.IBytes(info.TotalSize), humanize.IBytes(info.FreeSize))
		if info.Weak {
			fmt.Printf("  ⚠ Перезапись на %s не гарантирует уничтожение данных\n", info.Type)
		}
	}

	return nil
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer logger.Close()

	checks := diag.RunAll(logger)
	for _, c := range checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s: %s\n", status, c.Name, c.Detail)
	}

	if !diag.AllPassed(checks) {
		return fmt.Errorf("обнаружены критические проблемы")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Корректные exit codes
		switch {
		case errors.Is(err, errWithWarnings):
			os.Exit(EXIT_WARNING)
		default:
			os.Exit(EXIT_ERROR)
		}
	}
	os.Exit(EXIT_SUCCESS)
}
