package security

import (
	"fmt"
	"path/filepath"
	"strings"

	"shredfile_enterprise/internal/config"
)

// CheckPath проверяет, что цель не лежит внутри защищённого пути
func CheckPath(cfg *config.Config, path string) error {
	if cfg == nil {
		cfg = config.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	for _, protected := range cfg.Security.ProtectedPaths {
		if isUnder(abs, filepath.Clean(protected)) {
			return fmt.Errorf("путь %s находится внутри защищённой директории %s", path, protected)
		}
	}

	return nil
}

// isUnder сравнивает пути покомпонентно, а не по префиксу строки
func isUnder(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
