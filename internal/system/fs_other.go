//go:build !linux

package system

// GetFilesystemInfo без statfs не различает файловые системы
func GetFilesystemInfo(path string) (FilesystemInfo, error) {
	return FilesystemInfo{Path: path, Type: "unknown"}, nil
}
