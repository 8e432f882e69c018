//go:build linux

package shred

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync сбрасывает данные без метаданных, повторяя EINTR
func fdatasync(f *os.File) error {
	for {
		err := unix.Fdatasync(int(f.Fd()))
		if err != unix.EINTR {
			return err
		}
	}
}

func syncStrategies() []syncStrategy {
	return []syncStrategy{
		{name: "fdatasync", fn: fdatasync},
		{name: "fsync", fn: (*os.File).Sync},
	}
}
