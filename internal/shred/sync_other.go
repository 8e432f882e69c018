//go:build !linux

package shred

import (
	"os"
)

func syncStrategies() []syncStrategy {
	return []syncStrategy{
		{name: "fsync", fn: (*os.File).Sync},
	}
}
