//go:build linux

package random

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// getrandomSource читает случайные данные через системный вызов getrandom(2)
type getrandomSource struct{}

func (getrandomSource) Name() string { return "getrandom" }

func (getrandomSource) Fill(buf []byte) error {
	off := 0
	for off < len(buf) {
		n, err := unix.Getrandom(buf[off:], 0)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("getrandom: %w", err)
		}
		off += n
	}
	return nil
}

func platformSources() []Source {
	return []Source{getrandomSource{}, &DeviceSource{Path: DefaultDevicePath}}
}
