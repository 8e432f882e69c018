package random

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// DefaultDevicePath путь к блокирующему устройству случайных данных
const DefaultDevicePath = "/dev/urandom"

// DeviceSource reads random bytes from a device file. The device is
// opened per call; one Fill covers one chunk of an overwrite pass, so
// the open cost is negligible against the write itself.
type DeviceSource struct {
	Path string
}

func (d *DeviceSource) Name() string { return d.Path }

// Fill читает ровно len(buf) байт, повторяя короткие чтения
func (d *DeviceSource) Fill(buf []byte) error {
	f, err := os.Open(d.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.Path, err)
	}
	defer f.Close()

	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		if n > 0 {
			total += n
		}
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			if err == io.EOF {
				return fmt.Errorf("%s: short read of %d/%d bytes", d.Path, total, len(buf))
			}
			return fmt.Errorf("read %s: %w", d.Path, err)
		}
	}
	return nil
}
