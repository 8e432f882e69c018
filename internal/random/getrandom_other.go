//go:build !linux

package random

// Платформы без getrandom(2) читают только из устройства
func platformSources() []Source {
	return []Source{&DeviceSource{Path: DefaultDevicePath}}
}
