//go:build linux

package system

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Магические числа файловых систем из statfs(2)
const (
	magicExt     = 0xef53
	magicXFS     = 0x58465342
	magicBtrfs   = 0x9123683e
	magicZFS     = 0x2fc12fc1
	magicNFS     = 0x6969
	magicTmpfs   = 0x01021994
	magicRamfs   = 0x858458f6
	magicOverlay = 0x794c7630
	magicF2FS    = 0xf2f52010
	magicVFAT    = 0x4d44
	magicSquash  = 0x73717368
)

// GetFilesystemInfo определяет файловую систему по пути через statfs
func GetFilesystemInfo(path string) (FilesystemInfo, error) {
	info := FilesystemInfo{Path: path, Type: "unknown"}

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return info, fmt.Errorf("statfs %s: %w", path, err)
	}

	bsize := uint64(st.Bsize)
	info.TotalSize = st.Blocks * bsize
	info.FreeSize = st.Bavail * bsize

	switch int64(st.Type) {
	case magicExt:
		info.Type = "ext2/ext3/ext4"
	case magicXFS:
		info.Type = "xfs"
	case magicF2FS:
		info.Type = "f2fs"
	case magicVFAT:
		info.Type = "vfat"
	case magicBtrfs:
		info.Type = "btrfs"
		info.Weak = true
	case magicZFS:
		info.Type = "zfs"
		info.Weak = true
	case magicNFS:
		info.Type = "nfs"
		info.Weak = true
	case magicTmpfs:
		info.Type = "tmpfs"
		info.Weak = true
	case magicRamfs:
		info.Type = "ramfs"
		info.Weak = true
	case magicOverlay:
		info.Type = "overlayfs"
		info.Weak = true
	case magicSquash:
		info.Type = "squashfs"
		info.Weak = true
	}

	return info, nil
}
