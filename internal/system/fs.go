package system

// FilesystemInfo contains information about the filesystem backing a path
type FilesystemInfo struct {
	Path      string
	Type      string // ext4/xfs/btrfs/... или unknown
	TotalSize uint64
	FreeSize  uint64
	// Weak is set when overwrite-in-place gives no destruction
	// guarantee on this filesystem (copy-on-write, network, memory
	// backed, or layered storage).
	Weak bool
}
