//go:build linux

package watcher

import "golang.org/x/sys/unix"

// Superblock magic numbers from statfs(2).
const (
	nfsMagic    = 0x6969
	smbMagic    = 0x517b
	cifsMagic   = 0xff534d42
	smb2Magic   = 0xfe534d42
	fuseMagic   = 0x65735546
	v9fsMagic   = 0x01021997
	afsMagic    = 0x5346414f
	cephMagic   = 0x00c36400
	lustreMagic = 0x0bd00bd0
)

func detectFilesystemType(path string) FilesystemType {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return FSTypeUnknown
	}
	switch uint32(st.Type) {
	case nfsMagic, afsMagic, cephMagic, lustreMagic, v9fsMagic:
		return FSTypeNFS
	case smbMagic, cifsMagic, smb2Magic:
		return FSTypeSMB
	case fuseMagic:
		// sshfs and other FUSE mounts share one magic number
		return FSTypeFUSE
	}
	return FSTypeLocal
}
