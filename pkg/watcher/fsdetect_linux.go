//go:build linux

package watcher

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// statfs magic numbers from linux/magic.h.
const (
	nfsSuperMagic   = 0x6969
	smbSuperMagic   = 0x517b
	cifsMagicNumber = 0xff534d42
	smb2MagicNumber = 0xfe534d42
	fuseSuperMagic  = 0x65735546
)

func detectFilesystemType(path string) FilesystemType {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return FSTypeUnknown
	}
	switch uint32(st.Type) {
	case nfsSuperMagic:
		return FSTypeNFS
	case smbSuperMagic, cifsMagicNumber, smb2MagicNumber:
		return FSTypeSMB
	case fuseSuperMagic:
		if isLinuxSSHFS(path) {
			return FSTypeSSHFS
		}
		return FSTypeFUSE
	default:
		return FSTypeLocal
	}
}

// isLinuxSSHFS reports whether the longest mount containing path is an
// sshfs mount according to /proc/self/mounts.
func isLinuxSSHFS(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if _, err := os.Stat(abs); err != nil {
		return false
	}

	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		return false
	}
	defer f.Close()

	best := ""
	bestType := ""
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint := unescapeMountField(fields[1])
		if !pathWithinMount(abs, mountPoint) {
			continue
		}
		if len(mountPoint) >= len(best) {
			best = mountPoint
			bestType = fields[2]
		}
	}
	return bestType == "fuse.sshfs" || bestType == "sshfs"
}

func pathWithinMount(path, mountPoint string) bool {
	if mountPoint == "" {
		return false
	}
	if mountPoint == "/" {
		return strings.HasPrefix(path, "/")
	}
	mountPoint = strings.TrimSuffix(mountPoint, "/")
	return path == mountPoint || strings.HasPrefix(path, mountPoint+"/")
}

// unescapeMountField decodes the octal escapes the kernel uses for spaces,
// tabs, newlines and backslashes in /proc mount fields.
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	r := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return r.Replace(s)
}
