//go:build !linux

package watcher

func detectFilesystemType(path string) FilesystemType {
	return FSTypeUnknown
}
