//go:build linux

package watcher

import "testing"

func TestPathWithinMount(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mountPoint string
		want       bool
	}{
		{"empty mount", "/data/results.jsonl", "", false},
		{"root mount", "/data/results.jsonl", "/", true},
		{"relative path under root", "data/results.jsonl", "/", false},
		{"exact match", "/mnt/podcasts", "/mnt/podcasts", true},
		{"inside mount", "/mnt/podcasts/2024/results.jsonl", "/mnt/podcasts", true},
		{"outside mount", "/home/me/results.jsonl", "/mnt/podcasts", false},
		{"sibling with shared prefix", "/mnt/podcasts2/results.jsonl", "/mnt/podcasts", false},
		{"trailing slash", "/mnt/podcasts/results.jsonl", "/mnt/podcasts/", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pathWithinMount(tc.path, tc.mountPoint); got != tc.want {
				t.Errorf("pathWithinMount(%q, %q) = %v, want %v", tc.path, tc.mountPoint, got, tc.want)
			}
		})
	}
}

func TestUnescapeMountField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/mnt/data", "/mnt/data"},
		{`/mnt/my\040shows`, "/mnt/my shows"},
		{`/mnt/a\011b`, "/mnt/a\tb"},
		{`/mnt/a\012b`, "/mnt/a\nb"},
		{`/mnt/a\134b`, `/mnt/a\b`},
		{`/mnt/a\040b\011c\012d\134e`, "/mnt/a b\tc\nd\\e"},
	}
	for _, tc := range tests {
		if got := unescapeMountField(tc.in); got != tc.want {
			t.Errorf("unescapeMountField(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDetectFilesystemType_InvalidPath(t *testing.T) {
	if got := detectFilesystemType("/nonexistent/podgraph/path"); got != FSTypeUnknown {
		t.Errorf("detectFilesystemType(missing) = %v, want unknown", got)
	}
}

func TestIsLinuxSSHFS_LocalAndMissing(t *testing.T) {
	if isLinuxSSHFS("/nonexistent/podgraph/path") {
		t.Error("missing path reported as sshfs")
	}
	if isLinuxSSHFS(t.TempDir()) {
		t.Error("temp dir reported as sshfs")
	}
}

func TestIsRemoteFilesystem(t *testing.T) {
	remote := map[FilesystemType]bool{
		FSTypeUnknown: false,
		FSTypeLocal:   false,
		FSTypeNFS:     true,
		FSTypeSMB:     true,
		FSTypeSSHFS:   true,
		FSTypeFUSE:    true,
	}
	for fs, want := range remote {
		if got := isRemoteFilesystem(fs); got != want {
			t.Errorf("isRemoteFilesystem(%v) = %v, want %v", fs, got, want)
		}
	}
}
