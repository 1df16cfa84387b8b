// Package version holds the build version of podgraph.
package version

import "runtime/debug"

// Version is the current application version.
// This is a var (not const) so it can be overridden at build time via:
//
//	go build -ldflags "-X github.com/vanderheijden86/podgraph/pkg/version.Version=v1.2.3"
var Version = "v0.1.0"

func init() {
	if Version != "v0.1.0" {
		return
	}
	// go install stamps the module version; prefer it over the default.
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			Version = v
		}
	}
}
