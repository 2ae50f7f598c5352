package main

import (
	"runtime/debug"
)

var app_ver string = ""

// app_version returns the application version string. The version comes
// from build information (for go install), or from an ldflags-injected
// value, or "#UNAVAILABLE" when neither is present.
func app_version() string {
	v, ok := debug.ReadBuildInfo()
	if ok && v.Main.Version != "(devel)" {
		// installed with go install
		return v.Main.Version
	} else if app_ver != "" {
		// built with ld-flags
		return app_ver
	} else {
		return "#UNAVAILABLE"
	}
}
