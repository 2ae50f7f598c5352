package build

import (
	"strings"
)

// Capture selects where a logged step's output goes.
type Capture int

const (
	CaptureNone   = Capture(iota) // inherit the console
	CaptureTee                    // duplicate stdout to console and log file
	CaptureStdout                 // stdout to log file only
	CaptureStderr                 // stderr to log file only
)

func (c Capture) String() string {
	switch c {
	case CaptureNone:
		return "none"
	case CaptureTee:
		return "tee"
	case CaptureStdout:
		return "stdout"
	case CaptureStderr:
		return "stderr"
	default:
		return "<invalid>"
	}
}

// Step is a single external invocation of the build sequence. Commands are
// assembled from argument vectors; nothing passes through a shell.
type Step struct {
	Tool       string
	Args       []string
	Capture    Capture
	BestEffort bool // a non-zero exit status does not abort the run
}

func (s *Step) commandLine() string {
	if len(s.Args) == 0 {
		return s.Tool
	}
	return s.Tool + " " + strings.Join(s.Args, " ")
}
