package build

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

// StepError reports a strict step that exited with a non-zero status.
type StepError struct {
	Tool   string
	Status int
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed with status %d", e.Tool, e.Status)
}

func (e *StepError) Unwrap() error { return e.Err }

// Runner executes build steps. It owns the log sequence counter: logged
// steps produce logs/<seq>_<tool>.log, with seq starting at 1 on every run
// so a rerun overwrites the previous logs.
type Runner struct {
	Trial   bool
	Verbose bool

	Dir    string    // working directory applied to every spawned command
	LogDir string    // where per-step log files go
	Out    io.Writer // trial-mode announcements

	seq     int
	execute func(*exec.Cmd) error
}

func NewRunner(dir, logDir string) *Runner {
	return &Runner{
		Dir:     dir,
		LogDir:  logDir,
		Out:     os.Stdout,
		seq:     1,
		execute: func(x *exec.Cmd) error { return x.Run() },
	}
}

// Run executes a step with its output left on the console.
func (r *Runner) Run(s *Step) error {
	return r.run(s, nil)
}

// RunLogged executes a step with its output captured to a sequence-numbered
// log file. The sequence counter advances even in trial mode, so trial
// output mirrors the step ordering of a real run.
func (r *Runner) RunLogged(s *Step) error {
	fn := filepath.Join(r.LogDir, fmt.Sprintf("%d_%s.log", r.seq, filepath.Base(s.Tool)))
	r.seq++

	if r.Trial {
		fmt.Fprintf(r.Out, "[trial] %s\n", s.commandLine())
		return nil
	}

	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("cannot create log file: %w", err)
	}
	defer f.Close()

	return r.run(s, f)
}

func (r *Runner) run(s *Step, logf io.Writer) error {
	if r.Trial {
		fmt.Fprintf(r.Out, "[trial] %s\n", s.commandLine())
		return nil
	}
	if r.Verbose {
		log.Printf("> %s\n", s.commandLine())
	}

	x := exec.Command(s.Tool, s.Args...)
	x.Dir = r.Dir
	x.Stdout = os.Stdout
	x.Stderr = os.Stderr
	if logf != nil {
		switch s.Capture {
		case CaptureTee:
			x.Stdout = io.MultiWriter(os.Stdout, logf)
		case CaptureStdout:
			x.Stdout = logf
		case CaptureStderr:
			x.Stderr = logf
		}
	}

	err := r.execute(x)
	if err == nil {
		return nil
	}
	status := exitStatus(err)
	if s.BestEffort {
		log.Printf("ignoring %s failure (status %d)\n", s.Tool, status)
		return nil
	}
	return &StepError{Tool: s.Tool, Status: status, Err: err}
}

// exitStatus extracts the process exit status, defaulting to 1 when the
// command failed before producing one.
func exitStatus(err error) int {
	var xe *exec.ExitError
	if errors.As(err, &xe) {
		if code := xe.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}
