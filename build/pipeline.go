package build

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/adnsv/go-utils/fs"
	"github.com/mkbook/coverbuild/params"
)

// ExitBadInput is the exit status for a missing or malformed required
// input, checked before any compiler runs.
const ExitBadInput = 666

const (
	paramsFile  = "BookParameters.tex"
	coverDir    = "cover"
	configFile  = "cover.yaml"
	assemblyDoc = "Cover"
)

// passDocs are compiled twice (or cfg.Passes times) before assembly so
// that cross-references such as the computed spine width settle.
var passDocs = []string{"FrontCover", "BackCover", "SpineCover"}

// InputError reports a failed build precondition.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

func inputErrorf(format string, args ...interface{}) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// Pipeline drives the full cover build from the invocation root: compile
// passes over the three sub-documents, assembly, cleanup, and the final
// copy of the cover PDF back to the root.
type Pipeline struct {
	Root    string // invocation root; cover sources live in Root/cover
	Trial   bool
	Verbose bool
	Out     io.Writer // trial-mode announcements, defaults to stdout

	execute func(*exec.Cmd) error // stubbed in tests
}

func (p *Pipeline) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Run executes the build sequence start to finish. It returns an
// *InputError for precondition failures, a *StepError when a strict step
// fails, or nil on success.
func (p *Pipeline) Run() error {
	paramsFN := filepath.Join(p.Root, paramsFile)
	dir := filepath.Join(p.Root, coverDir)
	mainTex := filepath.Join(dir, assemblyDoc+".tex")

	if !fs.FileExists(paramsFN) {
		return inputErrorf("missing parameters file %s", paramsFN)
	}
	if !fs.FileExists(mainTex) {
		return inputErrorf("missing assembly source %s", mainTex)
	}

	cfg, err := LoadConfig(filepath.Join(dir, configFile))
	if err != nil {
		return inputErrorf("%v", err)
	}

	logDir := filepath.Join(dir, "logs")
	err = os.MkdirAll(logDir, 0755)
	if err != nil {
		return err
	}

	p.reportParameters(paramsFN)

	err = convertBlurbs(dir, p.Trial, p.out())
	if err != nil {
		return err
	}

	r := NewRunner(dir, logDir)
	r.Trial = p.Trial
	r.Verbose = p.Verbose
	r.Out = p.out()
	if p.execute != nil {
		r.execute = p.execute
	}

	for pass := 1; pass <= cfg.Passes; pass++ {
		for _, doc := range passDocs {
			log.Printf("compiling %s (pass %d)\n", doc, pass)
			err = r.RunLogged(cfg.compileStep(doc))
			if err != nil {
				return err
			}
		}
	}

	log.Printf("assembling %s\n", assemblyDoc)
	err = r.RunLogged(cfg.compileStep(assemblyDoc))
	if err != nil {
		return err
	}

	log.Printf("cleaning intermediates\n")
	err = r.RunLogged(cfg.cleanupStep())
	if err != nil {
		return err
	}

	pdf := filepath.Join(dir, assemblyDoc+".pdf")
	dst := filepath.Join(p.Root, assemblyDoc+".pdf")
	if p.Trial {
		fmt.Fprintf(p.out(), "[trial] copy %s -> %s\n", pdf, dst)
	} else {
		log.Printf("copying %s -> %s\n", pdf, dst)
		err = copyFile(pdf, dst)
		if err != nil {
			return &StepError{Tool: "copy", Status: 1, Err: err}
		}
	}

	log.Printf("cover build complete\n")
	return nil
}

// reportParameters prints the one-line book summary. Missing parameters
// show as blanks; trial mode reads nothing and reports blanks.
func (p *Pipeline) reportParameters(fn string) {
	var pages, width, height string
	if !p.Trial {
		pages, _ = params.ExtractFile(fn, "TotalPageCount")
		width, _ = params.ExtractFile(fn, "PaperWidth")
		height, _ = params.ExtractFile(fn, "PaperHeight")
	}
	log.Printf("book: %s pages, paper %s x %s\n", pages, width, height)
}

func copyFile(src, dst string) error {
	buf, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, buf, 0644)
}
