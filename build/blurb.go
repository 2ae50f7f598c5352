package build

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adnsv/go-pandoc"
	"github.com/adnsv/go-utils/fs"
	"github.com/mkbook/coverbuild/latex"
)

// convertBlurbs renders Markdown cover text found in dir into .tex
// includes the cover sources can \input. Conversion happens before the
// compile passes; a pandoc failure aborts the build.
func convertBlurbs(dir string, trial bool, out io.Writer) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return err
	}
	for _, fn := range matches {
		if reservedBlurbName(fn) {
			log.Printf("skipping %s: output name is taken by a cover source\n", fn)
			continue
		}
		if trial {
			fmt.Fprintf(out, "[trial] pandoc -t json %s\n", fn)
			continue
		}
		err = convertBlurb(fn)
		if err != nil {
			return err
		}
	}
	return nil
}

// reservedBlurbName guards the four authored cover sources from being
// clobbered by a generated include of the same basename.
func reservedBlurbName(fn string) bool {
	base := strings.TrimSuffix(filepath.Base(fn), filepath.Ext(fn))
	if base == assemblyDoc {
		return true
	}
	for _, doc := range passDocs {
		if base == doc {
			return true
		}
	}
	return false
}

func convertBlurb(fn string) error {
	log.Printf("converting %s\n", fn)
	jbuf, err := exec.Command("pandoc", "-t", "json", fn).Output()
	if err != nil {
		return fmt.Errorf("pandoc error: %w", err)
	}

	d, err := pandoc.NewDocument(jbuf)
	if err != nil {
		return err
	}
	flow, err := d.Flow()
	if err != nil {
		return err
	}

	out := &bytes.Buffer{}
	w := latex.NewWriter(out)
	w.WriteBlocks(flow)

	texFN := strings.TrimSuffix(fn, filepath.Ext(fn)) + ".tex"
	log.Printf("- writing %s\n", texFN)
	return fs.WriteFileIfChanged(texFN, out.Bytes())
}
