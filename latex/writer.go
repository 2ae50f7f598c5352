// Package latex converts Pandoc AST fragments to LaTeX markup suitable
// for \input into cover documents.
package latex

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adnsv/go-pandoc"
)

// Writer converts Pandoc AST elements to LaTeX markup. It maintains state
// during conversion including the separator inserted before the next block.
type Writer struct {
	out      io.Writer
	blockSep string
}

// NewWriter creates a Writer that emits LaTeX markup to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

func (w *Writer) wr(s string) {
	fmt.Fprint(w.out, s)
}

// makeHeading maps a Markdown heading level to a starred sectioning
// command. Cover text is never numbered, so only the starred forms are
// produced; levels past \paragraph collapse to an empty command.
func makeHeading(lvl int) string {
	switch lvl {
	case 1:
		return "\\section*"
	case 2:
		return "\\subsection*"
	case 3:
		return "\\subsubsection*"
	case 4:
		return "\\paragraph*"
	default:
		return ""
	}
}

// writeBlock converts a single Pandoc block element to LaTeX markup.
// Constructs with no place on a book cover (tables, floats, divs) are
// skipped.
func (w *Writer) writeBlock(b pandoc.Block) {
	switch b := b.(type) {
	case *pandoc.Plain:
		w.WriteInlines(b.Inlines)
		w.blockSep = "\n\n"

	case *pandoc.Para:
		w.WriteInlines(b.Inlines)
		w.blockSep = "\n\n"

	case *pandoc.LineBlock:
		for i, ll := range b.Lines {
			if i > 0 {
				w.wr("\\\\\n")
			}
			w.WriteInlines(ll)
		}
		w.blockSep = "\n\n"

	case *pandoc.CodeBlock:
		w.wr("\\begin{verbatim}\n")
		w.wr(b.Text)
		w.wr("\n\\end{verbatim}")
		w.blockSep = "\n\n"

	case *pandoc.BlockQuote:
		w.wr("\\begin{quote}")
		w.blockSep = "\n"
		w.WriteBlocks(b.Blocks)
		w.wr("\n\\end{quote}")
		w.blockSep = "\n\n"

	case *pandoc.OrderedList:
		w.wr("\\begin{enumerate}")
		for _, bb := range b.Items {
			w.wr("\n\\item ")
			w.blockSep = ""
			w.WriteBlocks(bb)
			w.blockSep = "\n\n"
		}
		w.wr("\n\\end{enumerate}")
		w.blockSep = "\n\n"

	case *pandoc.BulletList:
		w.wr("\\begin{itemize}")
		for _, bb := range b.Items {
			w.wr("\n\\item ")
			w.blockSep = ""
			w.WriteBlocks(bb)
			w.blockSep = "\n\n"
		}
		w.wr("\n\\end{itemize}")
		w.blockSep = "\n\n"

	case *pandoc.DefinitionList:
		w.wr("\\begin{description}")
		for _, item := range b.Items {
			w.wr("\n\\item[")
			w.WriteInlines(item.Term)
			w.wr("] ")
			w.blockSep = ""
			for _, bb := range item.Definitions {
				w.WriteBlocks(bb)
			}
			w.blockSep = "\n\n"
		}
		w.wr("\n\\end{description}")
		w.blockSep = "\n\n"

	case *pandoc.Header:
		h := makeHeading(b.Level)
		if h != "" {
			w.wr(h)
			w.wr("{")
			w.WriteInlines(b.Inlines)
			w.wr("}")
		} else {
			w.WriteInlines(b.Inlines)
		}
		w.blockSep = "\n\n"

	case *pandoc.HorizontalRule:
		w.wr("\\noindent\\hrulefill")
		w.blockSep = "\n\n"

	case *pandoc.RawBlock:
		if b.Format == "tex" || b.Format == "latex" {
			w.wr(b.Text)
			w.blockSep = "\n\n"
		}

	default:
		w.blockSep = ""
	}
}

// WriteBlocks converts a sequence of Pandoc blocks to LaTeX markup,
// inserting block separators between elements.
func (w *Writer) WriteBlocks(bb []pandoc.Block) {
	for _, b := range bb {
		w.wr(w.blockSep)
		w.writeBlock(b)
	}
}

// FlattenInlines converts a list of inline elements to a plain escaped
// string, dropping formatting.
func FlattenInlines(ll pandoc.InlineList) string {
	buf := &bytes.Buffer{}
	for _, l := range ll {
		switch l := l.(type) {
		case *pandoc.Space:
			buf.WriteString(" ")
		case *pandoc.SoftBreak:
			buf.WriteString("\n")
		case *pandoc.LineBreak:
			buf.WriteString("\n")
		case *pandoc.Str:
			buf.WriteString(EscapeStr(l.Text))
		case *pandoc.Formatted:
			buf.WriteString(FlattenInlines(l.Content))
		case *pandoc.Quoted:
			buf.WriteString(FlattenInlines(l.Content))
		case *pandoc.RawInline:
			buf.WriteString(l.Text)
		}
	}
	return buf.String()
}

// WriteInlines converts a list of Pandoc inline elements to LaTeX markup.
func (w *Writer) WriteInlines(ll pandoc.InlineList) {
	for _, l := range ll {
		switch l := l.(type) {
		case *pandoc.Space:
			w.wr(" ")

		case *pandoc.SoftBreak:
			w.wr("\n")

		case *pandoc.LineBreak:
			w.wr("\\\\\n")

		case *pandoc.Str:
			w.wr(EscapeStr(l.Text))

		case *pandoc.Formatted:
			w.wr(latexFmt(l.Fmt))
			w.WriteInlines(l.Content)
			w.wr("}")

		case *pandoc.Quoted:
			if l.QuoteType == "SingleQuote" {
				w.wr("`")
				w.WriteInlines(l.Content)
				w.wr("'")
			} else {
				w.wr("``")
				w.WriteInlines(l.Content)
				w.wr("''")
			}

		case *pandoc.Code:
			w.wr("\\texttt{")
			w.wr(EscapeStr(l.Text))
			w.wr("}")

		case *pandoc.Math:
			if l.Type == "DisplayMath" {
				w.wr("\\[ ")
				w.wr(l.Text)
				w.wr(" \\]")
			} else {
				w.wr("$")
				w.wr(l.Text)
				w.wr("$")
			}

		case *pandoc.RawInline:
			if l.Format == "tex" || l.Format == "latex" {
				w.wr(l.Text)
			}

		case *pandoc.Link:
			url := l.Target.URL
			if strings.HasPrefix(url, "#") {
				// internal references have no meaning on a cover
				w.WriteInlines(l.Content)
				break
			}
			w.wr("\\href{")
			w.wr(url)
			w.wr("}{")
			w.WriteInlines(l.Content)
			w.wr("}")

			// Image, Cite, Span: skipped
		}
	}
}

var escaper = strings.NewReplacer(
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeStr escapes the LaTeX special characters in a string.
func EscapeStr(s string) string {
	if strings.ContainsAny(s, "\\~%$#&_{}^") {
		s = escaper.Replace(s)
	}
	return s
}

// latexFmt converts a Pandoc inline format type to the opening of the
// corresponding LaTeX command. Callers close with "}".
func latexFmt(f pandoc.InlineFmt) string {
	switch f {
	case pandoc.Emph:
		return "\\emph{"
	case pandoc.Underline:
		return "\\underline{"
	case pandoc.Strong:
		return "\\textbf{"
	case pandoc.Strikeout:
		return "\\sout{"
	case pandoc.Superscript:
		return "\\textsuperscript{"
	case pandoc.Subscript:
		return "\\textsubscript{"
	case pandoc.SmallCaps:
		return "\\textsc{"
	default:
		return "{"
	}
}
