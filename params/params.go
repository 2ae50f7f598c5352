// Package params reads \Key{value} parameters from TeX parameter files.
//
// A parameter is a control word immediately followed by a balanced-brace
// group, e.g. \TotalPageCount{250}. Braces preceded by an odd number of
// backslashes are treated as text, not group delimiters.
package params

import (
	"os"
	"strings"
)

// Extract returns the value of the first \key{...} entry in buf. A missing
// key yields ("", false), never an error.
func Extract(buf []byte, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	s := string(buf)
	marker := `\` + key + `{`
	pos := strings.Index(s, marker)
	if pos < 0 {
		return "", false
	}
	return scanBraceGroup(s[pos+len(marker):])
}

// ExtractFile reads fn and returns the value of the first \key{...} entry.
// A missing key yields an empty value; only the file read can fail.
func ExtractFile(fn, key string) (string, error) {
	buf, err := os.ReadFile(fn)
	if err != nil {
		return "", err
	}
	v, _ := Extract(buf, key)
	return v, nil
}

// scanBraceGroup captures everything up to the brace that closes the group
// opened just before s. Nested balanced groups are kept verbatim.
func scanBraceGroup(s string) (string, bool) {
	depth := 1
	backslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			backslashes++
			continue
		case '{':
			if backslashes%2 == 0 {
				depth++
			}
		case '}':
			if backslashes%2 == 0 {
				depth--
				if depth == 0 {
					return s[:i], true
				}
			}
		}
		backslashes = 0
	}
	// unterminated group
	return "", false
}
