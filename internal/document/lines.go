package document

import "strings"

// Format records how a side's content was laid out so it can be joined back
// into the same text.
type Format struct {
	EOL          string // "\n" or "\r\n"
	FinalNewline bool
}

// DefaultFormat is used for sides that have never been loaded.
var DefaultFormat = Format{EOL: "\n", FinalNewline: true}

// SplitLines splits content on line boundaries. A trailing line terminator
// does not produce an extra empty line, and "\r\n" is treated as one
// terminator when it is the dominant style.
func SplitLines(content string) ([]string, Format) {
	if content == "" {
		return nil, DefaultFormat
	}

	f := Format{EOL: "\n"}
	lf := strings.Count(content, "\n")
	if crlf := strings.Count(content, "\r\n"); crlf > 0 && crlf == lf {
		f.EOL = "\r\n"
	}

	if strings.HasSuffix(content, f.EOL) {
		f.FinalNewline = true
		content = content[:len(content)-len(f.EOL)]
	}
	return strings.Split(content, f.EOL), f
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string, f Format) string {
	if len(lines) == 0 {
		return ""
	}
	eol := f.EOL
	if eol == "" {
		eol = "\n"
	}
	s := strings.Join(lines, eol)
	if f.FinalNewline {
		s += eol
	}
	return s
}
