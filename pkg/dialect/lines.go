package dialect

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

// LineReader iterates over the lines of a stream and tracks line numbers.
type LineReader struct {
	sc   *bufio.Scanner
	line int
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineReader{sc: sc}
}

// Next advances to the next line.
func (l *LineReader) Next() bool {
	if !l.sc.Scan() {
		return false
	}
	l.line++
	return true
}

// Text returns the current line without the line terminator.
func (l *LineReader) Text() string {
	return strings.TrimRight(l.sc.Text(), "\r")
}

// Line returns the 1-based number of the current line.
func (l *LineReader) Line() int { return l.line }

// Err returns the first read error.
func (l *LineReader) Err() error { return l.sc.Err() }

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// HasCommentPrefix reports whether the trimmed line starts with one of the
// given comment markers.
func HasCommentPrefix(line string, markers ...string) bool {
	s := strings.TrimSpace(line)
	for _, m := range markers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

// StripComment removes everything from the first marker on.
func StripComment(line, marker string) string {
	if i := strings.Index(line, marker); i >= 0 {
		return line[:i]
	}
	return line
}

// Column returns the trimmed bytes [start, end) of a fixed-column line.
// Out-of-range columns yield "". end < 0 means to the end of the line.
func Column(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end < 0 || end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

// ParseFloat parses a float, accepting Fortran exponents (1.0D-3).
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("D", "E", "d", "e").Replace(s)
	return strconv.ParseFloat(s, 64)
}

// ParseFloats parses every field as a float.
func ParseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseFloat(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ParseInt parses a decimal integer. Fortran-style "3." is accepted.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrSyntax}
	}
	return int(f), nil
}
