package abbrev

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"bibbrev/utils"
)

// Delimiter separates the full name from the abbreviation in text tables.
const Delimiter = "="

// maxLineSize bounds a single table line.
const maxLineSize = 1024 * 1024

// ErrFormat is matched by every FormatError.
var ErrFormat = errors.New("malformed abbreviation table")

// FormatError reports an unusable table line.
type FormatError struct {
	Source string // File path, if known
	Line   int    // 1-based line number
	Text   string // Offending line
	Reason string
}

func (e *FormatError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Source != "" {
		loc = e.Source + ":" + fmt.Sprint(e.Line)
	}

	return fmt.Sprintf("%s: %s: %q", loc, e.Reason, e.Text)
}

// Unwrap lets errors.Is(err, ErrFormat) match.
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

type loadOptions struct {
	lenient bool
	source  string
}

// Option configures table loading.
type Option func(*loadOptions)

// WithLenientDelimiters accepts lines with more than one delimiter and keeps
// only the text before the second one, as older tables expect.
func WithLenientDelimiters() Option {
	return func(o *loadOptions) {
		o.lenient = true
	}
}

// WithSource names the input in error messages.
func WithSource(name string) Option {
	return func(o *loadOptions) {
		o.source = name
	}
}

// LoadFile loads a table from path. Files ending in .yaml or .yml are read as
// YAML tables; anything else is read as a text table.
func LoadFile(path string, dir Direction, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open abbreviation file %s: %w", path, err)
	}
	defer f.Close()

	opts = append([]Option{WithSource(path)}, opts...)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f, dir, opts...)
	default:
		return Load(f, dir, opts...)
	}
}

// Load reads a text table. Lines that are empty after trailing whitespace is
// removed are skipped.
func Load(r io.Reader, dir Direction, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	t := newTable(dir)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)
		if line == "" {
			continue
		}

		full, abbrev, err := splitLine(line, o.lenient)
		if err != nil {
			return nil, &FormatError{
				Source: o.source,
				Line:   lineNo,
				Text:   line,
				Reason: err.Error(),
			}
		}

		t.add(full, abbrev, lineNo)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read abbreviation table: %w", err)
	}

	return t.seal(), nil
}

// splitLine splits "LEFT = RIGHT".
func splitLine(line string, lenient bool) (string, string, error) {
	parts := strings.Split(line, Delimiter)

	switch {
	case len(parts) < 2:
		return "", "", fmt.Errorf("missing %q delimiter", Delimiter)
	case len(parts) > 2 && !lenient:
		return "", "", fmt.Errorf("expected exactly one %q delimiter, found %d", Delimiter, len(parts)-1)
	}

	full, abbrev := utils.Unpack2(parts)

	return full, abbrev, nil
}

func applyOptions(opts []Option) loadOptions {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
