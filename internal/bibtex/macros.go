package bibtex

import (
	"fmt"
	"strconv"
	"strings"

	bib "github.com/nickng/bibtex"
)

// monthMacros are the macros the parser defines implicitly.
var monthMacros = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true, "may": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true, "dec": true,
}

// macroScanner walks a BibTeX source the way the parser tokenizes it and
// checks every macro reference against the @string definitions seen so far.
// The parser exits the process on an undefined macro, so this runs first.
type macroScanner struct {
	src  []rune
	pos  int
	line int

	defined map[string]bool
	// order lists user-defined macro names in definition order.
	order []string
}

// scanMacros returns the names defined by @string entries in source order, or
// an error for the first reference to a macro that is not defined at that
// point.
func scanMacros(src string) ([]string, error) {
	s := &macroScanner{
		src:     []rune(src),
		line:    1,
		defined: make(map[string]bool),
	}

	for s.skipTo('@') {
		s.next()
		s.skipSpace()

		kind := strings.ToLower(s.bare())

		var err error

		switch kind {
		case "", "comment":
			continue
		case "string":
			err = s.stringEntry()
		case "preamble":
			err = s.preambleEntry()
		default:
			err = s.entry()
		}

		if err != nil {
			return nil, err
		}
	}

	return s.order, nil
}

func (s *macroScanner) stringEntry() error {
	if err := s.open(); err != nil {
		return err
	}

	s.skipSpace()

	name := s.bare()
	if name == "" {
		return s.unexpected()
	}

	s.skipSpace()

	if err := s.expect('='); err != nil {
		return err
	}

	if err := s.value(true); err != nil {
		return err
	}

	if !s.defined[name] {
		s.order = append(s.order, name)
	}

	s.defined[name] = true

	return nil
}

func (s *macroScanner) preambleEntry() error {
	if err := s.open(); err != nil {
		return err
	}

	// Outside a field the parser reads bare numbers as macro names too.
	return s.value(false)
}

func (s *macroScanner) entry() error {
	if err := s.open(); err != nil {
		return err
	}

	s.skipSpace()

	if s.bare() == "" {
		return s.unexpected()
	}

	for {
		s.skipSpace()

		switch s.peek() {
		case ',':
			s.next()
			continue
		case '}', ')', 0:
			return nil
		}

		if s.bare() == "" {
			return s.unexpected()
		}

		s.skipSpace()

		if err := s.expect('='); err != nil {
			return err
		}

		if err := s.value(true); err != nil {
			return err
		}

		s.skipSpace()

		switch s.peek() {
		case ',', '}', ')', 0:
		default:
			return s.unexpected()
		}
	}
}

// value consumes a field value: braced or quoted strings, numbers and macro
// names joined by '#'.
func (s *macroScanner) value(inField bool) error {
	for {
		s.skipSpace()

		switch r := s.peek(); {
		case r == '{':
			s.braced()
		case r == '"':
			s.quoted()
		case isAlphanum(r):
			line := s.line

			word := s.bare()
			if inField && isNumber(word) {
				break
			}

			if !s.defined[word] && !monthMacros[word] {
				return fmt.Errorf("%w: %s at line %d", bib.ErrUnknownStringVar, word, line)
			}
		default:
			return s.unexpected()
		}

		s.skipSpace()

		if s.peek() != '#' {
			return nil
		}

		s.next()
	}
}

func (s *macroScanner) open() error {
	s.skipSpace()

	if r := s.peek(); r != '{' && r != '(' {
		return s.unexpected()
	}

	s.next()

	return nil
}

func (s *macroScanner) expect(r rune) error {
	if s.peek() != r {
		return s.unexpected()
	}

	s.next()

	return nil
}

func (s *macroScanner) unexpected() error {
	if s.peek() == 0 {
		return fmt.Errorf("unexpected end of input at line %d", s.line)
	}

	return fmt.Errorf("unexpected %q at line %d", s.peek(), s.line)
}

func (s *macroScanner) braced() {
	s.next()

	depth := 1
	for depth > 0 {
		switch s.next() {
		case 0:
			return
		case '{':
			depth++
		case '}':
			depth--
		}
	}
}

func (s *macroScanner) quoted() {
	s.next()

	depth := 0
	for {
		switch s.next() {
		case 0:
			return
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				return
			}
		}
	}
}

func (s *macroScanner) bare() string {
	if !isAlphanum(s.peek()) {
		return ""
	}

	start := s.pos
	for isAlphanum(s.peek()) || strings.ContainsRune("-_:./+", s.peek()) {
		s.next()
	}

	return string(s.src[start:s.pos])
}

// skipTo advances to the next r and reports whether one was found.
func (s *macroScanner) skipTo(r rune) bool {
	for s.pos < len(s.src) {
		if s.src[s.pos] == r {
			return true
		}

		s.next()
	}

	return false
}

func (s *macroScanner) skipSpace() {
	for isSpace(s.peek()) {
		s.next()
	}
}

func (s *macroScanner) peek() rune {
	if s.pos >= len(s.src) {
		return 0
	}

	return s.src[s.pos]
}

func (s *macroScanner) next() rune {
	if s.pos >= len(s.src) {
		return 0
	}

	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
	}

	return r
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isAlphanum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
