// This package contains the [Scanner], the shared parse cursor that owns the
// position and syntax-error reporting for one decode call.
package scan

import (
	"fmt"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Error is the failure reported by everything raised during a decode:
// malformed syntax, element failures and arity violations alike. It carries
// the byte offset the scanner was at when the failure was raised.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Scanner reads JSON tokens from a byte slice.
//
// A scanner is used by a single decode call and is not safe for concurrent
// use. Codecs advance the scanner past the input they consume; after a
// failure the position points at the offending input.
type Scanner struct {
	data []byte
	pos  int
}

func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Offset returns the current position in the input.
func (s *Scanner) Offset() int {
	return s.pos
}

// Errorf returns an [*Error] stamped with the current position.
func (s *Scanner) Errorf(format string, args ...any) error {
	return &Error{Offset: s.pos, Msg: fmt.Sprintf(format, args...)}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
}

// Peek returns the next non-whitespace byte without consuming it.
func (s *Scanner) Peek() (byte, bool) {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos], true
}

// Expect consumes the next non-whitespace byte if it equals c.
func (s *Scanner) Expect(c byte) error {
	got, ok := s.Peek()
	if !ok {
		return s.Errorf("unexpected end of input, expected '%c'", c)
	}
	if got != c {
		return s.Errorf("unexpected '%c', expected '%c'", got, c)
	}
	s.pos++
	return nil
}

func (s *Scanner) tryConsume(c byte) bool {
	if got, ok := s.Peek(); ok && got == c {
		s.pos++
		return true
	}
	return false
}

// Delimited consumes a bracketed, comma-separated run: the open byte, zero
// or more entries with element invoked once per entry, and the close byte.
// Separator placement is enforced here, so element never sees a leading or
// trailing comma. The first element error aborts the run.
func (s *Scanner) Delimited(open, close byte, element func() error) error {
	if err := s.Expect(open); err != nil {
		return err
	}
	if s.tryConsume(close) {
		return nil
	}
	for {
		if err := element(); err != nil {
			return err
		}
		if s.tryConsume(close) {
			return nil
		}
		if err := s.Expect(','); err != nil {
			return err
		}
		if got, ok := s.Peek(); ok && got == close {
			return s.Errorf("unexpected '%c' after ','", close)
		}
	}
}

// EOF returns an error if non-whitespace input remains.
func (s *Scanner) EOF() error {
	if c, ok := s.Peek(); ok {
		return s.Errorf("unexpected '%c' after value", c)
	}
	return nil
}

// Literal consumes the exact literal lit.
func (s *Scanner) Literal(lit string) error {
	s.skipSpace()
	if len(s.data)-s.pos < len(lit) || string(s.data[s.pos:s.pos+len(lit)]) != lit {
		return s.Errorf("expected %q", lit)
	}
	s.pos += len(lit)
	return nil
}

// Number consumes one number token and returns its raw text. The token is
// validated against the JSON number grammar but not converted.
func (s *Scanner) Number() ([]byte, error) {
	s.skipSpace()
	start := s.pos
	if s.pos < len(s.data) && s.data[s.pos] == '-' {
		s.pos++
	}
	switch {
	case s.pos >= len(s.data) || !isDigit(s.data[s.pos]):
		s.pos = start
		return nil, s.Errorf("invalid number")
	case s.data[s.pos] == '0':
		s.pos++
	default:
		s.digits()
	}
	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		s.pos++
		if !s.digits() {
			return nil, s.Errorf("invalid number")
		}
	}
	if s.pos < len(s.data) && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		s.pos++
		if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		if !s.digits() {
			return nil, s.Errorf("invalid number")
		}
	}
	return s.data[start:s.pos], nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *Scanner) digits() bool {
	start := s.pos
	for s.pos < len(s.data) && isDigit(s.data[s.pos]) {
		s.pos++
	}
	return s.pos > start
}

// String consumes one string token and returns its decoded value, with all
// escape sequences (including \uXXXX surrogate pairs) resolved.
func (s *Scanner) String() (string, error) {
	if err := s.Expect('"'); err != nil {
		return "", err
	}

	// Fast path: no escapes, no control characters.
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '\\' || c < 0x20 {
			break
		}
		if c == '"' {
			out := string(s.data[start:s.pos])
			s.pos++
			return out, nil
		}
		s.pos++
	}

	b := append([]byte(nil), s.data[start:s.pos]...)
	for s.pos < len(s.data) {
		switch c := s.data[s.pos]; {
		case c == '"':
			s.pos++
			return string(b), nil
		case c < 0x20:
			return "", s.Errorf("unescaped control character in string")
		case c != '\\':
			b = append(b, c)
			s.pos++
		default:
			s.pos++
			if s.pos >= len(s.data) {
				return "", s.Errorf("unexpected end of string escape")
			}
			esc := s.data[s.pos]
			s.pos++
			switch esc {
			case '"', '\\', '/':
				b = append(b, esc)
			case 'b':
				b = append(b, '\b')
			case 'f':
				b = append(b, '\f')
			case 'n':
				b = append(b, '\n')
			case 'r':
				b = append(b, '\r')
			case 't':
				b = append(b, '\t')
			case 'u':
				r, err := s.hex4()
				if err != nil {
					return "", err
				}
				if utf16.IsSurrogate(r) {
					r = s.surrogatePair(r)
				}
				b = utf8.AppendRune(b, r)
			default:
				return "", s.Errorf("invalid string escape '\\%c'", esc)
			}
		}
	}
	return "", s.Errorf("unexpected end of string")
}

// surrogatePair combines hi with a following \uXXXX low surrogate. An
// unpaired surrogate becomes the replacement character and consumes nothing.
func (s *Scanner) surrogatePair(hi rune) rune {
	if len(s.data)-s.pos < 2 || s.data[s.pos] != '\\' || s.data[s.pos+1] != 'u' {
		return unicode.ReplacementChar
	}
	mark := s.pos
	s.pos += 2
	lo, err := s.hex4()
	if err != nil {
		s.pos = mark
		return unicode.ReplacementChar
	}
	if r := utf16.DecodeRune(hi, lo); r != unicode.ReplacementChar {
		return r
	}
	s.pos = mark
	return unicode.ReplacementChar
}

func (s *Scanner) hex4() (rune, error) {
	if len(s.data)-s.pos < 4 {
		return 0, s.Errorf("invalid unicode escape")
	}
	var r rune
	for _, c := range s.data[s.pos : s.pos+4] {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, s.Errorf("invalid unicode escape")
		}
	}
	s.pos += 4
	return r, nil
}
