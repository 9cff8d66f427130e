// Package scan provides the byte-level primitives the metadata parser is
// built on: a line-oriented reader over an io.Reader that tracks its own
// line number, plus the RFC 7230 character-class checks shared by the
// start-line and header parsers.
//
// It is the Go analogue of shapestone-shape-http's internal/fastparser
// byte-slice scanner, generalized from scanning a single in-memory []byte
// to scanning an arbitrary io.Reader one line at a time, the way
// rawhttp-core's ByteScanner is specified to work.
package scan

import (
	"bufio"
	"errors"
	"io"
)

// ErrNoContent is returned by (*Scanner).ReadLine when the underlying
// stream is exhausted before a single byte could be read.
var ErrNoContent = errors.New("no content")

// ErrLineTooLong is returned by (*Scanner).ReadLine when a line exceeds
// the caller-supplied length cap before a terminator is found.
var ErrLineTooLong = errors.New("line too long")

// Scanner reads lines from a byte stream one at a time, consuming the
// terminator and tracking a 1-based line counter as it goes. It has no
// other state: a Scanner is owned by exactly one caller at a time, matching
// LazyBodyReader's single-use contract elsewhere in this module.
type Scanner struct {
	r    *bufio.Reader
	line int
}

// New wraps r in a Scanner starting at line 1.
func New(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br, line: 1}
}

// Line returns the 1-based number of the line currently being read (or
// about to be read, if nothing has been consumed yet).
func (s *Scanner) Line() int {
	return s.line
}

// PeekByte returns the next byte without consuming it. ok is false at EOF.
func (s *Scanner) PeekByte() (b byte, ok bool) {
	peeked, err := s.r.Peek(1)
	if err != nil || len(peeked) == 0 {
		return 0, false
	}
	return peeked[0], true
}

// ReadByte consumes and returns the next byte.
func (s *Scanner) ReadByte() (byte, error) {
	return s.r.ReadByte()
}

// ReadLine returns the bytes up to (but not including) the next line
// terminator, consumes the terminator, and advances the line counter.
//
// A terminator is CRLF, or a bare LF when allowBareLF is set. A bare CR
// (one not immediately followed by LF) is never a terminator; it is kept
// as ordinary line content. If the stream ends after some content has
// already been read but before a terminator appears, that content is
// returned with a nil error — the caller sees the same thing it would see
// from a line properly terminated by EOF. If the stream is exhausted
// before any byte at all is read, ErrNoContent is returned. If the line
// grows past maxLen before a terminator is found, ErrLineTooLong is
// returned. A read error other than io.EOF is returned unchanged.
func (s *Scanner) ReadLine(maxLen int, allowBareLF bool) ([]byte, error) {
	var line []byte

	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			if len(line) == 0 {
				return nil, ErrNoContent
			}
			return line, nil
		}

		switch b {
		case '\r':
			next, peekErr := s.r.Peek(1)
			if peekErr == nil && len(next) == 1 && next[0] == '\n' {
				_, _ = s.r.ReadByte()
				s.line++
				return line, nil
			}
			line = append(line, b)
		case '\n':
			if allowBareLF {
				s.line++
				return line, nil
			}
			line = append(line, b)
		default:
			line = append(line, b)
		}

		if len(line) > maxLen {
			return nil, ErrLineTooLong
		}
	}
}

// IsTChar reports whether b is a valid RFC 7230 tchar: the character class
// shared by HTTP methods and header field-names.
//
//	tchar = "!" / "#" / "$" / "%" / "&" / "'" / "*" / "+" / "-" / "."
//	      / "^" / "_" / "`" / "|" / "~" / DIGIT / ALPHA
func IsTChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// IsHeaderValueChar reports whether b may appear in a header field-value:
// ISO-8859-1 bytes excluding the C0 controls (save TAB) and DEL.
func IsHeaderValueChar(b byte) bool {
	switch {
	case b == 0x09:
		return true
	case b <= 0x08, b >= 0x0A && b <= 0x1F, b == 0x7F:
		return false
	default:
		return true
	}
}

// TrimOWS trims optional whitespace (SP and HTAB) from both ends of b.
func TrimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}
