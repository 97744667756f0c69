// Package aritext is the text codec: it parses the ari: URI-style grammar
// into an ari.Value and unparses an ari.Value back to its canonical
// textual form.
//
// Parsing is a hand-written recursive-descent cursor over the input
// string; the grammar is small enough that a generated parser would cost
// more than it pays.
package aritext

import (
	"strings"

	"github.com/dtn-ace/ace/internal/aceerr"
)

// cursor is the shared byte-offset-tracking scan state for the parser.
// Line/column are recomputed lazily from the offset only when an error is
// raised, since the grammar is overwhelmingly single-line.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) position() aceerr.Position {
	line, col := 1, 1
	for i := 0; i < c.pos && i < len(c.s); i++ {
		if c.s[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return aceerr.Position{Offset: c.pos, Line: line, Column: col}
}

func (c *cursor) errf(format string, args ...interface{}) error {
	return aceerr.Syntaxf(c.position(), format, args...)
}

// lexf is errf for malformed token content (bad hex digits, invalid
// numerals) as opposed to well-formed tokens in a forbidden arrangement.
func (c *cursor) lexf(format string, args ...interface{}) error {
	return aceerr.Lexf(c.position(), format, args...)
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.s)
}

func (c *cursor) peek() (byte, bool) {
	if c.eof() {
		return 0, false
	}
	return c.s[c.pos], true
}

func (c *cursor) advance() {
	c.pos++
}

// skipSpace consumes insignificant whitespace. Whitespace inside quoted
// text-string literals never reaches here; the quoted branch of the TEXT
// rule reads the raw span between the quotes.
func (c *cursor) skipSpace() {
	for c.pos < len(c.s) {
		switch c.s[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *cursor) expect(want byte) error {
	got, ok := c.peek()
	if !ok || got != want {
		return c.errf("expected %q, got %s", want, c.describeNext())
	}
	c.advance()
	return nil
}

func (c *cursor) describeNext() string {
	if c.eof() {
		return "end of input"
	}
	return "'" + string(c.s[c.pos]) + "'"
}

func (c *cursor) consumeLiteral(lit string) error {
	if c.pos+len(lit) > len(c.s) || c.s[c.pos:c.pos+len(lit)] != lit {
		return c.errf("expected %q", lit)
	}
	c.pos += len(lit)
	return nil
}

// readUntil consumes and returns bytes up to (not including) the first
// byte found in stopSet, or to the end of input when stopSet never
// matches.
func (c *cursor) readUntil(stopSet string) string {
	start := c.pos
	for c.pos < len(c.s) && !strings.ContainsRune(stopSet, rune(c.s[c.pos])) {
		c.pos++
	}
	return c.s[start:c.pos]
}
