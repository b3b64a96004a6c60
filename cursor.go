package caret

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ============================================================================
// Cursor
// ============================================================================
//
// The cursor walks the raw source text. There is no tokenizer: the grammar
// asks the cursor directly for literals, character runs and lookahead.
// Whitespace is insignificant everywhere except inside string literals, so
// every operation that inspects the next character skips it first.

// cursor holds the source and a byte offset into it. Reported positions are
// converted to character offsets only when an error is built.
type cursor struct {
	src      string
	pos      int
	filename string
}

func newCursor(src, filename string) *cursor {
	return &cursor{src: src, filename: filename}
}

// done reports whether the cursor is at the end of the input.
func (c *cursor) done() bool {
	return c.pos >= len(c.src)
}

// rest returns the unread input.
func (c *cursor) rest() string {
	return c.src[c.pos:]
}

// advance moves the cursor n bytes forward, stopping at the end of input.
func (c *cursor) advance(n int) {
	c.pos = min(c.pos+n, len(c.src))
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// skipWhitespace advances past spaces, tabs and line breaks.
func (c *cursor) skipWhitespace() {
	for c.pos < len(c.src) && isWhitespace(c.src[c.pos]) {
		c.pos++
	}
}

// peekMatches reports whether re matches at the current offset.
// The expression must be anchored with ^.
func (c *cursor) peekMatches(re *regexp.Regexp) bool {
	return re.MatchString(c.rest())
}

// hasPrefix reports whether the unread input starts with literal.
func (c *cursor) hasPrefix(literal string) bool {
	return strings.HasPrefix(c.rest(), literal)
}

// current skips whitespace and returns the next character.
func (c *cursor) current() (rune, error) {
	c.skipWhitespace()
	if c.done() {
		return 0, c.errorAt(UnexpectedEnd, c.pos)
	}
	r, _ := utf8.DecodeRuneInString(c.rest())
	return r, nil
}

// expect skips whitespace and consumes literal.
func (c *cursor) expect(literal string) error {
	c.skipWhitespace()
	if !c.hasPrefix(literal) {
		err := c.errorAt(ExpectedToken, c.pos)
		err.Literal = literal
		return err
	}
	c.advance(len(literal))
	return nil
}

// takeWhile consumes the longest run of bytes satisfying pred.
func (c *cursor) takeWhile(pred func(byte) bool) string {
	start := c.pos
	for c.pos < len(c.src) && pred(c.src[c.pos]) {
		c.pos++
	}
	return c.src[start:c.pos]
}

// takeUntil consumes input up to the next occurrence of b and then b itself,
// returning the text in between. It reports false, consuming nothing, when b
// does not occur.
func (c *cursor) takeUntil(b byte) (string, bool) {
	i := strings.IndexByte(c.rest(), b)
	if i < 0 {
		return "", false
	}
	text := c.src[c.pos : c.pos+i]
	c.advance(i + 1)
	return text, true
}

// offset returns the current position as a character offset.
func (c *cursor) offset() int {
	return utf8.RuneCountInString(c.src[:c.pos])
}

// errorAt builds a SyntaxError of the given kind at byte offset at.
func (c *cursor) errorAt(kind ErrorKind, at int) *SyntaxError {
	prefix := c.src[:at]
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return &SyntaxError{
		Kind:     kind,
		Offset:   utf8.RuneCountInString(prefix),
		Line:     strings.Count(prefix, "\n") + 1,
		Column:   utf8.RuneCountInString(prefix[lineStart:]) + 1,
		Filename: c.filename,
	}
}
