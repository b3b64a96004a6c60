package caret

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorSkipWhitespace(t *testing.T) {
	c := newCursor(" \t\r\n x", "")
	c.skipWhitespace()
	assert.Equal(t, 5, c.pos)

	c.skipWhitespace()
	assert.Equal(t, 5, c.pos, "skipping is idempotent")

	end := newCursor("", "")
	end.skipWhitespace()
	assert.True(t, end.done())
}

func TestCursorPeekMatches(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z]+[ \t\r\n]*:=`)

	for input, want := range map[string]bool{
		"NAME := 1": true,
		"NAME:=1":   true,
		"NAME\n:=":  true,
		"NAME : =":  false,
		"name := 1": false,
		"{ A: 1; }": false,
		"":          false,
	} {
		c := newCursor(input, "")
		assert.Equal(t, want, c.peekMatches(re), input)
		assert.Equal(t, 0, c.pos, "peek must not consume")
	}
}

func TestCursorExpect(t *testing.T) {
	c := newCursor("  array( 1", "")
	require.NoError(t, c.expect("array("))
	assert.Equal(t, 8, c.pos)

	err := c.expect(")")
	require.Error(t, err)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, ExpectedToken, syntaxErr.Kind)
	assert.Equal(t, ")", syntaxErr.Literal)
	assert.Equal(t, 9, syntaxErr.Offset)
	assert.Equal(t, 9, c.pos, "whitespace before a failed literal is still skipped")
}

func TestCursorCurrent(t *testing.T) {
	c := newCursor("  é", "")
	r, err := c.current()
	require.NoError(t, err)
	assert.Equal(t, 'é', r)

	c.advance(len("é"))
	_, err = c.current()
	assert.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestCursorTake(t *testing.T) {
	c := newCursor(`ABCdef"rest`, "")
	assert.Equal(t, "ABC", c.takeWhile(isUpper))
	assert.Equal(t, "", c.takeWhile(isUpper))

	text, ok := c.takeUntil('"')
	assert.True(t, ok)
	assert.Equal(t, "def", text)
	assert.Equal(t, "rest", c.rest())

	_, ok = c.takeUntil('"')
	assert.False(t, ok)
	assert.Equal(t, "rest", c.rest())
}

func TestCursorAdvanceStopsAtEnd(t *testing.T) {
	c := newCursor("ab", "")
	c.advance(10)
	assert.Equal(t, 2, c.pos)
	assert.True(t, c.done())
}

func TestCursorErrorAt(t *testing.T) {
	c := newCursor("ab\ncé\nx", "doc.cfg")
	err := c.errorAt(UnexpectedCharacter, len("ab\ncé\n"))
	assert.Equal(t, 6, err.Offset)
	assert.Equal(t, 3, err.Line)
	assert.Equal(t, 1, err.Column)
	assert.Equal(t, "doc.cfg", err.Filename)
}

func TestConstantTable(t *testing.T) {
	table := newConstantTable()

	_, ok := table.resolve("A")
	assert.False(t, ok)

	assert.False(t, table.define("A", NumberFromUint64(1)))
	assert.False(t, table.define("B", Text("b")))
	assert.True(t, table.define("A", NumberFromUint64(2)))

	v, ok := table.resolve("A")
	require.True(t, ok)
	assert.True(t, Equal(NumberFromUint64(2), v))
	assert.Equal(t, []string{"A", "B"}, table.names())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "UnexpectedCharacter", UnexpectedCharacter.String())
	assert.Equal(t, "TrailingContent", TrailingContent.String())
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
	assert.Nil(t, (&SyntaxError{Kind: ErrorKind(99)}).Unwrap())
}
