package caret

import (
	"errors"
	"fmt"
)

// ============================================================================
// Error Reporting
// ============================================================================

// Sentinel errors, one per error kind. A *SyntaxError unwraps to the
// sentinel of its kind so callers can test with errors.Is.
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrExpectedToken       = errors.New("expected token")
	ErrExpectedName        = errors.New("expected name")
	ErrUndefinedConstant   = errors.New("undefined constant")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrUnexpectedEnd       = errors.New("unexpected end of input")
	ErrNestingTooDeep      = errors.New("nesting too deep")
	ErrTrailingContent     = errors.New("trailing content")
)

// ErrorKind identifies the grammar failure behind a SyntaxError.
type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota // No grammar alternative matches the character
	ExpectedToken                        // A required literal is missing
	ExpectedName                         // A name was required
	UndefinedConstant                    // Reference to an undeclared constant
	UnterminatedString                   // Input ended inside a string literal
	UnexpectedEnd                        // Input ended where more was required
	NestingTooDeep                       // Lists and maps nested past the limit
	TrailingContent                      // Text after the top-level value (strict mode)
)

var kindSentinels = [...]error{
	UnexpectedCharacter: ErrUnexpectedCharacter,
	ExpectedToken:       ErrExpectedToken,
	ExpectedName:        ErrExpectedName,
	UndefinedConstant:   ErrUndefinedConstant,
	UnterminatedString:  ErrUnterminatedString,
	UnexpectedEnd:       ErrUnexpectedEnd,
	NestingTooDeep:      ErrNestingTooDeep,
	TrailingContent:     ErrTrailingContent,
}

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case ExpectedToken:
		return "ExpectedToken"
	case ExpectedName:
		return "ExpectedName"
	case UndefinedConstant:
		return "UndefinedConstant"
	case UnterminatedString:
		return "UnterminatedString"
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case NestingTooDeep:
		return "NestingTooDeep"
	case TrailingContent:
		return "TrailingContent"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// SyntaxError describes the first failure of a parse. Offset is the 0-based
// character offset of the failure; Line and Column are 1-based.
type SyntaxError struct {
	Kind     ErrorKind
	Offset   int
	Line     int
	Column   int
	Char     rune   // UnexpectedCharacter
	Literal  string // ExpectedToken
	Name     string // UndefinedConstant
	Limit    int    // NestingTooDeep
	Filename string
}

func (e *SyntaxError) Error() string {
	return e.message() + e.locSuffix()
}

// Unwrap returns the sentinel error for the error's kind.
func (e *SyntaxError) Unwrap() error {
	if int(e.Kind) < len(kindSentinels) {
		return kindSentinels[e.Kind]
	}
	return nil
}

func (e *SyntaxError) message() string {
	switch e.Kind {
	case UnexpectedCharacter:
		return fmt.Sprintf("Unexpected character \"%c\"", e.Char)
	case ExpectedToken:
		return fmt.Sprintf("Expected \"%s\"", e.Literal)
	case ExpectedName:
		return "Expected name"
	case UndefinedConstant:
		return fmt.Sprintf("Undefined constant \"%s\"", e.Name)
	case UnterminatedString:
		return "Unterminated string"
	case UnexpectedEnd:
		return "Unexpected end of input"
	case NestingTooDeep:
		return fmt.Sprintf("Nesting deeper than %d levels", e.Limit)
	case TrailingContent:
		return "Unexpected extra content"
	default:
		return "Syntax error"
	}
}

// locSuffix formats a location suffix for error messages.
// With a filename it uses 1-based line and column, otherwise the offset.
func (e *SyntaxError) locSuffix() string {
	if e.Filename == "" {
		return fmt.Sprintf(" at offset %d", e.Offset)
	}
	return fmt.Sprintf(" at %d:%d of <%s>", e.Line, e.Column, e.Filename)
}
