// Package caret implements decoding of caret configuration documents.
//
// A document is a sequence of constant declarations followed by a single
// value:
//
//	NAME := @"server"
//	PORTS := array(8080, 8443)
//	{
//	    HOST: ^[NAME];
//	    PORTS: ^[PORTS];
//	}
//
// Values are numbers (unsigned decimal integers), strings (@"..." with no
// escapes), lists (array(...)), maps ({ KEY: value; ... }) and references to
// previously declared constants (^[NAME]). Names are runs of uppercase ASCII
// letters. Whitespace is insignificant outside strings.
//
// # Parsing
//
// There is no separate tokenizer. A cursor walks the raw text and a
// recursive-descent grammar dispatches on the next literal prefix. Constant
// declarations are collected into a table that lives for one parse only.
// The first error ends the parse with a *SyntaxError.
package caret

import (
	"github.com/go-logr/logr"
)

// ============================================================================
// Public API
// ============================================================================

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

// Options controls a parse.
type Options struct {
	// Filename is used in error messages. Errors carry line and column
	// instead of a bare offset when it is set.
	Filename string

	// MaxDepth bounds list and map nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// Strict rejects any text after the top-level value. By default such
	// text is ignored.
	Strict bool

	// Logger receives debug output about constants and trailing content.
	// The zero value discards it.
	Logger logr.Logger
}

// Unmarshal parses a document and returns its value.
//
// The mapping between document values and Go types is:
//   - number -> Number
//   - string -> Text
//   - array(...) -> List
//   - {...} -> Map
//
// An empty document, or one holding only constant declarations, decodes to
// an empty Map.
func Unmarshal(data []byte) (Value, error) {
	return UnmarshalOptions(data, Options{})
}

// UnmarshalFile parses a document with a filename for error messages.
func UnmarshalFile(data []byte, filename string) (Value, error) {
	return UnmarshalOptions(data, Options{Filename: filename})
}

// UnmarshalOptions parses a document with the given options.
func UnmarshalOptions(data []byte, opts Options) (Value, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}

	p := newParser(string(data), opts)
	value, err := p.parseDocument()
	if err != nil {
		return nil, err
	}

	opts.Logger.V(1).Info("parsed document",
		"filename", opts.Filename,
		"kind", value.Kind().String(),
		"constants", p.constants.names())
	return value, nil
}
