package caret

import (
	"math/big"
	"regexp"

	"github.com/go-logr/logr"
)

// ============================================================================
// Grammar Engine
// ============================================================================
//
// The grammar is dispatched on the next literal prefix, so no rule ever
// needs to backtrack:
//
//	document      := { constant_decl } , value
//	constant_decl := NAME , ':=' , value
//	value         := string | array | dict | const_ref | number
//	string        := '@"' , { any-char-except '"' } , '"'
//	array         := 'array(' , [ value , { ',' , value } ] , ')'
//	dict          := '{' , { NAME , ':' , value , ';' } , '}'
//	const_ref     := '^[' , NAME , ']'
//	number        := digit , { digit }
//	NAME          := upper-letter , { upper-letter }
//
// The first error aborts the whole parse.

// declarationRe recognizes the start of a constant declaration.
var declarationRe = regexp.MustCompile(`^[A-Z]+[ \t\r\n]*:=`)

// parser carries all state of a single parse.
type parser struct {
	cur       *cursor
	constants *constantTable
	depth     int
	maxDepth  int
	strict    bool
	logger    logr.Logger
}

func newParser(src string, opts Options) *parser {
	return &parser{
		cur:       newCursor(src, opts.Filename),
		constants: newConstantTable(),
		maxDepth:  opts.MaxDepth,
		strict:    opts.Strict,
		logger:    opts.Logger,
	}
}

// parseDocument parses the constant declarations and the top-level value.
// A document with no value decodes to an empty Map.
func (p *parser) parseDocument() (Value, error) {
	p.cur.skipWhitespace()
	for p.cur.peekMatches(declarationRe) {
		if err := p.parseConstantDeclaration(); err != nil {
			return nil, err
		}
		p.cur.skipWhitespace()
	}

	if p.cur.done() {
		return NewMap(), nil
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if err := p.ensureAtEnd(); err != nil {
		return nil, err
	}
	return value, nil
}

// ensureAtEnd rejects text after the top-level value in strict mode.
// Otherwise trailing text is ignored.
func (p *parser) ensureAtEnd() error {
	p.cur.skipWhitespace()
	if p.cur.done() {
		return nil
	}
	if p.strict {
		return p.cur.errorAt(TrailingContent, p.cur.pos)
	}
	p.logger.V(1).Info("ignoring trailing content", "offset", p.cur.offset())
	return nil
}

func (p *parser) parseConstantDeclaration() error {
	name, err := p.parseName()
	if err != nil {
		return err
	}
	if err := p.cur.expect(":="); err != nil {
		return err
	}
	value, err := p.parseValue()
	if err != nil {
		return err
	}
	if p.constants.define(name, value) {
		p.logger.V(1).Info("constant redefined", "name", name, "kind", value.Kind().String())
	} else {
		p.logger.V(1).Info("constant defined", "name", name, "kind", value.Kind().String())
	}
	return nil
}

// parseValue dispatches on the next literal prefix.
func (p *parser) parseValue() (Value, error) {
	p.cur.skipWhitespace()

	switch {
	case p.cur.hasPrefix(`@"`):
		return p.parseText()
	case p.cur.hasPrefix("array("):
		return p.parseList()
	case p.cur.hasPrefix("{"):
		return p.parseMap()
	case p.cur.hasPrefix("^["):
		return p.parseConstantRef()
	}

	r, err := p.cur.current()
	if err != nil {
		return nil, err
	}
	if r >= '0' && r <= '9' {
		return p.parseNumber()
	}
	return nil, p.unexpectedCharacter(r)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func (p *parser) unexpectedCharacter(r rune) error {
	err := p.cur.errorAt(UnexpectedCharacter, p.cur.pos)
	err.Char = r
	return err
}

// parseName consumes a run of uppercase ASCII letters.
func (p *parser) parseName() (string, error) {
	p.cur.skipWhitespace()
	name := p.cur.takeWhile(isUpper)
	if name == "" {
		return "", p.cur.errorAt(ExpectedName, p.cur.pos)
	}
	return name, nil
}

// parseNumber consumes a run of decimal digits. A fractional part is
// rejected at the decimal point.
func (p *parser) parseNumber() (Value, error) {
	digits := p.cur.takeWhile(isDigit)
	if p.cur.hasPrefix(".") {
		return nil, p.unexpectedCharacter('.')
	}
	n, _ := new(big.Int).SetString(digits, 10)
	return Number{n: n}, nil
}

// parseText reads the characters between @" and the next ".
func (p *parser) parseText() (Value, error) {
	start := p.cur.pos
	p.cur.advance(len(`@"`))
	text, ok := p.cur.takeUntil('"')
	if !ok {
		return nil, p.cur.errorAt(UnterminatedString, start)
	}
	return Text(text), nil
}

// enter records one more level of list or map nesting.
func (p *parser) enter() error {
	if p.depth >= p.maxDepth {
		err := p.cur.errorAt(NestingTooDeep, p.cur.pos)
		err.Limit = p.maxDepth
		return err
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) parseList() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.cur.expect("array("); err != nil {
		return nil, err
	}

	items := []Value{}
	r, err := p.cur.current()
	if err != nil {
		return nil, err
	}
	if r != ')' {
		for {
			item, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			items = append(items, item)

			r, err := p.cur.current()
			if err != nil {
				return nil, err
			}
			if r != ',' {
				break
			}
			p.cur.advance(1)
		}
	}

	if err := p.cur.expect(")"); err != nil {
		return nil, err
	}
	return List{items: items}, nil
}

func (p *parser) parseMap() (Value, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.cur.expect("{"); err != nil {
		return nil, err
	}

	result := NewMap()
	for {
		r, err := p.cur.current()
		if err != nil {
			return nil, err
		}
		if r == '}' {
			break
		}

		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expect(":"); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := p.cur.expect(";"); err != nil {
			return nil, err
		}
		result.put(key, value)
	}

	if err := p.cur.expect("}"); err != nil {
		return nil, err
	}
	return result, nil
}

// parseConstantRef resolves ^[NAME] against the constants declared so far.
func (p *parser) parseConstantRef() (Value, error) {
	start := p.cur.pos
	if err := p.cur.expect("^["); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if err := p.cur.expect("]"); err != nil {
		return nil, err
	}

	value, ok := p.constants.resolve(name)
	if !ok {
		err := p.cur.errorAt(UndefinedConstant, start)
		err.Name = name
		return nil, err
	}
	return value, nil
}
