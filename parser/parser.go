// Package parser turns source text of the reduced C dialect into the IR:
// a lenient lexer followed by a recursive-descent parser with a scoped
// variable table. Parsing is best-effort; diagnostics are collected per
// file and line, and successfully parsed functions are kept even when a
// later function fails.
package parser

import (
	"github.com/Lol3rrr/prizm-sub000/ir"
)

// cursor is a peekable position in the token stream.
type cursor struct {
	tokens []Token
	pos    int
}

func (c *cursor) peek() (Token, bool) {
	if c.pos >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[c.pos], true
}

func (c *cursor) next() (Token, bool) {
	tok, ok := c.peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// expect consumes the next token if it has the wanted kind, otherwise it
// records a diagnostic and leaves the cursor alone.
func (c *cursor) expect(kind TokenKind, errs *ErrorList) bool {
	tok, ok := c.peek()
	if !ok {
		errs.Add(c.lastPos(), "expected %s, found end of input", kind)
		return false
	}
	if tok.Kind != kind {
		errs.Add(tok.Pos, "expected %s, found %s", kind, tok.Kind)
		return false
	}
	c.pos++
	return true
}

// accept consumes the next token if it has the wanted kind.
func (c *cursor) accept(kind TokenKind) bool {
	tok, ok := c.peek()
	if ok && tok.Kind == kind {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) lastPos() Metadata {
	if len(c.tokens) == 0 {
		return Metadata{}
	}
	if c.pos >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1].Pos
	}
	return c.tokens[c.pos].Pos
}

// Parse consumes the token stream and returns the parsed functions plus
// the collected diagnostics. The function list may be partial when the
// error list is non-empty.
func Parse(tokens []Token) ([]ir.Function, *ErrorList) {
	errs := &ErrorList{}
	var functions []ir.Function

	c := &cursor{tokens: tokens}
	for {
		if _, ok := c.peek(); !ok {
			break
		}
		before := c.pos
		fn, ok := parseFunction(c, errs)
		if ok {
			functions = append(functions, fn)
			continue
		}
		// Resynchronise: skip to just past the next closing brace so a
		// malformed function cannot stall the loop.
		if c.pos == before {
			c.pos++
		}
		for {
			tok, ok := c.next()
			if !ok || tok.Kind == TokenCloseBrace {
				break
			}
		}
	}

	return functions, errs
}

// ParseSource is the combined lex+parse entry point.
func ParseSource(content, filename string) ([]ir.Function, *ErrorList) {
	return Parse(Tokenize(content, filename))
}

// parseFunction parses `T name(args) { statements }`.
func parseFunction(c *cursor, errs *ErrorList) (ir.Function, bool) {
	ret, ok := parseDataType(c, errs)
	if !ok {
		return ir.Function{}, false
	}

	nameTok, ok := c.next()
	if !ok || nameTok.Kind != TokenIdentifier {
		errs.Add(nameTok.Pos, "expected function name")
		return ir.Function{}, false
	}

	if !c.expect(TokenOpenParen, errs) {
		return ir.Function{}, false
	}

	params, ok := parseFuncArgs(c, errs)
	if !ok {
		return ir.Function{}, false
	}

	if !c.expect(TokenOpenBrace, errs) {
		return ir.Function{}, false
	}

	vars := newVarTable()
	for _, p := range params {
		vars.declare(p.Name, p.Type)
	}

	body := parseStatements(c, vars, errs)

	if !c.expect(TokenCloseBrace, errs) {
		return ir.Function{}, false
	}

	return ir.Function{
		Name:   nameTok.Text,
		Return: ret,
		Params: params,
		Body:   body,
	}, true
}

// parseDataType parses `[unsigned] (int|short|void) [*]`.
func parseDataType(c *cursor, errs *ErrorList) (ir.DataType, bool) {
	unsigned := false
	if tok, ok := c.peek(); ok && tok.Kind == TokenKeyword && tok.Keyword == KeywordUnsigned {
		c.pos++
		unsigned = true
	}

	tok, ok := c.next()
	if !ok || tok.Kind != TokenKeyword {
		errs.Add(tok.Pos, "expected type name")
		return ir.DataType{}, false
	}

	var base ir.DataType
	switch tok.Keyword {
	case KeywordInt:
		if unsigned {
			base = ir.U32()
		} else {
			base = ir.I32()
		}
	case KeywordShort:
		if unsigned {
			base = ir.U16()
		} else {
			base = ir.I16()
		}
	case KeywordVoid:
		base = ir.Void()
	default:
		errs.Add(tok.Pos, "expected type name")
		return ir.DataType{}, false
	}

	if c.accept(TokenAsterisk) {
		return ir.Ptr(base), true
	}
	return base, true
}

// parseFuncArgs parses the parameter list up to and including ')'.
func parseFuncArgs(c *cursor, errs *ErrorList) ([]ir.Param, bool) {
	var params []ir.Param

	for {
		tok, ok := c.peek()
		if !ok {
			errs.Add(c.lastPos(), "unterminated parameter list")
			return nil, false
		}

		switch tok.Kind {
		case TokenCloseParen:
			c.pos++
			return params, true
		case TokenComma:
			c.pos++
		default:
			dt, ok := parseDataType(c, errs)
			if !ok {
				return nil, false
			}
			nameTok, ok := c.peek()
			if !ok || nameTok.Kind != TokenIdentifier {
				errs.Add(nameTok.Pos, "expected parameter name")
				return nil, false
			}
			c.pos++
			params = append(params, ir.Param{Name: nameTok.Text, Type: dt})
		}
	}
}
