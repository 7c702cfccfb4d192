package parser

import "github.com/Lol3rrr/prizm-sub000/ir"

// parseStatements parses a run of statements until the closing brace of
// the surrounding block (which is left for the caller to consume).
func parseStatements(c *cursor, vars *varTable, errs *ErrorList) []ir.Statement {
	var result []ir.Statement

	for {
		stmts, ok := parseStatement(c, vars, errs)
		if !ok {
			return result
		}
		result = append(result, stmts...)
	}
}

// parseScope parses `{ statements }`.
func parseScope(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	if !c.expect(TokenOpenBrace, errs) {
		return nil, false
	}
	inner := parseStatements(c, vars, errs)
	if !c.expect(TokenCloseBrace, errs) {
		return nil, false
	}
	return inner, true
}

// parseStatement parses a single statement. A declaration with an
// initialiser and a for-loop expand to several IR statements, hence the
// slice result. A closing brace ends the surrounding block and yields
// (nil, false) without a diagnostic.
func parseStatement(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	tok, ok := c.peek()
	if !ok || tok.Kind == TokenCloseBrace {
		return nil, false
	}

	switch tok.Kind {
	case TokenKeyword:
		switch tok.Keyword {
		case KeywordReturn:
			return parseReturn(c, vars, errs)
		case KeywordWhile:
			return parseWhile(c, vars, errs)
		case KeywordFor:
			return parseFor(c, vars, errs)
		case KeywordIf:
			return parseIf(c, vars, errs)
		default:
			return parseDeclaration(c, vars, errs)
		}

	case TokenIdentifier:
		return parseIdentifierStatement(c, vars, errs)

	case TokenAsterisk:
		return parseDerefAssignment(c, vars, errs)
	}

	errs.Add(tok.Pos, "unexpected %s at start of statement", tok.Kind)
	return nil, false
}

func parseReturn(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	c.pos++ // return

	var expr ir.Expression = ir.Empty{}
	if tok, ok := c.peek(); ok && tok.Kind != TokenSemicolon {
		parsed, ok := parseExpression(c, vars, errs)
		if !ok {
			return nil, false
		}
		expr = parsed
	}
	c.accept(TokenSemicolon)

	return []ir.Statement{ir.Return{Expr: expr}}, true
}

func parseWhile(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	c.pos++ // while
	if !c.expect(TokenOpenParen, errs) {
		return nil, false
	}
	cond, ok := parseCondition(c, vars, errs)
	if !ok {
		return nil, false
	}
	if !c.expect(TokenCloseParen, errs) {
		return nil, false
	}
	body, ok := parseScope(c, vars, errs)
	if !ok {
		return nil, false
	}
	return []ir.Statement{ir.WhileLoop{Cond: cond, Body: body}}, true
}

// parseFor lowers `for (init; cond; step) { body }` into
// `init; while (cond) { body; step; }` during parsing.
func parseFor(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	c.pos++ // for
	if !c.expect(TokenOpenParen, errs) {
		return nil, false
	}

	init, ok := parseStatement(c, vars, errs)
	if !ok {
		return nil, false
	}

	cond, ok := parseCondition(c, vars, errs)
	if !ok {
		return nil, false
	}
	c.accept(TokenSemicolon)

	step, ok := parseStatement(c, vars, errs)
	if !ok {
		return nil, false
	}
	c.accept(TokenCloseParen)

	body, ok := parseScope(c, vars, errs)
	if !ok {
		return nil, false
	}

	body = append(body, step...)
	result := init
	result = append(result, ir.WhileLoop{Cond: cond, Body: body})
	return result, true
}

func parseIf(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	c.pos++ // if
	if !c.expect(TokenOpenParen, errs) {
		return nil, false
	}
	cond, ok := parseCondition(c, vars, errs)
	if !ok {
		return nil, false
	}
	if !c.expect(TokenCloseParen, errs) {
		return nil, false
	}
	body, ok := parseScope(c, vars, errs)
	if !ok {
		return nil, false
	}
	return []ir.Statement{ir.If{Cond: cond, Body: body}}, true
}

// parseDeclaration parses `T name;`, `T name = E;` and `T name[CONST];`.
func parseDeclaration(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	dt, ok := parseDataType(c, errs)
	if !ok {
		return nil, false
	}

	nameTok, ok := c.peek()
	if !ok || nameTok.Kind != TokenIdentifier {
		errs.Add(nameTok.Pos, "expected variable name")
		return nil, false
	}
	c.pos++
	name := nameTok.Text

	tok, ok := c.next()
	if !ok {
		errs.Add(c.lastPos(), "unterminated declaration of %q", name)
		return nil, false
	}

	switch tok.Kind {
	case TokenOpenBracket:
		sizeExpr, ok := parseExpression(c, vars, errs)
		if !ok {
			return nil, false
		}
		size, ok := constEval(sizeExpr)
		if !ok {
			errs.Add(nameTok.Pos, "array size of %q must be a constant expression", name)
			return nil, false
		}
		if !c.expect(TokenCloseBracket, errs) {
			return nil, false
		}
		c.accept(TokenSemicolon)

		arrType := ir.Array(dt, size)
		vars.declare(name, arrType)
		return []ir.Statement{ir.Declaration{Name: name, Type: arrType}}, true

	case TokenEquals:
		value, ok := parseExpression(c, vars, errs)
		if !ok {
			return nil, false
		}
		c.accept(TokenSemicolon)

		vars.declare(name, dt)
		return []ir.Statement{
			ir.Declaration{Name: name, Type: dt},
			ir.Assignment{Name: name, Expr: value},
		}, true

	case TokenSemicolon:
		vars.declare(name, dt)
		return []ir.Statement{ir.Declaration{Name: name, Type: dt}}, true
	}

	errs.Add(tok.Pos, "unexpected %s in declaration of %q", tok.Kind, name)
	return nil, false
}

// parseIdentifierStatement parses `name = E;`, `name[E] = E;` and
// `name(args);`.
func parseIdentifierStatement(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	nameTok, _ := c.next()
	name := nameTok.Text

	tok, ok := c.next()
	if !ok {
		errs.Add(c.lastPos(), "unterminated statement")
		return nil, false
	}

	switch tok.Kind {
	case TokenEquals:
		expr, ok := parseExpression(c, vars, errs)
		if !ok {
			return nil, false
		}
		c.accept(TokenSemicolon)

		if _, declared := vars.lookup(name); !declared {
			errs.Add(nameTok.Pos, "undeclared identifier %q", name)
			return nil, false
		}
		return []ir.Statement{ir.Assignment{Name: name, Expr: expr}}, true

	case TokenOpenBracket:
		index, ok := parseExpression(c, vars, errs)
		if !ok {
			return nil, false
		}
		c.accept(TokenCloseBracket)
		if !c.expect(TokenEquals, errs) {
			return nil, false
		}
		value, ok := parseExpression(c, vars, errs)
		if !ok {
			return nil, false
		}
		c.accept(TokenSemicolon)

		if _, declared := vars.lookup(name); !declared {
			errs.Add(nameTok.Pos, "undeclared identifier %q", name)
			return nil, false
		}
		return []ir.Statement{ir.DerefAssignment{
			Target: ir.Indexed{Base: ir.Variable{Name: name}, Offset: index},
			Value:  value,
		}}, true

	case TokenOpenParen:
		args, ok := parseCallParams(c, vars, errs)
		if !ok {
			return nil, false
		}
		c.accept(TokenSemicolon)
		return []ir.Statement{ir.SingleExpression{
			Expr: ir.Call{Name: name, Args: args},
		}}, true
	}

	errs.Add(tok.Pos, "unexpected %s after identifier %q", tok.Kind, name)
	return nil, false
}

// parseDerefAssignment parses `*E = E;`.
func parseDerefAssignment(c *cursor, vars *varTable, errs *ErrorList) ([]ir.Statement, bool) {
	c.pos++ // *

	target, ok := parseExpression(c, vars, errs)
	if !ok {
		return nil, false
	}
	if !c.expect(TokenEquals, errs) {
		return nil, false
	}
	value, ok := parseExpression(c, vars, errs)
	if !ok {
		return nil, false
	}
	c.accept(TokenSemicolon)

	return []ir.Statement{ir.DerefAssignment{Target: target, Value: value}}, true
}

// constEval folds an expression into a u32 constant if possible. Array
// sizes must fold; the code generator uses the same folding for general
// constant subtrees.
func constEval(exp ir.Expression) (uint32, bool) {
	switch e := exp.(type) {
	case ir.Constant:
		return e.Value.AsU32(), true
	case ir.Operation:
		left, okL := constEval(e.Left)
		right, okR := constEval(e.Right)
		if !okL || !okR {
			return 0, false
		}
		switch e.Op {
		case ir.Add:
			return left + right, true
		case ir.Subtract:
			return left - right, true
		case ir.Multiply:
			return left * right, true
		case ir.Divide:
			if right == 0 {
				return 0, false
			}
			return left / right, true
		}
	}
	return 0, false
}
