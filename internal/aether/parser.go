// parser.go: recursive-descent parser for Aether.
//
// Statements are dispatched on their leading keyword; expressions use
// precedence climbing with the levels below. The parser is fail-fast:
// the first error aborts and ParsedDocument carries exactly that one
// error with an empty AST.
//
// One whitespace-sensitive rule comes through from the lexer:
//
//	Set ARR[0] 5    index assignment (no space before '[')
//	Set ARR [1, 2]  array literal value (space before '[')
//
// Everywhere else whitespace is insignificant apart from newlines, which
// separate statements.
package aether

import (
	"errors"
	"unicode"
)

// precedence levels, lowest binds weakest.
type precedence int

const (
	precLowest precedence = iota
	precOr                // ||
	precAnd               // &&
	precEquals            // == !=
	precComparison        // < <= > >=
	precSum               // + -
	precProduct           // * / %
	precPrefix            // -x !x
	precCall              // f(x)
	precIndex             // a[i]
)

func tokenPrecedence(tt TokenType) precedence {
	switch tt {
	case OR:
		return precOr
	case AND:
		return precAnd
	case EQ, NEQ:
		return precEquals
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		return precComparison
	case PLUS, MINUS:
		return precSum
	case MULT, DIV, MOD:
		return precProduct
	case LROUND:
		return precCall
	case LSQUARE:
		return precIndex
	default:
		return precLowest
	}
}

var binOps = map[TokenType]BinOp{
	PLUS:       OpAdd,
	MINUS:      OpSubtract,
	MULT:       OpMultiply,
	DIV:        OpDivide,
	MOD:        OpModulo,
	EQ:         OpEqual,
	NEQ:        OpNotEqual,
	LESS:       OpLess,
	LESS_EQ:    OpLessEqual,
	GREATER:    OpGreater,
	GREATER_EQ: OpGreaterEqual,
	AND:        OpAnd,
	OR:         OpOr,
}

// Parser consumes the token stream with two tokens of lookahead.
type Parser struct {
	text string
	lex  *Lexer

	cur  Token
	peek Token
	prev Token // last consumed token, used for span ends
}

// NewParser creates a parser over the given source.
func NewParser(input string) *Parser {
	lex := NewLexer(input)
	p := &Parser{text: input, lex: lex}
	p.cur = lex.Next()
	p.peek = lex.Next()
	return p
}

func (p *Parser) next() {
	p.prev = p.cur
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == NEWLINE {
		p.next()
	}
}

// eatTerminator consumes one trailing newline or semicolon, if present.
func (p *Parser) eatTerminator() {
	if p.cur.Type == NEWLINE || p.cur.Type == SEMI {
		p.next()
	}
}

// spanFrom covers from the start token through the last consumed token.
func (p *Parser) spanFrom(start Token) Span {
	return cover(tokenSpan(start), tokenSpan(p.prev))
}

func (p *Parser) expect(tt TokenType) error {
	if p.cur.Type == tt {
		p.next()
		return nil
	}
	return p.unexpected(tt.String())
}

func (p *Parser) unexpected(expected string) *ParseError {
	return &ParseError{
		Kind:     ErrUnexpectedToken,
		Expected: expected,
		Found:    p.cur,
		Line:     p.cur.Line,
		Col:      p.cur.Col,
	}
}

func (p *Parser) invalidExpression(msg string) *ParseError {
	return &ParseError{
		Kind:  ErrInvalidExpression,
		Msg:   msg,
		Found: p.cur,
		Line:  p.cur.Line,
		Col:   p.cur.Col,
	}
}

// isStrictName reports whether name is valid for a declaration:
// uppercase letters, digits and underscores, not starting with a digit.
func isStrictName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

// validateName enforces the strict naming rule on declared names
// (Set, Func, Generator, Lazy).
func (p *Parser) validateName(tok Token) error {
	name := tok.Lexeme
	if first := []rune(name); len(first) > 0 && unicode.IsDigit(first[0]) {
		return &ParseError{
			Kind:   ErrInvalidIdentifier,
			Name:   name,
			Reason: "identifier cannot start with a digit",
			Line:   tok.Line,
			Col:    tok.Col,
		}
	}
	if !isStrictName(name) {
		return &ParseError{
			Kind:   ErrInvalidIdentifier,
			Name:   name,
			Reason: "variable and function names must use UPPER_SNAKE_CASE (e.g. MY_VAR, CALCULATE_SUM)",
			Line:   tok.Line,
			Col:    tok.Col,
		}
	}
	return nil
}

// validateParamName allows any-case names for parameters and lambda binders.
func (p *Parser) validateParamName(tok Token) error {
	name := tok.Lexeme
	for i, r := range name {
		if i == 0 && unicode.IsDigit(r) {
			return &ParseError{
				Kind:   ErrInvalidIdentifier,
				Name:   name,
				Reason: "identifier cannot start with a digit",
				Line:   tok.Line,
				Col:    tok.Col,
			}
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return &ParseError{
				Kind:   ErrInvalidIdentifier,
				Name:   name,
				Reason: "parameter names may only contain letters, digits and underscores",
				Line:   tok.Line,
				Col:    tok.Col,
			}
		}
	}
	return nil
}

// ---- program / statements ----

// ParseProgram parses the whole source, failing on the first error.
func (p *Parser) ParseProgram() (Program, error) {
	var stmts Program
	p.skipNewlines()
	for p.cur.Type != EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		p.skipNewlines()
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	switch p.cur.Type {
	case SET:
		return p.parseSetStatement()
	case FUNC:
		return p.parseFuncDefinition()
	case GENERATOR:
		return p.parseGeneratorDefinition()
	case LAZY:
		return p.parseLazyDefinition()
	case RETURN:
		return p.parseReturnStatement()
	case YIELD:
		return p.parseYieldStatement()
	case BREAK:
		start := p.cur
		p.next()
		sp := tokenSpan(start)
		p.eatTerminator()
		return &BreakStmt{span: sp}, nil
	case CONTINUE:
		start := p.cur
		p.next()
		sp := tokenSpan(start)
		p.eatTerminator()
		return &ContinueStmt{span: sp}, nil
	case WHILE:
		return p.parseWhileStatement()
	case FOR:
		return p.parseForStatement()
	case SWITCH:
		return p.parseSwitchStatement()
	case IMPORT:
		return p.parseImportStatement()
	case EXPORT:
		return p.parseExportStatement()
	case THROW:
		return p.parseThrowStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseSetStatement handles all three Set forms:
//
//	Set NAME value
//	Set NAME[index] value
//	Set NAME [array literal]
func (p *Parser) parseSetStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'Set'

	if p.cur.Type != IDENT {
		return nil, p.unexpected("identifier")
	}
	nameTok := p.cur
	if err := p.validateName(nameTok); err != nil {
		return nil, err
	}
	name := nameTok.Lexeme
	p.next()

	if p.cur.Type == LSQUARE {
		// The whitespace flag must be read before advancing: it belongs
		// to the '[' token itself.
		if p.cur.SpacedBefore {
			value, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			sp := p.spanFrom(start)
			p.eatTerminator()
			return &SetStmt{Name: name, NameSpan: tokenSpan(nameTok), Value: value, span: sp}, nil
		}

		p.next() // '['
		index, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if p.cur.Type != RSQUARE {
			return nil, p.unexpected("']' for index access")
		}
		p.next()

		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		sp := p.spanFrom(start)
		p.eatTerminator()
		return &SetIndexStmt{
			Object: &Ident{Name: name, span: tokenSpan(nameTok)},
			Index:  index,
			Value:  value,
			span:   sp,
		}, nil
	}

	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	sp := p.spanFrom(start)
	p.eatTerminator()
	return &SetStmt{Name: name, NameSpan: tokenSpan(nameTok), Value: value, span: sp}, nil
}

func (p *Parser) parseFuncDefinition() (Stmt, error) {
	start := p.cur
	p.next() // 'Func'

	if p.cur.Type != IDENT {
		return nil, p.unexpected("identifier")
	}
	nameTok := p.cur
	if err := p.validateName(nameTok); err != nil {
		return nil, err
	}
	p.next()

	if err := p.expect(LROUND); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &FuncDefStmt{
		Name:     nameTok.Lexeme,
		NameSpan: tokenSpan(nameTok),
		Params:   params,
		Body:     body,
		span:     p.spanFrom(start),
	}, nil
}

func (p *Parser) parseGeneratorDefinition() (Stmt, error) {
	start := p.cur
	p.next() // 'Generator'

	if p.cur.Type != IDENT {
		return nil, p.unexpected("identifier")
	}
	nameTok := p.cur
	if err := p.validateName(nameTok); err != nil {
		return nil, err
	}
	p.next()

	if err := p.expect(LROUND); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &GeneratorDefStmt{
		Name:     nameTok.Lexeme,
		NameSpan: tokenSpan(nameTok),
		Params:   params,
		Body:     body,
		span:     p.spanFrom(start),
	}, nil
}

// parseLazyDefinition handles `Lazy NAME (expr)`.
func (p *Parser) parseLazyDefinition() (Stmt, error) {
	start := p.cur
	p.next() // 'Lazy'

	if p.cur.Type != IDENT {
		return nil, p.unexpected("identifier")
	}
	nameTok := p.cur
	if err := p.validateName(nameTok); err != nil {
		return nil, err
	}
	p.next()

	if err := p.expect(LROUND); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	sp := p.spanFrom(start)
	p.eatTerminator()
	return &LazyDefStmt{
		Name:     nameTok.Lexeme,
		NameSpan: tokenSpan(nameTok),
		Value:    value,
		span:     sp,
	}, nil
}

func (p *Parser) parseReturnStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'Return'

	var value Expr
	if p.cur.Type == NEWLINE || p.cur.Type == RCURLY {
		value = &NullLit{span: tokenSpan(start)}
	} else {
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		value = v
	}
	sp := p.spanFrom(start)
	p.eatTerminator()
	return &ReturnStmt{Value: value, span: sp}, nil
}

func (p *Parser) parseYieldStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'Yield'

	var value Expr
	if p.cur.Type == NEWLINE || p.cur.Type == RCURLY {
		value = &NullLit{span: tokenSpan(start)}
	} else {
		v, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		value = v
	}
	sp := p.spanFrom(start)
	p.eatTerminator()
	return &YieldStmt{Value: value, span: sp}, nil
}

func (p *Parser) parseWhileStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'While'

	if err := p.expect(LROUND); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, span: p.spanFrom(start)}, nil
}

// parseForStatement handles `For V In iter { }` and the indexed form
// `For I, V In iter { }`.
func (p *Parser) parseForStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'For'

	if p.cur.Type != IDENT {
		return nil, p.unexpected("identifier")
	}
	firstTok := p.cur
	p.next()

	if p.cur.Type == COMMA {
		p.next()
		if p.cur.Type != IDENT {
			return nil, p.unexpected("identifier")
		}
		secondTok := p.cur
		p.next()

		if err := p.expect(IN); err != nil {
			return nil, err
		}
		iterable, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if err := p.expect(LCURLY); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RCURLY); err != nil {
			return nil, err
		}
		return &ForIndexedStmt{
			IndexVar: firstTok.Lexeme,
			ValueVar: secondTok.Lexeme,
			Iterable: iterable,
			Body:     body,
			span:     p.spanFrom(start),
		}, nil
	}

	if err := p.expect(IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &ForStmt{
		Var:      firstTok.Lexeme,
		VarSpan:  tokenSpan(firstTok),
		Iterable: iterable,
		Body:     body,
		span:     p.spanFrom(start),
	}, nil
}

func (p *Parser) parseSwitchStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'Switch'

	if err := p.expect(LROUND); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	p.skipNewlines()

	var cases []CaseClause
	var deflt []Stmt

	for p.cur.Type != RCURLY && p.cur.Type != EOF {
		switch p.cur.Type {
		case CASE:
			p.next()
			caseExpr, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			if err := p.expect(COLON); err != nil {
				return nil, err
			}
			p.skipNewlines()

			var body []Stmt
			for p.cur.Type != CASE && p.cur.Type != DEFAULT &&
				p.cur.Type != RCURLY && p.cur.Type != EOF {
				s, err := p.parseStatement()
				if err != nil {
					return nil, err
				}
				body = append(body, s)
				p.skipNewlines()
			}
			cases = append(cases, CaseClause{Value: caseExpr, Body: body})

		case DEFAULT:
			p.next()
			if err := p.expect(COLON); err != nil {
				return nil, err
			}
			p.skipNewlines()

			deflt = []Stmt{}
			for p.cur.Type != RCURLY && p.cur.Type != EOF {
				s, err := p.parseStatement()
				if err != nil {
					return nil, err
				}
				deflt = append(deflt, s)
				p.skipNewlines()
			}

		default:
			p.next()
		}
	}

	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &SwitchStmt{Value: value, Cases: cases, Default: deflt, span: p.spanFrom(start)}, nil
}

// parseImportStatement handles `Import NAME From "path"` and the braced
// list form with optional `As` aliases.
func (p *Parser) parseImportStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'Import'

	var names, aliases []string

	readAlias := func() string {
		if p.cur.Type != AS {
			return ""
		}
		p.next()
		if p.cur.Type != IDENT {
			return ""
		}
		alias := p.cur.Lexeme
		p.next()
		return alias
	}

	if p.cur.Type == LCURLY {
		p.next()
		p.skipNewlines()

		for p.cur.Type != RCURLY && p.cur.Type != EOF {
			if p.cur.Type != IDENT {
				return nil, p.unexpected("identifier")
			}
			name := p.cur.Lexeme
			p.next()

			names = append(names, name)
			aliases = append(aliases, readAlias())

			if p.cur.Type == COMMA {
				p.next()
				p.skipNewlines()
			} else {
				break
			}
		}
		if err := p.expect(RCURLY); err != nil {
			return nil, err
		}
	} else {
		if p.cur.Type != IDENT {
			return nil, p.unexpected("identifier")
		}
		name := p.cur.Lexeme
		p.next()

		names = append(names, name)
		aliases = append(aliases, readAlias())
	}

	if err := p.expect(FROM); err != nil {
		return nil, err
	}

	if p.cur.Type != STRING {
		return nil, p.unexpected("string")
	}
	path := p.cur.Literal.(string)
	p.next()

	sp := p.spanFrom(start)
	p.eatTerminator()
	return &ImportStmt{Names: names, Aliases: aliases, Path: path, span: sp}, nil
}

func (p *Parser) parseExportStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'Export'

	if p.cur.Type != IDENT {
		return nil, p.unexpected("identifier")
	}
	name := p.cur.Lexeme
	p.next()

	sp := p.spanFrom(start)
	p.eatTerminator()
	return &ExportStmt{Name: name, span: sp}, nil
}

func (p *Parser) parseThrowStatement() (Stmt, error) {
	start := p.cur
	p.next() // 'Throw'

	value, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	sp := p.spanFrom(start)
	p.eatTerminator()
	return &ThrowStmt{Value: value, span: sp}, nil
}

func (p *Parser) parseExpressionStatement() (Stmt, error) {
	x, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	sp := x.Span()
	p.eatTerminator()
	return &ExprStmt{X: x, span: sp}, nil
}

// parseParameterList reads a comma-separated run of identifiers; the
// caller owns the surrounding parentheses.
func (p *Parser) parseParameterList() ([]string, error) {
	var params []string
	for p.cur.Type == IDENT {
		if err := p.validateParamName(p.cur); err != nil {
			return nil, err
		}
		params = append(params, p.cur.Lexeme)
		p.next()
		if p.cur.Type == COMMA {
			p.next()
		} else {
			break
		}
	}
	return params, nil
}

// parseBlock reads statements until '}' without consuming it.
func (p *Parser) parseBlock() ([]Stmt, error) {
	var stmts []Stmt
	p.skipNewlines()
	for p.cur.Type != RCURLY && p.cur.Type != EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		p.skipNewlines()
	}
	return stmts, nil
}

// ---- expressions ----

func isExprBoundary(tt TokenType) bool {
	switch tt {
	case NEWLINE, SEMI, EOF, RROUND, RSQUARE, RCURLY, COMMA, COLON:
		return true
	default:
		return false
	}
}

func (p *Parser) parseExpression(prec precedence) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for prec < tokenPrecedence(p.cur.Type) && !isExprBoundary(p.cur.Type) {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parsePrefix() (Expr, error) {
	tok := p.cur
	switch tok.Type {
	case NUMBER:
		p.next()
		return &NumberLit{Value: tok.Literal.(float64), span: tokenSpan(tok)}, nil
	case BIGINT:
		p.next()
		return &BigIntLit{Digits: tok.Literal.(string), span: tokenSpan(tok)}, nil
	case STRING:
		p.next()
		return &StringLit{Value: tok.Literal.(string), span: tokenSpan(tok)}, nil
	case BOOLEAN:
		p.next()
		return &BoolLit{Value: tok.Literal.(bool), span: tokenSpan(tok)}, nil
	case NULL:
		p.next()
		return &NullLit{span: tokenSpan(tok)}, nil
	case IDENT:
		p.next()
		return &Ident{Name: tok.Lexeme, span: tokenSpan(tok)}, nil
	case LROUND:
		return p.parseGroupedExpression()
	case LSQUARE:
		return p.parseArrayLiteral()
	case LCURLY:
		return p.parseDictLiteral()
	case MINUS:
		return p.parseUnaryExpression(OpNegate)
	case NOT:
		return p.parseUnaryExpression(OpNot)
	case IF:
		return p.parseIfExpression()
	case FUNC:
		return p.parseFuncLambda()
	case LAMBDA:
		return p.parseArrowLambda()
	default:
		return nil, p.invalidExpression("Unexpected token in expression")
	}
}

func (p *Parser) parseInfix(left Expr) (Expr, error) {
	switch p.cur.Type {
	case PLUS, MINUS, MULT, DIV, MOD,
		EQ, NEQ, LESS, LESS_EQ, GREATER, GREATER_EQ,
		AND, OR:
		return p.parseBinaryExpression(left)
	case LROUND:
		return p.parseCallExpression(left)
	case LSQUARE:
		return p.parseIndexExpression(left)
	default:
		return left, nil
	}
}

func (p *Parser) parseGroupedExpression() (Expr, error) {
	p.next() // '('
	x, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != RROUND {
		return nil, p.unexpected("')'")
	}
	p.next()
	return x, nil
}

func (p *Parser) parseArrayLiteral() (Expr, error) {
	start := p.cur
	p.next() // '['

	var elems []Expr
	p.skipNewlines()
	for p.cur.Type != RSQUARE && p.cur.Type != EOF {
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		p.skipNewlines()

		if p.cur.Type == COMMA {
			p.next()
			p.skipNewlines()
		} else if p.cur.Type == RSQUARE {
			break
		}
	}
	if err := p.expect(RSQUARE); err != nil {
		return nil, err
	}
	return &ArrayLit{Elems: elems, span: p.spanFrom(start)}, nil
}

func (p *Parser) parseDictLiteral() (Expr, error) {
	start := p.cur
	p.next() // '{'

	var entries []DictEntry
	p.skipNewlines()
	for p.cur.Type != RCURLY && p.cur.Type != EOF {
		var key string
		switch p.cur.Type {
		case IDENT:
			key = p.cur.Lexeme
		case STRING:
			key = p.cur.Literal.(string)
		default:
			return nil, p.unexpected("identifier or string")
		}
		p.next()

		if err := p.expect(COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, DictEntry{Key: key, Value: value})

		p.skipNewlines()
		if p.cur.Type == COMMA {
			p.next()
			p.skipNewlines()
		} else if p.cur.Type == RCURLY {
			break
		}
	}
	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &DictLit{Entries: entries, span: p.spanFrom(start)}, nil
}

func (p *Parser) parseUnaryExpression(op UnaryOp) (Expr, error) {
	start := p.cur
	p.next() // operator
	x, err := p.parseExpression(precPrefix)
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Op: op, X: x, span: cover(tokenSpan(start), x.Span())}, nil
}

func (p *Parser) parseBinaryExpression(left Expr) (Expr, error) {
	op, ok := binOps[p.cur.Type]
	if !ok {
		return nil, p.invalidExpression("Invalid binary operator")
	}
	prec := tokenPrecedence(p.cur.Type)
	p.next()

	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{
		Left:  left,
		Op:    op,
		Right: right,
		span:  cover(left.Span(), right.Span()),
	}, nil
}

func (p *Parser) parseCallExpression(fn Expr) (Expr, error) {
	p.next() // '('

	var args []Expr
	p.skipNewlines()
	for p.cur.Type != RROUND && p.cur.Type != EOF {
		a, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, a)

		if p.cur.Type == COMMA {
			p.next()
			p.skipNewlines()
		} else {
			break
		}
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	return &CallExpr{Func: fn, Args: args, span: cover(fn.Span(), tokenSpan(p.prev))}, nil
}

func (p *Parser) parseIndexExpression(object Expr) (Expr, error) {
	p.next() // '['
	index, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(RSQUARE); err != nil {
		return nil, err
	}
	return &IndexExpr{Object: object, Index: index, span: cover(object.Span(), tokenSpan(p.prev))}, nil
}

func (p *Parser) parseIfExpression() (Expr, error) {
	start := p.cur
	p.next() // 'If'

	if err := p.expect(LROUND); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	end := p.prev
	p.skipNewlines()

	var elifs []ElifClause
	for p.cur.Type == ELIF {
		p.next()
		if err := p.expect(LROUND); err != nil {
			return nil, err
		}
		c, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(RROUND); err != nil {
			return nil, err
		}
		p.skipNewlines()
		if err := p.expect(LCURLY); err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RCURLY); err != nil {
			return nil, err
		}
		end = p.prev
		p.skipNewlines()
		elifs = append(elifs, ElifClause{Cond: c, Body: b})
	}

	var els []Stmt
	if p.cur.Type == ELSE {
		p.next()
		p.skipNewlines()
		if err := p.expect(LCURLY); err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RCURLY); err != nil {
			return nil, err
		}
		end = p.prev
		els = b
	}

	return &IfExpr{
		Cond:  cond,
		Then:  then,
		Elifs: elifs,
		Else:  els,
		span:  cover(tokenSpan(start), tokenSpan(end)),
	}, nil
}

// parseFuncLambda handles anonymous `Func(params) { body }` in
// expression position.
func (p *Parser) parseFuncLambda() (Expr, error) {
	start := p.cur
	p.next() // 'Func'

	if err := p.expect(LROUND); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RROUND); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return &LambdaExpr{Params: params, Body: body, span: p.spanFrom(start)}, nil
}

// parseArrowLambda handles `Lambda X -> expr` and `Lambda (A, B) -> expr`.
// The arrow body becomes a single implicit Return statement.
func (p *Parser) parseArrowLambda() (Expr, error) {
	start := p.cur
	p.next() // 'Lambda'

	var params []string
	if p.cur.Type == LROUND {
		p.next()
		ps, err := p.parseParameterList()
		if err != nil {
			return nil, err
		}
		if err := p.expect(RROUND); err != nil {
			return nil, err
		}
		params = ps
	} else if p.cur.Type == IDENT {
		if err := p.validateParamName(p.cur); err != nil {
			return nil, err
		}
		params = []string{p.cur.Lexeme}
		p.next()
	} else {
		return nil, p.unexpected("identifier or '('")
	}

	if err := p.expect(ARROW); err != nil {
		return nil, err
	}

	x, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	body := []Stmt{&ReturnStmt{Value: x, span: x.Span()}}
	return &LambdaExpr{Params: params, Body: body, span: cover(tokenSpan(start), x.Span())}, nil
}

// ---- document entry point ----

// ParseIssue is one reported parse failure, 1-based.
type ParseIssue struct {
	Message string
	Line    int
	Column  int
}

// ParsedDocument bundles the text, AST, extracted symbols and errors of
// one parse. A successful parse has a populated AST and no errors; a
// failed parse has an empty AST, an empty symbol table and exactly one
// error.
type ParsedDocument struct {
	Text    string
	AST     Program
	Symbols *SymbolTable
	Errors  []ParseIssue
}

// Parse runs the full front end over input.
func Parse(input string) *ParsedDocument {
	p := NewParser(input)
	ast, err := p.ParseProgram()
	if err != nil {
		issue := ParseIssue{Message: err.Error()}
		var pe *ParseError
		if errors.As(err, &pe) {
			issue.Line = pe.Line
			issue.Column = pe.Col
		}
		return &ParsedDocument{
			Text:    input,
			Symbols: NewSymbolTable(),
			Errors:  []ParseIssue{issue},
		}
	}
	return &ParsedDocument{
		Text:    input,
		AST:     ast,
		Symbols: SymbolsFromProgram(ast, input),
	}
}
