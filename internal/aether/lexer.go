// lexer.go: whitespace-aware scanner for Aether source.
//
// Newlines are significant (statement separators) and are emitted as
// NEWLINE tokens; spaces, tabs and carriage returns are skipped but
// recorded on the next token's SpacedBefore flag. Both comment forms
// (`// ...` and `/* ... */`) are skipped entirely.
package aether

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Lexer scans an Aether source string into tokens.
type Lexer struct {
	src   string
	start int // start index of current token
	cur   int // current index
	line  int // 1-based
	col   int // characters consumed on the current line

	spacedBefore bool

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) make(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,

		Line: l.tokStartLine,
		Col:  l.tokStartCol,

		EndLine: l.line,
		EndCol:  l.col + 1,

		StartByte: l.start,
		EndByte:   l.cur,

		SpacedBefore: l.spacedBefore,
	}
	l.start = l.cur
	return tok
}

// skipSpace consumes spaces, tabs and carriage returns (not newlines)
// and records whether anything was skipped.
func (l *Lexer) skipSpace() {
	l.spacedBefore = false
	for {
		b, ok := l.peek()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\r':
			l.spacedBefore = true
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.peek()
		if !ok || b == '\n' {
			return
		}
		l.advance()
	}
}

// skipBlockComment is called with "/*" pending except for the leading '/',
// which the main scanner already consumed.
func (l *Lexer) skipBlockComment() {
	l.advance() // '*'
	for !l.isAtEnd() {
		b, _ := l.peek()
		if b == '*' {
			if b2, ok := l.peekN(1); ok && b2 == '/' {
				l.advance()
				l.advance()
				return
			}
		}
		l.advance()
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b >= utf8.RuneSelf
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// Next returns the next token. The scanner never fails; malformed input
// becomes an ILLEGAL token carrying the offending character.
func (l *Lexer) Next() Token {
	l.skipSpace()
	l.start = l.cur
	l.tokStartLine = l.line
	l.tokStartCol = l.col + 1

	if l.isAtEnd() {
		return l.make(EOF, nil)
	}

	ch, _ := l.advance()
	switch ch {
	case '+':
		return l.make(PLUS, nil)
	case '-':
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			return l.make(ARROW, nil)
		}
		return l.make(MINUS, nil)
	case '*':
		return l.make(MULT, nil)
	case '/':
		if b, ok := l.peek(); ok && b == '/' {
			l.skipLineComment()
			return l.Next()
		}
		if b, ok := l.peek(); ok && b == '*' {
			l.skipBlockComment()
			return l.Next()
		}
		return l.make(DIV, nil)
	case '%':
		return l.make(MOD, nil)

	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.make(EQ, nil)
		}
		return l.make(ASSIGN, nil)
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.make(NEQ, nil)
		}
		return l.make(NOT, nil)
	case '<':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.make(LESS_EQ, nil)
		}
		return l.make(LESS, nil)
	case '>':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.make(GREATER_EQ, nil)
		}
		return l.make(GREATER, nil)
	case '&':
		if b, ok := l.peek(); ok && b == '&' {
			l.advance()
			return l.make(AND, nil)
		}
		return l.make(ILLEGAL, '&')
	case '|':
		if b, ok := l.peek(); ok && b == '|' {
			l.advance()
			return l.make(OR, nil)
		}
		return l.make(ILLEGAL, '|')

	case '(':
		return l.make(LROUND, nil)
	case ')':
		return l.make(RROUND, nil)
	case '[':
		return l.make(LSQUARE, nil)
	case ']':
		return l.make(RSQUARE, nil)
	case '{':
		return l.make(LCURLY, nil)
	case '}':
		return l.make(RCURLY, nil)
	case ',':
		return l.make(COMMA, nil)
	case ':':
		return l.make(COLON, nil)
	case ';':
		return l.make(SEMI, nil)

	case '"':
		if b1, ok1 := l.peek(); ok1 && b1 == '"' {
			if b2, ok2 := l.peekN(1); ok2 && b2 == '"' {
				return l.scanMultilineString()
			}
		}
		return l.scanString()

	case '\n':
		return l.make(NEWLINE, nil)
	}

	if isDigit(ch) {
		return l.scanNumber()
	}
	if isIdentStart(ch) {
		return l.scanIdentifier(ch)
	}

	r := rune(ch)
	return l.make(ILLEGAL, r)
}

// scanIdentifier parses an identifier or keyword. Unicode letters are
// accepted; the first byte has already been consumed.
func (l *Lexer) scanIdentifier(first byte) Token {
	if first >= utf8.RuneSelf {
		// Re-decode the first rune to confirm it really is a letter.
		l.cur--
		l.col--
		r, size := utf8.DecodeRuneInString(l.src[l.cur:])
		if !unicode.IsLetter(r) {
			l.cur += size
			l.col += size
			return l.make(ILLEGAL, r)
		}
		l.cur += size
		l.col += size
	}
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if b < utf8.RuneSelf {
			if !isIdentPart(b) {
				break
			}
			l.advance()
			continue
		}
		r, size := utf8.DecodeRuneInString(l.src[l.cur:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.cur += size
		l.col += size
	}

	name := l.src[l.start:l.cur]
	tt := LookupKeyword(name)
	switch tt {
	case BOOLEAN:
		return l.make(BOOLEAN, name == "True")
	case NULL:
		return l.make(NULL, nil)
	case IDENT:
		return l.make(IDENT, name)
	default:
		return l.make(tt, nil)
	}
}

// scanNumber parses an integer or float. A dot is only part of the number
// when followed by a digit, so `X[1].` never eats the dot. Dotless runs
// longer than 15 digits exceed float64 precision and become BIGINT tokens
// carrying the exact digit string.
func (l *Lexer) scanNumber() Token {
	hasDot := false
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if isDigit(b) {
			l.advance()
			continue
		}
		if b == '.' && !hasDot {
			if b2, ok2 := l.peekN(1); ok2 && isDigit(b2) {
				hasDot = true
				l.advance()
				continue
			}
		}
		break
	}

	lex := l.src[l.start:l.cur]
	if !hasDot && len(lex) > 15 {
		return l.make(BIGINT, lex)
	}
	v, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return l.make(ILLEGAL, '0')
	}
	return l.make(NUMBER, v)
}

// scanString parses a `"..."` literal. The opening quote has already been
// consumed. Escape pairs are skipped during the raw scan and decoded
// afterwards; an unterminated string becomes ILLEGAL('"').
func (l *Lexer) scanString() Token {
	bodyStart := l.cur
	for {
		b, ok := l.peek()
		if !ok {
			return l.make(ILLEGAL, '"')
		}
		if b == '"' {
			break
		}
		if b == '\\' {
			l.advance()
			if !l.isAtEnd() {
				l.advance()
			}
			continue
		}
		l.advance()
	}
	raw := l.src[bodyStart:l.cur]
	l.advance() // closing quote
	return l.make(STRING, processEscapes(raw))
}

// scanMultilineString parses a `"""..."""` literal. The first quote has
// been consumed; the next two are still pending.
func (l *Lexer) scanMultilineString() Token {
	l.advance() // second quote
	l.advance() // third quote
	bodyStart := l.cur

	for {
		if l.isAtEnd() {
			return l.make(ILLEGAL, '"')
		}
		b, _ := l.peek()
		if b == '"' {
			if b2, ok := l.peekN(1); ok && b2 == '"' {
				if b3, ok := l.peekN(2); ok && b3 == '"' {
					raw := l.src[bodyStart:l.cur]
					l.advance()
					l.advance()
					l.advance()
					return l.make(STRING, processEscapes(raw))
				}
			}
		}
		l.advance()
	}
}

// processEscapes decodes \n \t \r \\ \" and passes any other escape
// through with its backslash intact.
func processEscapes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			out = append(out, s[i])
			continue
		}
		i++
		if i >= len(s) {
			out = append(out, '\\')
			break
		}
		switch s[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '\\':
			out = append(out, '\\')
		case '"':
			out = append(out, '"')
		default:
			out = append(out, '\\', s[i])
		}
	}
	return string(out)
}
