// token.go: token kinds and the keyword table for the Aether language.
package aether

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Keywords
	SET
	FUNC
	RETURN
	IF
	ELIF
	ELSE
	WHILE
	FOR
	IN
	BREAK
	CONTINUE
	GENERATOR
	YIELD
	LAZY
	FORCE
	SWITCH
	CASE
	DEFAULT
	IMPORT
	EXPORT
	FROM
	AS
	LAMBDA
	THROW
	TRY
	CATCH

	// Literals & identifiers
	NUMBER  // float literal, or integer within float64 precision
	BIGINT  // dotless integer longer than 15 digits, kept as its digit string
	STRING  // decoded string literal
	BOOLEAN // True / False
	NULL
	IDENT

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	MOD
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	AND // "&&"
	OR  // "||"
	NOT // "!"
	ARROW

	// Delimiters
	LROUND   // "("
	RROUND   // ")"
	LSQUARE  // "["
	RSQUARE  // "]"
	LCURLY   // "{"
	RCURLY   // "}"
	COMMA    // ","
	COLON    // ":"
	SEMI     // ";"
	NEWLINE  // statement separator
)

// Token is a lexical token with optional literal value and its exact
// location in the source. SpacedBefore reports whether whitespace was
// skipped immediately before the token; the parser uses it to tell
// `Set A[0] v` (index assignment) apart from `Set A [v]` (array value).
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals

	Line int // 1-based start line
	Col  int // 1-based start column

	EndLine int // 1-based line one past the last character
	EndCol  int // 1-based column one past the last character

	StartByte int // byte offset of the first character
	EndByte   int // byte offset one past the last character

	SpacedBefore bool
}

// keywords map (case-sensitive; Aether keywords are capitalized).
var keywords = map[string]TokenType{
	"Set":       SET,
	"Func":      FUNC,
	"Return":    RETURN,
	"If":        IF,
	"Elif":      ELIF,
	"Else":      ELSE,
	"While":     WHILE,
	"For":       FOR,
	"In":        IN,
	"Break":     BREAK,
	"Continue":  CONTINUE,
	"Generator": GENERATOR,
	"Yield":     YIELD,
	"Lazy":      LAZY,
	"Force":     FORCE,
	"Switch":    SWITCH,
	"Case":      CASE,
	"Default":   DEFAULT,
	"Import":    IMPORT,
	"Export":    EXPORT,
	"From":      FROM,
	"As":        AS,
	"Lambda":    LAMBDA,
	"Throw":     THROW,
	"Try":       TRY,
	"Catch":     CATCH,
	"True":      BOOLEAN,
	"False":     BOOLEAN,
	"Null":      NULL,
}

// LookupKeyword resolves an identifier to its keyword token type, or IDENT.
func LookupKeyword(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

var tokenNames = map[TokenType]string{
	EOF:        "end of file",
	ILLEGAL:    "illegal character",
	SET:        "'Set'",
	FUNC:       "'Func'",
	RETURN:     "'Return'",
	IF:         "'If'",
	ELIF:       "'Elif'",
	ELSE:       "'Else'",
	WHILE:      "'While'",
	FOR:        "'For'",
	IN:         "'In'",
	BREAK:      "'Break'",
	CONTINUE:   "'Continue'",
	GENERATOR:  "'Generator'",
	YIELD:      "'Yield'",
	LAZY:       "'Lazy'",
	FORCE:      "'Force'",
	SWITCH:     "'Switch'",
	CASE:       "'Case'",
	DEFAULT:    "'Default'",
	IMPORT:     "'Import'",
	EXPORT:     "'Export'",
	FROM:       "'From'",
	AS:         "'As'",
	LAMBDA:     "'Lambda'",
	THROW:      "'Throw'",
	TRY:        "'Try'",
	CATCH:      "'Catch'",
	NUMBER:     "number",
	BIGINT:     "big integer",
	STRING:     "string",
	BOOLEAN:    "boolean",
	NULL:       "'Null'",
	IDENT:      "identifier",
	PLUS:       "'+'",
	MINUS:      "'-'",
	MULT:       "'*'",
	DIV:        "'/'",
	MOD:        "'%'",
	ASSIGN:     "'='",
	EQ:         "'=='",
	NEQ:        "'!='",
	LESS:       "'<'",
	LESS_EQ:    "'<='",
	GREATER:    "'>'",
	GREATER_EQ: "'>='",
	AND:        "'&&'",
	OR:         "'||'",
	NOT:        "'!'",
	ARROW:      "'->'",
	LROUND:     "'('",
	RROUND:     "')'",
	LSQUARE:    "'['",
	RSQUARE:    "']'",
	LCURLY:     "'{'",
	RCURLY:     "'}'",
	COMMA:      "','",
	COLON:      "':'",
	SEMI:       "';'",
	NEWLINE:    "newline",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Describe renders a token for error messages, including the literal for
// identifiers and literals so messages read "identifier 'x'" rather than
// just "identifier".
func (t Token) Describe() string {
	switch t.Type {
	case IDENT:
		return fmt.Sprintf("identifier '%s'", t.Lexeme)
	case NUMBER, BIGINT:
		return fmt.Sprintf("number '%s'", t.Lexeme)
	case STRING:
		return fmt.Sprintf("string %q", t.Literal)
	case ILLEGAL:
		return fmt.Sprintf("illegal character '%s'", t.Lexeme)
	default:
		return t.Type.String()
	}
}
