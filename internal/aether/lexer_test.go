// lexer_test.go
package aether

import (
	"reflect"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	var ts []Token
	for {
		tok := l.Next()
		ts = append(ts, tok)
		if tok.Type == EOF {
			return ts
		}
	}
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_SetStatement(t *testing.T) {
	got := wantTypes(t, `Set GREETING "Hello World"`, []TokenType{
		SET, IDENT, STRING,
	})
	if got[1].Lexeme != "GREETING" {
		t.Fatalf("identifier lexeme = %q", got[1].Lexeme)
	}
	if got[2].Literal.(string) != "Hello World" {
		t.Fatalf("string literal = %v", got[2].Literal)
	}
}

func Test_Lexer_Keywords(t *testing.T) {
	src := `Set Func Return If Elif Else While For In Break Continue Generator Yield Lazy Force Switch Case Default Import Export From As Lambda Throw Try Catch`
	wantTypes(t, src, []TokenType{
		SET, FUNC, RETURN, IF, ELIF, ELSE, WHILE, FOR, IN, BREAK, CONTINUE,
		GENERATOR, YIELD, LAZY, FORCE, SWITCH, CASE, DEFAULT, IMPORT, EXPORT,
		FROM, AS, LAMBDA, THROW, TRY, CATCH,
	})
}

func Test_Lexer_BooleanAndNull(t *testing.T) {
	got := wantTypes(t, `True False Null`, []TokenType{BOOLEAN, BOOLEAN, NULL})
	if got[0].Literal.(bool) != true || got[1].Literal.(bool) != false {
		t.Fatalf("boolean literals = %v, %v", got[0].Literal, got[1].Literal)
	}
}

func Test_Lexer_Operators(t *testing.T) {
	wantTypes(t, `+ - * / % = == != < <= > >= && || ! ->`, []TokenType{
		PLUS, MINUS, MULT, DIV, MOD, ASSIGN, EQ, NEQ,
		LESS, LESS_EQ, GREATER, GREATER_EQ, AND, OR, NOT, ARROW,
	})
}

func Test_Lexer_BareAmpersandIsIllegal(t *testing.T) {
	got := toks(t, `&`)
	if got[0].Type != ILLEGAL {
		t.Fatalf("bare '&' lexed as %v", got[0].Type)
	}
	got = toks(t, `|`)
	if got[0].Type != ILLEGAL {
		t.Fatalf("bare '|' lexed as %v", got[0].Type)
	}
}

func Test_Lexer_Numbers(t *testing.T) {
	got := wantTypes(t, `42 3.14`, []TokenType{NUMBER, NUMBER})
	if got[0].Literal.(float64) != 42 {
		t.Fatalf("42 lexed as %v", got[0].Literal)
	}
	if got[1].Literal.(float64) != 3.14 {
		t.Fatalf("3.14 lexed as %v", got[1].Literal)
	}
}

func Test_Lexer_BigInteger(t *testing.T) {
	// Sixteen digits exceeds the float64-safe threshold.
	src := `9999999999999999`
	got := wantTypes(t, src, []TokenType{BIGINT})
	if got[0].Literal.(string) != "9999999999999999" {
		t.Fatalf("big integer literal = %v", got[0].Literal)
	}

	// Fifteen digits stays a Number.
	got = wantTypes(t, `999999999999999`, []TokenType{NUMBER})
	if got[0].Literal.(float64) != 999999999999999 {
		t.Fatalf("fifteen-digit literal = %v", got[0].Literal)
	}

	// A decimal point keeps even long runs in Number territory.
	wantTypes(t, `99999999999999999.5`, []TokenType{NUMBER})
}

func Test_Lexer_NumberDotWithoutDigit(t *testing.T) {
	// The dot is not part of the number when no digit follows.
	got := wantTypes(t, `3.`, []TokenType{NUMBER, ILLEGAL})
	if got[0].Literal.(float64) != 3 {
		t.Fatalf("number before dot = %v", got[0].Literal)
	}
}

func Test_Lexer_StringEscapes(t *testing.T) {
	got := wantTypes(t, `"a\nb\t\"q\"\\"`, []TokenType{STRING})
	if got[0].Literal.(string) != "a\nb\t\"q\"\\" {
		t.Fatalf("escaped string = %q", got[0].Literal)
	}

	// Unknown escapes keep their backslash.
	got = wantTypes(t, `"a\qb"`, []TokenType{STRING})
	if got[0].Literal.(string) != `a\qb` {
		t.Fatalf("unknown escape = %q", got[0].Literal)
	}
}

func Test_Lexer_UnterminatedString(t *testing.T) {
	got := toks(t, `"abc`)
	if got[0].Type != ILLEGAL {
		t.Fatalf("unterminated string lexed as %v", got[0].Type)
	}
}

func Test_Lexer_MultilineString(t *testing.T) {
	src := "\"\"\"line one\nline two\"\"\""
	got := wantTypes(t, src, []TokenType{STRING})
	if got[0].Literal.(string) != "line one\nline two" {
		t.Fatalf("multiline literal = %q", got[0].Literal)
	}
	if got[0].Line != 1 || got[0].EndLine != 2 {
		t.Fatalf("multiline span lines = %d..%d", got[0].Line, got[0].EndLine)
	}

	// Line tracking must survive the embedded newline.
	src = "\"\"\"a\nb\"\"\"\nSet X_VAR 1"
	got = wantTypes(t, src, []TokenType{STRING, NEWLINE, SET, IDENT, NUMBER})
	if got[2].Line != 3 {
		t.Fatalf("Set after multiline string on line %d", got[2].Line)
	}
}

func Test_Lexer_Comments(t *testing.T) {
	src := "Set A_VAR 1 // trailing comment\n/* block\ncomment */ Set B_VAR 2"
	wantTypes(t, src, []TokenType{
		SET, IDENT, NUMBER, NEWLINE, SET, IDENT, NUMBER,
	})
}

func Test_Lexer_NewlineTokens(t *testing.T) {
	wantTypes(t, "Set A_VAR 1\nSet B_VAR 2", []TokenType{
		SET, IDENT, NUMBER, NEWLINE, SET, IDENT, NUMBER,
	})
}

func Test_Lexer_WhitespaceBeforeFlag(t *testing.T) {
	got := toks(t, `Set ARR[0] 5`)
	// ARR then '[': no space between them.
	if got[2].Type != LSQUARE || got[2].SpacedBefore {
		t.Fatalf("'[' token = %v spaced=%v", got[2].Type, got[2].SpacedBefore)
	}

	got = toks(t, `Set ARR [1]`)
	if got[2].Type != LSQUARE || !got[2].SpacedBefore {
		t.Fatalf("'[' token = %v spaced=%v", got[2].Type, got[2].SpacedBefore)
	}
}

func Test_Lexer_Positions(t *testing.T) {
	got := toks(t, "Set X_VAR 10\nSet Y_VAR 20")
	// Second Set starts at line 2, column 1.
	var second *Token
	count := 0
	for i := range got {
		if got[i].Type == SET {
			count++
			if count == 2 {
				second = &got[i]
			}
		}
	}
	if second == nil {
		t.Fatal("second Set not found")
	}
	if second.Line != 2 || second.Col != 1 {
		t.Fatalf("second Set at %d:%d", second.Line, second.Col)
	}
	if second.EndCol != 4 {
		t.Fatalf("second Set end col = %d", second.EndCol)
	}
}

func Test_Lexer_IllegalCharacter(t *testing.T) {
	got := toks(t, `Set X_VAR @`)
	last := got[len(got)-2]
	if last.Type != ILLEGAL {
		t.Fatalf("'@' lexed as %v", last.Type)
	}
}
