// diagnostics.go: turns parse results into editor diagnostics.
//
// Parse failures map to E-coded errors from source "aether-parser".
// When a document parses cleanly, a second pass re-tokenizes it and
// emits W001 naming warnings from source "aether-lint" for declared
// names that stray from UPPER_SNAKE_CASE.
package aether

import (
	"fmt"
	"strings"
)

// Position is a zero-based line/character pair, matching editor
// protocol conventions.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Severity follows the LSP numbering.
type Severity int

const (
	SeverityError   Severity = 1
	SeverityWarning Severity = 2
)

// Diagnostic is one reportable finding in a document.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message"`
}

// Analyze produces the diagnostics for a parsed document.
func Analyze(doc *ParsedDocument) []Diagnostic {
	diags := make([]Diagnostic, 0, len(doc.Errors))

	for _, e := range doc.Errors {
		line := e.Line - 1
		if line < 0 {
			line = 0
		}
		col := e.Column - 1
		if col < 0 {
			col = 0
		}
		diags = append(diags, Diagnostic{
			Range: Range{
				Start: Position{Line: line, Character: col},
				End:   Position{Line: line, Character: col + estimateErrorLength(e.Message)},
			},
			Severity: SeverityError,
			Code:     errorCodeFromMessage(e.Message),
			Source:   "aether-parser",
			Message:  e.Message,
		})
	}

	// Style lints are only meaningful on a document that parses.
	if len(doc.Errors) == 0 {
		diags = append(diags, lintNaming(doc.Text)...)
	}
	return diags
}

func errorCodeFromMessage(msg string) string {
	switch {
	case strings.Contains(msg, "UPPER_SNAKE_CASE"):
		return "E001"
	case strings.Contains(msg, "Unexpected token"):
		return "E002"
	case strings.Contains(msg, "Expected"):
		return "E003"
	case strings.Contains(msg, "Invalid expression"):
		return "E004"
	default:
		return "E000"
	}
}

// estimateErrorLength guesses how many characters to underline; the
// parser reports a point, not a range.
func estimateErrorLength(msg string) int {
	switch {
	case strings.Contains(msg, "identifier"):
		return 10
	case strings.Contains(msg, "Expected"):
		return 5
	case strings.Contains(msg, "UPPER_SNAKE_CASE"):
		return 15
	default:
		return 8
	}
}

// IsValidName is the lint-level naming rule: ASCII uppercase letters,
// digits and underscores, not starting with a digit. Stricter than the
// parser, which accepts any Unicode uppercase letter.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	if name[0] >= '0' && name[0] <= '9' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}

// lintNaming re-tokenizes the text and flags identifiers declared via
// Set, Func, Generator or Lazy whose names fail IsValidName.
func lintNaming(text string) []Diagnostic {
	var diags []Diagnostic

	lex := NewLexer(text)
	prev := EOF
	for {
		tok := lex.Next()
		if tok.Type == EOF {
			break
		}
		if tok.Type == IDENT && declaresName(prev) && !IsValidName(tok.Lexeme) {
			line := tok.Line - 1
			if line < 0 {
				line = 0
			}
			col := tok.Col - 1
			if col < 0 {
				col = 0
			}
			diags = append(diags, Diagnostic{
				Range: Range{
					Start: Position{Line: line, Character: col},
					End:   Position{Line: line, Character: col + len(tok.Lexeme)},
				},
				Severity: SeverityWarning,
				Code:     "W001",
				Source:   "aether-lint",
				Message: fmt.Sprintf("variable name '%s' should use UPPER_SNAKE_CASE\nsuggested: %s",
					tok.Lexeme, strings.ToUpper(tok.Lexeme)),
			})
		}
		prev = tok.Type
	}
	return diags
}

func declaresName(tt TokenType) bool {
	switch tt {
	case SET, FUNC, GENERATOR, LAZY:
		return true
	default:
		return false
	}
}
