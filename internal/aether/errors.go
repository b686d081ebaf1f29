// errors.go: parse error values and caret-snippet rendering.
//
// ParseError carries a kind, a 1-based position and the fields each kind
// needs. The message wording is load-bearing: the diagnostics assembler
// classifies errors by substring ("Expected", "Unexpected token",
// "Invalid expression", "UPPER_SNAKE_CASE"), so the formats here must
// stay in sync with diagnostics.go.
package aether

import (
	"errors"
	"fmt"
	"strings"
)

// ParseErrorKind discriminates ParseError values.
type ParseErrorKind int

const (
	ErrUnexpectedToken ParseErrorKind = iota
	ErrUnexpectedEOF
	ErrInvalidNumber
	ErrInvalidExpression
	ErrInvalidStatement
	ErrInvalidIdentifier
)

// ParseError is the single error type produced by the parser. Parsing is
// fail-fast: the first error aborts the parse.
type ParseError struct {
	Kind ParseErrorKind

	Expected string // ErrUnexpectedToken
	Found    Token  // ErrUnexpectedToken, and wherever a token was at fault
	Number   string // ErrInvalidNumber
	Name     string // ErrInvalidIdentifier
	Reason   string // ErrInvalidIdentifier
	Msg      string // ErrInvalidExpression, ErrInvalidStatement

	Line int // 1-based
	Col  int // 1-based
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnexpectedToken:
		return fmt.Sprintf("Parse error at line %d, column %d: Expected %s, found %s",
			e.Line, e.Col, e.Expected, e.Found.Describe())
	case ErrUnexpectedEOF:
		return fmt.Sprintf("Parse error at line %d, column %d: Unexpected end of file", e.Line, e.Col)
	case ErrInvalidNumber:
		return fmt.Sprintf("Parse error: Invalid number: %s", e.Number)
	case ErrInvalidExpression:
		return fmt.Sprintf("Parse error at line %d, column %d: Invalid expression - %s",
			e.Line, e.Col, e.Msg)
	case ErrInvalidStatement:
		return fmt.Sprintf("Parse error at line %d, column %d: Invalid statement - %s",
			e.Line, e.Col, e.Msg)
	case ErrInvalidIdentifier:
		return fmt.Sprintf("Parse error at line %d, column %d: Invalid identifier '%s' - %s",
			e.Line, e.Col, e.Name, e.Reason)
	default:
		return fmt.Sprintf("Parse error at line %d, column %d", e.Line, e.Col)
	}
}

// IsIncomplete reports whether err means the input ended mid-construct.
// The REPL uses it to keep prompting for more lines instead of failing.
func IsIncomplete(err error) bool {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return false
	}
	if pe.Kind == ErrUnexpectedEOF {
		return true
	}
	return pe.Found.Type == EOF && (pe.Kind == ErrUnexpectedToken || pe.Kind == ErrInvalidExpression)
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. Non-parse errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with an optional source name
// rendered in the header ("PARSE ERROR in foo.ae at ...").
func WrapErrorWithName(err error, srcName, src string) error {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return err
	}
	return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", srcName, pe.Line, pe.Col, pe.Error()))
}

// prettyErrorString builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are 1-based and clamped to the source bounds.
func prettyErrorString(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
