// symbols.go: extraction of declared names from a parsed program, used
// for hover, goto-definition and the document outline.
package aether

import (
	"fmt"
	"strings"
)

// SymbolKind distinguishes the two outline categories.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
)

func (k SymbolKind) String() string {
	if k == SymbolFunction {
		return "function"
	}
	return "variable"
}

// SymbolInfo describes one declaration found in the source.
type SymbolInfo struct {
	Name string
	Kind SymbolKind

	// Span covers the whole declaration; SelectionSpan covers just the
	// name token.
	Span          Span
	SelectionSpan Span

	// Documentation is the comment block directly above the declaration,
	// if any, otherwise a synthesized one-liner.
	Documentation string
	Detail        string
}

// SymbolTable holds all declarations of a document, in source order.
type SymbolTable struct {
	Variables []SymbolInfo
	Functions []SymbolInfo
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// SymbolsFromProgram walks the AST and collects every Set, Func,
// Generator and Lazy declaration, including ones nested inside loop and
// function bodies.
func SymbolsFromProgram(ast Program, text string) *SymbolTable {
	x := &symbolExtractor{table: NewSymbolTable(), lines: strings.Split(text, "\n")}
	x.walkStmts(ast)
	return x.table
}

type symbolExtractor struct {
	table *SymbolTable
	lines []string
}

func (x *symbolExtractor) walkStmts(stmts []Stmt) {
	for _, s := range stmts {
		x.walkStmt(s)
	}
}

func (x *symbolExtractor) walkStmt(s Stmt) {
	switch st := s.(type) {
	case *SetStmt:
		x.addVariable(st.Name, st.NameSpan, fmt.Sprintf("Variable: %s", st.Name))
		x.walkExpr(st.Value)

	case *SetIndexStmt:
		x.walkExpr(st.Index)
		x.walkExpr(st.Value)

	case *FuncDefStmt:
		x.addFunction(st.Name, st.Params, st.Span(), st.NameSpan,
			fmt.Sprintf("Function: %s(%s) { ... }", st.Name, strings.Join(st.Params, ", ")))
		x.walkStmts(st.Body)

	case *GeneratorDefStmt:
		x.addFunction(st.Name, st.Params, st.Span(), st.NameSpan,
			fmt.Sprintf("Generator: %s(%s) { ... }", st.Name, strings.Join(st.Params, ", ")))
		x.walkStmts(st.Body)

	case *LazyDefStmt:
		x.addVariable(st.Name, st.NameSpan, fmt.Sprintf("Lazy: %s", st.Name))
		x.walkExpr(st.Value)

	case *ReturnStmt:
		x.walkExpr(st.Value)
	case *YieldStmt:
		x.walkExpr(st.Value)
	case *ThrowStmt:
		x.walkExpr(st.Value)

	case *WhileStmt:
		x.walkExpr(st.Cond)
		x.walkStmts(st.Body)

	case *ForStmt:
		x.walkExpr(st.Iterable)
		x.walkStmts(st.Body)

	case *ForIndexedStmt:
		x.walkExpr(st.Iterable)
		x.walkStmts(st.Body)

	case *SwitchStmt:
		x.walkExpr(st.Value)
		for _, c := range st.Cases {
			x.walkExpr(c.Value)
			x.walkStmts(c.Body)
		}
		x.walkStmts(st.Default)

	case *ExprStmt:
		x.walkExpr(st.X)
	}
}

func (x *symbolExtractor) walkExpr(e Expr) {
	switch ex := e.(type) {
	case *ArrayLit:
		for _, el := range ex.Elems {
			x.walkExpr(el)
		}
	case *DictLit:
		for _, entry := range ex.Entries {
			x.walkExpr(entry.Value)
		}
	case *BinaryExpr:
		x.walkExpr(ex.Left)
		x.walkExpr(ex.Right)
	case *UnaryExpr:
		x.walkExpr(ex.X)
	case *CallExpr:
		x.walkExpr(ex.Func)
		for _, a := range ex.Args {
			x.walkExpr(a)
		}
	case *IndexExpr:
		x.walkExpr(ex.Object)
		x.walkExpr(ex.Index)
	case *IfExpr:
		x.walkExpr(ex.Cond)
		x.walkStmts(ex.Then)
		for _, el := range ex.Elifs {
			x.walkExpr(el.Cond)
			x.walkStmts(el.Body)
		}
		x.walkStmts(ex.Else)
	case *LambdaExpr:
		x.walkStmts(ex.Body)
	}
}

func (x *symbolExtractor) addVariable(name string, nameSpan Span, detail string) {
	doc := x.docCommentAbove(nameSpan.Start.Line)
	if doc == "" {
		doc = detail
	}
	x.table.Variables = append(x.table.Variables, SymbolInfo{
		Name:          name,
		Kind:          SymbolVariable,
		Span:          nameSpan,
		SelectionSpan: nameSpan,
		Documentation: doc,
		Detail:        detail,
	})
}

func (x *symbolExtractor) addFunction(name string, params []string, full, nameSpan Span, detail string) {
	doc := x.docCommentAbove(full.Start.Line)
	if doc == "" {
		doc = fmt.Sprintf("Function: %s(%s)", name, strings.Join(params, ", "))
	}
	x.table.Functions = append(x.table.Functions, SymbolInfo{
		Name:          name,
		Kind:          SymbolFunction,
		Span:          full,
		SelectionSpan: nameSpan,
		Documentation: doc,
		Detail:        detail,
	})
}

// docCommentAbove collects the contiguous run of // lines (or the tail
// of a block comment) ending on the line directly above declLine.
// Lines are 1-based.
func (x *symbolExtractor) docCommentAbove(declLine int) string {
	idx := declLine - 2 // zero-based index of the line above
	if idx < 0 || idx >= len(x.lines) {
		return ""
	}

	var parts []string
	for idx >= 0 {
		trimmed := strings.TrimSpace(x.lines[idx])
		if strings.HasPrefix(trimmed, "//") {
			parts = append(parts, strings.TrimSpace(strings.TrimPrefix(trimmed, "//")))
			idx--
			continue
		}
		if strings.HasSuffix(trimmed, "*/") {
			// Walk the block comment upward to its opening.
			for idx >= 0 {
				line := strings.TrimSpace(x.lines[idx])
				line = strings.TrimSuffix(line, "*/")
				line = strings.TrimPrefix(line, "/*")
				line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
				if line != "" {
					parts = append(parts, line)
				}
				if strings.HasPrefix(strings.TrimSpace(x.lines[idx]), "/*") {
					break
				}
				idx--
			}
		}
		break
	}
	if len(parts) == 0 {
		return ""
	}
	// parts were collected bottom-up
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "\n")
}

// FindAtPosition returns the symbol whose span contains the 1-based
// position, variables first.
func (t *SymbolTable) FindAtPosition(line, col int) *SymbolInfo {
	for i := range t.Variables {
		if t.Variables[i].Span.Contains(line, col) {
			return &t.Variables[i]
		}
	}
	for i := range t.Functions {
		if t.Functions[i].Span.Contains(line, col) {
			return &t.Functions[i]
		}
	}
	return nil
}

// FindDefinition resolves a name to its declaration site.
func (t *SymbolTable) FindDefinition(name string) *SymbolInfo {
	for i := range t.Variables {
		if t.Variables[i].Name == name {
			return &t.Variables[i]
		}
	}
	for i := range t.Functions {
		if t.Functions[i].Name == name {
			return &t.Functions[i]
		}
	}
	return nil
}

// DocumentSymbols returns the flat outline, functions after variables,
// both in source order.
func (t *SymbolTable) DocumentSymbols() []SymbolInfo {
	out := make([]SymbolInfo, 0, len(t.Variables)+len(t.Functions))
	out = append(out, t.Variables...)
	out = append(out, t.Functions...)
	return out
}

// RenameSymbol computes the edits for renaming a symbol.
//
// TODO: needs reference tracking across the AST; declarations alone are
// not enough to produce a correct edit set.
func (t *SymbolTable) RenameSymbol(name, newName string) map[Span]string {
	return nil
}
