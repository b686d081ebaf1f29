// ast.go: typed AST for the Aether language.
//
// Every node carries the source span it was parsed from. Spans use
// 1-based lines and columns plus byte offsets, with an exclusive end.
package aether

// Pos is a point in the source text.
type Pos struct {
	Line   int // 1-based
	Col    int // 1-based
	Offset int // byte offset
}

// Span is a half-open region of source text.
type Span struct {
	Start Pos
	End   Pos
}

// Contains reports whether the given line/column (1-based) falls inside
// the span, end-inclusive on the boundary columns.
func (s Span) Contains(line, col int) bool {
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && col < s.Start.Col {
		return false
	}
	if line == s.End.Line && col > s.End.Col {
		return false
	}
	return true
}

func tokenSpan(t Token) Span {
	return Span{
		Start: Pos{Line: t.Line, Col: t.Col, Offset: t.StartByte},
		End:   Pos{Line: t.EndLine, Col: t.EndCol, Offset: t.EndByte},
	}
}

func cover(a, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}

// Node is implemented by every AST node.
type Node interface {
	Span() Span
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is a parsed source file.
type Program []Stmt

// ---- statements ----

// SetStmt is `Set NAME value`.
type SetStmt struct {
	Name     string
	NameSpan Span
	Value    Expr
	span     Span
}

// SetIndexStmt is `Set NAME[index] value` (no whitespace before '[').
type SetIndexStmt struct {
	Object Expr
	Index  Expr
	Value  Expr
	span   Span
}

// FuncDefStmt is `Func NAME (params) { body }`.
type FuncDefStmt struct {
	Name     string
	NameSpan Span
	Params   []string
	Body     []Stmt
	span     Span
}

// GeneratorDefStmt is `Generator NAME (params) { body }`.
type GeneratorDefStmt struct {
	Name     string
	NameSpan Span
	Params   []string
	Body     []Stmt
	span     Span
}

// LazyDefStmt is `Lazy NAME (expr)`.
type LazyDefStmt struct {
	Name     string
	NameSpan Span
	Value    Expr
	span     Span
}

type ReturnStmt struct {
	Value Expr
	span  Span
}

type YieldStmt struct {
	Value Expr
	span  Span
}

type BreakStmt struct{ span Span }

type ContinueStmt struct{ span Span }

type WhileStmt struct {
	Cond Expr
	Body []Stmt
	span Span
}

// ForStmt is `For VAR In iterable { body }`.
type ForStmt struct {
	Var      string
	VarSpan  Span
	Iterable Expr
	Body     []Stmt
	span     Span
}

// ForIndexedStmt is `For INDEX, VALUE In iterable { body }`.
type ForIndexedStmt struct {
	IndexVar string
	ValueVar string
	Iterable Expr
	Body     []Stmt
	span     Span
}

// CaseClause is one `Case value: body` arm of a Switch.
type CaseClause struct {
	Value Expr
	Body  []Stmt
}

// SwitchStmt is `Switch (expr) { Case v: ... Default: ... }`.
// Default is nil when absent.
type SwitchStmt struct {
	Value   Expr
	Cases   []CaseClause
	Default []Stmt
	span    Span
}

// ImportStmt is `Import NAME From "path"` or
// `Import {A, B As C} From "path"`. Names and Aliases are parallel;
// an empty alias means none was given.
type ImportStmt struct {
	Names   []string
	Aliases []string
	Path    string
	span    Span
}

type ExportStmt struct {
	Name string
	span Span
}

type ThrowStmt struct {
	Value Expr
	span  Span
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X    Expr
	span Span
}

func (s *SetStmt) stmtNode()          {}
func (s *SetIndexStmt) stmtNode()     {}
func (s *FuncDefStmt) stmtNode()      {}
func (s *GeneratorDefStmt) stmtNode() {}
func (s *LazyDefStmt) stmtNode()      {}
func (s *ReturnStmt) stmtNode()       {}
func (s *YieldStmt) stmtNode()        {}
func (s *BreakStmt) stmtNode()        {}
func (s *ContinueStmt) stmtNode()     {}
func (s *WhileStmt) stmtNode()        {}
func (s *ForStmt) stmtNode()          {}
func (s *ForIndexedStmt) stmtNode()   {}
func (s *SwitchStmt) stmtNode()       {}
func (s *ImportStmt) stmtNode()       {}
func (s *ExportStmt) stmtNode()       {}
func (s *ThrowStmt) stmtNode()        {}
func (s *ExprStmt) stmtNode()         {}

func (s *SetStmt) Span() Span          { return s.span }
func (s *SetIndexStmt) Span() Span     { return s.span }
func (s *FuncDefStmt) Span() Span      { return s.span }
func (s *GeneratorDefStmt) Span() Span { return s.span }
func (s *LazyDefStmt) Span() Span      { return s.span }
func (s *ReturnStmt) Span() Span       { return s.span }
func (s *YieldStmt) Span() Span        { return s.span }
func (s *BreakStmt) Span() Span        { return s.span }
func (s *ContinueStmt) Span() Span     { return s.span }
func (s *WhileStmt) Span() Span        { return s.span }
func (s *ForStmt) Span() Span          { return s.span }
func (s *ForIndexedStmt) Span() Span   { return s.span }
func (s *SwitchStmt) Span() Span       { return s.span }
func (s *ImportStmt) Span() Span       { return s.span }
func (s *ExportStmt) Span() Span       { return s.span }
func (s *ThrowStmt) Span() Span        { return s.span }
func (s *ExprStmt) Span() Span         { return s.span }

// ---- expressions ----

type NumberLit struct {
	Value float64
	span  Span
}

// BigIntLit keeps the exact digit string of an integer literal that
// exceeds float64 precision.
type BigIntLit struct {
	Digits string
	span   Span
}

type StringLit struct {
	Value string
	span  Span
}

type BoolLit struct {
	Value bool
	span  Span
}

type NullLit struct{ span Span }

type Ident struct {
	Name string
	span Span
}

type ArrayLit struct {
	Elems []Expr
	span  Span
}

// DictEntry is one key/value pair of a dict literal. Entries keep
// source order; duplicate keys are preserved.
type DictEntry struct {
	Key   string
	Value Expr
}

type DictLit struct {
	Entries []DictEntry
	span    Span
}

type BinaryExpr struct {
	Left  Expr
	Op    BinOp
	Right Expr
	span  Span
}

type UnaryExpr struct {
	Op   UnaryOp
	X    Expr
	span Span
}

type CallExpr struct {
	Func Expr
	Args []Expr
	span Span
}

type IndexExpr struct {
	Object Expr
	Index  Expr
	span   Span
}

// ElifClause is one `Elif (cond) { body }` arm.
type ElifClause struct {
	Cond Expr
	Body []Stmt
}

// IfExpr is the If form; Aether treats it as an expression.
type IfExpr struct {
	Cond  Expr
	Then  []Stmt
	Elifs []ElifClause
	Else  []Stmt
	span  Span
}

// LambdaExpr covers both `Func(params) { body }` in expression position
// and `Lambda X -> expr` (the arrow body is wrapped in a Return).
type LambdaExpr struct {
	Params []string
	Body   []Stmt
	span   Span
}

func (e *NumberLit) exprNode()  {}
func (e *BigIntLit) exprNode()  {}
func (e *StringLit) exprNode()  {}
func (e *BoolLit) exprNode()    {}
func (e *NullLit) exprNode()    {}
func (e *Ident) exprNode()      {}
func (e *ArrayLit) exprNode()   {}
func (e *DictLit) exprNode()    {}
func (e *BinaryExpr) exprNode() {}
func (e *UnaryExpr) exprNode()  {}
func (e *CallExpr) exprNode()   {}
func (e *IndexExpr) exprNode()  {}
func (e *IfExpr) exprNode()     {}
func (e *LambdaExpr) exprNode() {}

func (e *NumberLit) Span() Span  { return e.span }
func (e *BigIntLit) Span() Span  { return e.span }
func (e *StringLit) Span() Span  { return e.span }
func (e *BoolLit) Span() Span    { return e.span }
func (e *NullLit) Span() Span    { return e.span }
func (e *Ident) Span() Span      { return e.span }
func (e *ArrayLit) Span() Span   { return e.span }
func (e *DictLit) Span() Span    { return e.span }
func (e *BinaryExpr) Span() Span { return e.span }
func (e *UnaryExpr) Span() Span  { return e.span }
func (e *CallExpr) Span() Span   { return e.span }
func (e *IndexExpr) Span() Span  { return e.span }
func (e *IfExpr) Span() Span     { return e.span }
func (e *LambdaExpr) Span() Span { return e.span }

// ---- operators ----

type BinOp int

const (
	OpAdd BinOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
)

var binOpNames = [...]string{
	OpAdd:          "+",
	OpSubtract:     "-",
	OpMultiply:     "*",
	OpDivide:       "/",
	OpModulo:       "%",
	OpEqual:        "==",
	OpNotEqual:     "!=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpAnd:          "&&",
	OpOr:           "||",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpNot
)

func (op UnaryOp) String() string {
	if op == OpNegate {
		return "-"
	}
	return "!"
}
