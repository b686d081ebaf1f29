// parser_test.go
package aether

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustParse(t *testing.T, src string) Program {
	t.Helper()
	p := NewParser(src)
	ast, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return ast
}

func mustFail(t *testing.T, src string) *ParseError {
	t.Helper()
	p := NewParser(src)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected parse error\nsource:\n%s", src)
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe
}

func onlyStmt(t *testing.T, src string) Stmt {
	t.Helper()
	ast := mustParse(t, src)
	if len(ast) != 1 {
		t.Fatalf("want 1 statement, got %d\nsource:\n%s\nast:\n%s", len(ast), src, Dump(ast))
	}
	return ast[0]
}

// --- statements ------------------------------------------------------------

func Test_Parser_SetStatement(t *testing.T) {
	s := onlyStmt(t, `Set COUNTER 42`)
	set, ok := s.(*SetStmt)
	if !ok {
		t.Fatalf("want *SetStmt, got %T", s)
	}
	if set.Name != "COUNTER" {
		t.Fatalf("name = %q", set.Name)
	}
	num, ok := set.Value.(*NumberLit)
	if !ok || num.Value != 42 {
		t.Fatalf("value = %#v", set.Value)
	}
}

func Test_Parser_SetArrayLiteral_SpaceBeforeBracket(t *testing.T) {
	s := onlyStmt(t, `Set ARR [1, 2, 3]`)
	set, ok := s.(*SetStmt)
	if !ok {
		t.Fatalf("want *SetStmt, got %T", s)
	}
	arr, ok := set.Value.(*ArrayLit)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("value = %#v", set.Value)
	}
}

func Test_Parser_SetIndexAssignment_NoSpaceBeforeBracket(t *testing.T) {
	s := onlyStmt(t, `Set ARR[0] 5`)
	idx, ok := s.(*SetIndexStmt)
	if !ok {
		t.Fatalf("want *SetIndexStmt, got %T", s)
	}
	obj, ok := idx.Object.(*Ident)
	if !ok || obj.Name != "ARR" {
		t.Fatalf("object = %#v", idx.Object)
	}
	if n, ok := idx.Index.(*NumberLit); !ok || n.Value != 0 {
		t.Fatalf("index = %#v", idx.Index)
	}
	if n, ok := idx.Value.(*NumberLit); !ok || n.Value != 5 {
		t.Fatalf("value = %#v", idx.Value)
	}
}

func Test_Parser_SetRequiresUpperSnakeCase(t *testing.T) {
	pe := mustFail(t, `Set x 1`)
	if !strings.Contains(pe.Error(), "UPPER_SNAKE_CASE") {
		t.Fatalf("error = %v", pe)
	}
	if pe.Line != 1 || pe.Col != 5 {
		t.Fatalf("error at %d:%d", pe.Line, pe.Col)
	}
}

func Test_Parser_FuncDefinition(t *testing.T) {
	src := `Func ADD(A, B) {
	Return A + B
}`
	s := onlyStmt(t, src)
	fn, ok := s.(*FuncDefStmt)
	if !ok {
		t.Fatalf("want *FuncDefStmt, got %T", s)
	}
	if fn.Name != "ADD" || len(fn.Params) != 2 || fn.Params[0] != "A" || fn.Params[1] != "B" {
		t.Fatalf("func = %q params = %v", fn.Name, fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("body = %d statements", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("body[0] = %T", fn.Body[0])
	}
	if _, ok := ret.Value.(*BinaryExpr); !ok {
		t.Fatalf("return value = %T", ret.Value)
	}
}

func Test_Parser_FuncNameValidated(t *testing.T) {
	mustFail(t, `Func badName() { }`)
}

func Test_Parser_ParamsAllowLowercase(t *testing.T) {
	// Strict casing applies to declared names, not parameters.
	mustParse(t, `Func CALC(first, second) { Return first }`)
}

func Test_Parser_GeneratorDefinition(t *testing.T) {
	src := `Generator COUNT_UP(LIMIT) {
	Yield LIMIT
}`
	s := onlyStmt(t, src)
	gen, ok := s.(*GeneratorDefStmt)
	if !ok {
		t.Fatalf("want *GeneratorDefStmt, got %T", s)
	}
	if gen.Name != "COUNT_UP" {
		t.Fatalf("name = %q", gen.Name)
	}
	if _, ok := gen.Body[0].(*YieldStmt); !ok {
		t.Fatalf("body[0] = %T", gen.Body[0])
	}
}

func Test_Parser_LazyDefinition(t *testing.T) {
	s := onlyStmt(t, `Lazy EXPENSIVE (COMPUTE(10))`)
	lz, ok := s.(*LazyDefStmt)
	if !ok {
		t.Fatalf("want *LazyDefStmt, got %T", s)
	}
	if lz.Name != "EXPENSIVE" {
		t.Fatalf("name = %q", lz.Name)
	}
	if _, ok := lz.Value.(*CallExpr); !ok {
		t.Fatalf("value = %T", lz.Value)
	}
}

func Test_Parser_ReturnWithoutValue(t *testing.T) {
	src := `Func NOOP() {
	Return
}`
	s := onlyStmt(t, src)
	fn := s.(*FuncDefStmt)
	ret := fn.Body[0].(*ReturnStmt)
	if _, ok := ret.Value.(*NullLit); !ok {
		t.Fatalf("bare Return value = %T", ret.Value)
	}
}

func Test_Parser_WhileLoop(t *testing.T) {
	src := `While (I < 10) {
	Set I I + 1
}`
	s := onlyStmt(t, src)
	wh, ok := s.(*WhileStmt)
	if !ok {
		t.Fatalf("want *WhileStmt, got %T", s)
	}
	if _, ok := wh.Cond.(*BinaryExpr); !ok {
		t.Fatalf("cond = %T", wh.Cond)
	}
	if len(wh.Body) != 1 {
		t.Fatalf("body = %d statements", len(wh.Body))
	}
}

func Test_Parser_ForLoop(t *testing.T) {
	src := `For ITEM In MY_LIST {
	PRINTLN(ITEM)
}`
	s := onlyStmt(t, src)
	f, ok := s.(*ForStmt)
	if !ok {
		t.Fatalf("want *ForStmt, got %T", s)
	}
	if f.Var != "ITEM" {
		t.Fatalf("loop var = %q", f.Var)
	}
}

func Test_Parser_ForIndexedLoop(t *testing.T) {
	src := `For I, V In RANGE(0, 10) {
	PRINTLN(I, V)
}`
	s := onlyStmt(t, src)
	f, ok := s.(*ForIndexedStmt)
	if !ok {
		t.Fatalf("want *ForIndexedStmt, got %T", s)
	}
	if f.IndexVar != "I" || f.ValueVar != "V" {
		t.Fatalf("vars = %q, %q", f.IndexVar, f.ValueVar)
	}
	if _, ok := f.Iterable.(*CallExpr); !ok {
		t.Fatalf("iterable = %T", f.Iterable)
	}
}

func Test_Parser_BreakAndContinue(t *testing.T) {
	src := `While (True) {
	Break
	Continue
}`
	s := onlyStmt(t, src)
	wh := s.(*WhileStmt)
	if _, ok := wh.Body[0].(*BreakStmt); !ok {
		t.Fatalf("body[0] = %T", wh.Body[0])
	}
	if _, ok := wh.Body[1].(*ContinueStmt); !ok {
		t.Fatalf("body[1] = %T", wh.Body[1])
	}
}

func Test_Parser_SwitchStatement(t *testing.T) {
	src := `Switch (GRADE) {
	Case "A":
		PRINTLN("excellent")
	Case "B":
		PRINTLN("good")
	Default:
		PRINTLN("other")
}`
	s := onlyStmt(t, src)
	sw, ok := s.(*SwitchStmt)
	if !ok {
		t.Fatalf("want *SwitchStmt, got %T", s)
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("cases = %d", len(sw.Cases))
	}
	if sw.Default == nil || len(sw.Default) != 1 {
		t.Fatalf("default = %#v", sw.Default)
	}
}

func Test_Parser_ImportSingle(t *testing.T) {
	s := onlyStmt(t, `Import UTILS From "lib/utils"`)
	imp, ok := s.(*ImportStmt)
	if !ok {
		t.Fatalf("want *ImportStmt, got %T", s)
	}
	if len(imp.Names) != 1 || imp.Names[0] != "UTILS" || imp.Aliases[0] != "" {
		t.Fatalf("names = %v aliases = %v", imp.Names, imp.Aliases)
	}
	if imp.Path != "lib/utils" {
		t.Fatalf("path = %q", imp.Path)
	}
}

func Test_Parser_ImportListWithAliases(t *testing.T) {
	s := onlyStmt(t, `Import {HELPER As H, FORMAT} From "lib/helpers"`)
	imp := s.(*ImportStmt)
	if len(imp.Names) != 2 {
		t.Fatalf("names = %v", imp.Names)
	}
	if imp.Names[0] != "HELPER" || imp.Aliases[0] != "H" {
		t.Fatalf("first import = %q As %q", imp.Names[0], imp.Aliases[0])
	}
	if imp.Names[1] != "FORMAT" || imp.Aliases[1] != "" {
		t.Fatalf("second import = %q As %q", imp.Names[1], imp.Aliases[1])
	}
}

func Test_Parser_ExportAndThrow(t *testing.T) {
	ast := mustParse(t, "Export MY_FUNC\nThrow \"boom\"")
	if len(ast) != 2 {
		t.Fatalf("got %d statements", len(ast))
	}
	exp := ast[0].(*ExportStmt)
	if exp.Name != "MY_FUNC" {
		t.Fatalf("export = %q", exp.Name)
	}
	thr := ast[1].(*ThrowStmt)
	if s, ok := thr.Value.(*StringLit); !ok || s.Value != "boom" {
		t.Fatalf("throw value = %#v", thr.Value)
	}
}

func Test_Parser_SemicolonSeparator(t *testing.T) {
	ast := mustParse(t, `Set A_VAR 1; Set B_VAR 2`)
	if len(ast) != 2 {
		t.Fatalf("got %d statements:\n%s", len(ast), Dump(ast))
	}
}

// --- expressions -----------------------------------------------------------

func Test_Parser_OperatorPrecedence(t *testing.T) {
	s := onlyStmt(t, `Set RESULT 5 + 3 * 2`)
	set := s.(*SetStmt)
	add, ok := set.Value.(*BinaryExpr)
	if !ok || add.Op != OpAdd {
		t.Fatalf("top = %#v", set.Value)
	}
	if n, ok := add.Left.(*NumberLit); !ok || n.Value != 5 {
		t.Fatalf("left = %#v", add.Left)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Op != OpMultiply {
		t.Fatalf("right = %#v", add.Right)
	}
}

func Test_Parser_ComparisonAndLogical(t *testing.T) {
	s := onlyStmt(t, `Set OK A_VAL > 1 && B_VAL < 2 || C_VAL == 3`)
	set := s.(*SetStmt)
	or, ok := set.Value.(*BinaryExpr)
	if !ok || or.Op != OpOr {
		t.Fatalf("top = %#v", set.Value)
	}
	and, ok := or.Left.(*BinaryExpr)
	if !ok || and.Op != OpAnd {
		t.Fatalf("or left = %#v", or.Left)
	}
}

func Test_Parser_UnaryExpressions(t *testing.T) {
	s := onlyStmt(t, `Set NEG -5 * 2`)
	set := s.(*SetStmt)
	mul := set.Value.(*BinaryExpr)
	if mul.Op != OpMultiply {
		t.Fatalf("top op = %v", mul.Op)
	}
	neg, ok := mul.Left.(*UnaryExpr)
	if !ok || neg.Op != OpNegate {
		t.Fatalf("left = %#v", mul.Left)
	}

	s = onlyStmt(t, `Set INV !FLAG`)
	not := s.(*SetStmt).Value.(*UnaryExpr)
	if not.Op != OpNot {
		t.Fatalf("op = %v", not.Op)
	}
}

func Test_Parser_GroupingOverridesPrecedence(t *testing.T) {
	s := onlyStmt(t, `Set RESULT (5 + 3) * 2`)
	set := s.(*SetStmt)
	mul, ok := set.Value.(*BinaryExpr)
	if !ok || mul.Op != OpMultiply {
		t.Fatalf("top = %#v", set.Value)
	}
	if add, ok := mul.Left.(*BinaryExpr); !ok || add.Op != OpAdd {
		t.Fatalf("left = %#v", mul.Left)
	}
}

func Test_Parser_BigIntegerLiteral(t *testing.T) {
	s := onlyStmt(t, `Set HUGE 9999999999999999`)
	set := s.(*SetStmt)
	big, ok := set.Value.(*BigIntLit)
	if !ok {
		t.Fatalf("value = %T", set.Value)
	}
	if big.Digits != "9999999999999999" {
		t.Fatalf("digits = %q", big.Digits)
	}
}

func Test_Parser_CallAndIndexChaining(t *testing.T) {
	s := onlyStmt(t, `Set V GET_MATRIX()[0][1]`)
	set := s.(*SetStmt)
	outer, ok := set.Value.(*IndexExpr)
	if !ok {
		t.Fatalf("value = %T", set.Value)
	}
	inner, ok := outer.Object.(*IndexExpr)
	if !ok {
		t.Fatalf("outer object = %T", outer.Object)
	}
	if _, ok := inner.Object.(*CallExpr); !ok {
		t.Fatalf("inner object = %T", inner.Object)
	}
}

func Test_Parser_CallWithMultilineArgs(t *testing.T) {
	// Newlines are skipped after '(' and after each comma, so arguments
	// may sit on their own lines as long as ')' follows the last one.
	src := `Set R ADD(
	1,
	2)`
	s := onlyStmt(t, src)
	call := s.(*SetStmt).Value.(*CallExpr)
	if len(call.Args) != 2 {
		t.Fatalf("args = %d", len(call.Args))
	}
}

func Test_Parser_CallNewlineBeforeCloseParen(t *testing.T) {
	// A newline between the last argument and ')' is not skipped.
	src := `Set R ADD(
	1,
	2
)`
	pe := mustFail(t, src)
	if !strings.Contains(pe.Error(), "Expected ')'") {
		t.Fatalf("message = %q", pe.Error())
	}
	if pe.Line != 3 {
		t.Fatalf("line = %d", pe.Line)
	}
}

func Test_Parser_DictLiteral(t *testing.T) {
	s := onlyStmt(t, `Set CFG {name: "app", "max size": 10}`)
	set := s.(*SetStmt)
	d, ok := set.Value.(*DictLit)
	if !ok || len(d.Entries) != 2 {
		t.Fatalf("value = %#v", set.Value)
	}
	if d.Entries[0].Key != "name" || d.Entries[1].Key != "max size" {
		t.Fatalf("keys = %q, %q", d.Entries[0].Key, d.Entries[1].Key)
	}
}

func Test_Parser_IfExpression(t *testing.T) {
	src := `Set GRADE If (SCORE >= 90) {
	Return "A"
} Elif (SCORE >= 80) {
	Return "B"
} Else {
	Return "C"
}`
	s := onlyStmt(t, src)
	set := s.(*SetStmt)
	ife, ok := set.Value.(*IfExpr)
	if !ok {
		t.Fatalf("value = %T", set.Value)
	}
	if len(ife.Elifs) != 1 {
		t.Fatalf("elifs = %d", len(ife.Elifs))
	}
	if ife.Else == nil {
		t.Fatal("missing else branch")
	}
}

func Test_Parser_FuncLambda(t *testing.T) {
	s := onlyStmt(t, `Set TWICE Func(X) { Return X * 2 }`)
	set := s.(*SetStmt)
	lam, ok := set.Value.(*LambdaExpr)
	if !ok {
		t.Fatalf("value = %T", set.Value)
	}
	if len(lam.Params) != 1 || lam.Params[0] != "X" {
		t.Fatalf("params = %v", lam.Params)
	}
}

func Test_Parser_ArrowLambda(t *testing.T) {
	s := onlyStmt(t, `Set INC Lambda x -> (x + 1)`)
	set := s.(*SetStmt)
	lam, ok := set.Value.(*LambdaExpr)
	if !ok {
		t.Fatalf("value = %T", set.Value)
	}
	if len(lam.Params) != 1 || lam.Params[0] != "x" {
		t.Fatalf("params = %v", lam.Params)
	}
	// The arrow body is an implicit Return.
	ret, ok := lam.Body[0].(*ReturnStmt)
	if !ok {
		t.Fatalf("body[0] = %T", lam.Body[0])
	}
	if _, ok := ret.Value.(*BinaryExpr); !ok {
		t.Fatalf("return value = %T", ret.Value)
	}
}

func Test_Parser_ArrowLambdaMultipleParams(t *testing.T) {
	s := onlyStmt(t, `Set SUM2 Lambda (A, B) -> (A + B)`)
	lam := s.(*SetStmt).Value.(*LambdaExpr)
	if len(lam.Params) != 2 {
		t.Fatalf("params = %v", lam.Params)
	}
}

// --- error reporting -------------------------------------------------------

func Test_Parser_FailFast(t *testing.T) {
	// Two malformed statements, only the first is reported.
	doc := Parse("Set 123\nSet 456")
	if len(doc.Errors) != 1 {
		t.Fatalf("errors = %d: %v", len(doc.Errors), doc.Errors)
	}
	if len(doc.AST) != 0 {
		t.Fatalf("failed parse kept %d statements", len(doc.AST))
	}
	if len(doc.Symbols.Variables) != 0 || len(doc.Symbols.Functions) != 0 {
		t.Fatalf("failed parse kept symbols: %+v", doc.Symbols)
	}
}

func Test_Parser_UnexpectedTokenMessage(t *testing.T) {
	pe := mustFail(t, `Set 123`)
	msg := pe.Error()
	if !strings.Contains(msg, "Expected identifier") {
		t.Fatalf("message = %q", msg)
	}
	if !strings.Contains(msg, "line 1") {
		t.Fatalf("message = %q", msg)
	}
}

func Test_Parser_ErrorPositions(t *testing.T) {
	pe := mustFail(t, "Set A_VAR 1\nSet 9")
	if pe.Line != 2 {
		t.Fatalf("error line = %d", pe.Line)
	}
}

func Test_Parser_InvalidExpressionMessage(t *testing.T) {
	pe := mustFail(t, `Set A_VAR ]`)
	if !strings.Contains(pe.Error(), "Invalid expression") {
		t.Fatalf("message = %q", pe.Error())
	}
}

func Test_Parser_SuccessfulDocument(t *testing.T) {
	doc := Parse(`Set GREETING "hi"`)
	if len(doc.Errors) != 0 {
		t.Fatalf("errors = %v", doc.Errors)
	}
	if len(doc.AST) != 1 {
		t.Fatalf("ast = %d statements", len(doc.AST))
	}
	if len(doc.Symbols.Variables) != 1 {
		t.Fatalf("symbols = %+v", doc.Symbols)
	}
}

func Test_Parser_Spans(t *testing.T) {
	s := onlyStmt(t, `Set COUNTER 42`)
	sp := s.Span()
	if sp.Start.Line != 1 || sp.Start.Col != 1 {
		t.Fatalf("span start = %d:%d", sp.Start.Line, sp.Start.Col)
	}
	// End is one past the final '2'.
	if sp.End.Col != 15 {
		t.Fatalf("span end col = %d", sp.End.Col)
	}

	set := s.(*SetStmt)
	if set.NameSpan.Start.Col != 5 || set.NameSpan.End.Col != 12 {
		t.Fatalf("name span cols = %d..%d", set.NameSpan.Start.Col, set.NameSpan.End.Col)
	}
}
