// dump.go: human-readable AST rendering for debugging and the CLI
// parse command.
package aether

import (
	"fmt"
	"strings"
)

// Dump renders a program as an indented tree.
func Dump(ast Program) string {
	var b strings.Builder
	for _, s := range ast {
		dumpStmt(&b, s, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch st := s.(type) {
	case *SetStmt:
		fmt.Fprintf(b, "Set %s\n", st.Name)
		dumpExpr(b, st.Value, depth+1)
	case *SetIndexStmt:
		b.WriteString("SetIndex\n")
		dumpExpr(b, st.Object, depth+1)
		dumpExpr(b, st.Index, depth+1)
		dumpExpr(b, st.Value, depth+1)
	case *FuncDefStmt:
		fmt.Fprintf(b, "Func %s(%s)\n", st.Name, strings.Join(st.Params, ", "))
		dumpBlock(b, st.Body, depth+1)
	case *GeneratorDefStmt:
		fmt.Fprintf(b, "Generator %s(%s)\n", st.Name, strings.Join(st.Params, ", "))
		dumpBlock(b, st.Body, depth+1)
	case *LazyDefStmt:
		fmt.Fprintf(b, "Lazy %s\n", st.Name)
		dumpExpr(b, st.Value, depth+1)
	case *ReturnStmt:
		b.WriteString("Return\n")
		dumpExpr(b, st.Value, depth+1)
	case *YieldStmt:
		b.WriteString("Yield\n")
		dumpExpr(b, st.Value, depth+1)
	case *BreakStmt:
		b.WriteString("Break\n")
	case *ContinueStmt:
		b.WriteString("Continue\n")
	case *WhileStmt:
		b.WriteString("While\n")
		dumpExpr(b, st.Cond, depth+1)
		dumpBlock(b, st.Body, depth+1)
	case *ForStmt:
		fmt.Fprintf(b, "For %s\n", st.Var)
		dumpExpr(b, st.Iterable, depth+1)
		dumpBlock(b, st.Body, depth+1)
	case *ForIndexedStmt:
		fmt.Fprintf(b, "For %s, %s\n", st.IndexVar, st.ValueVar)
		dumpExpr(b, st.Iterable, depth+1)
		dumpBlock(b, st.Body, depth+1)
	case *SwitchStmt:
		b.WriteString("Switch\n")
		dumpExpr(b, st.Value, depth+1)
		for _, c := range st.Cases {
			indent(b, depth+1)
			b.WriteString("Case\n")
			dumpExpr(b, c.Value, depth+2)
			dumpBlock(b, c.Body, depth+2)
		}
		if st.Default != nil {
			indent(b, depth+1)
			b.WriteString("Default\n")
			dumpBlock(b, st.Default, depth+2)
		}
	case *ImportStmt:
		parts := make([]string, len(st.Names))
		for i, n := range st.Names {
			if st.Aliases[i] != "" {
				parts[i] = n + " As " + st.Aliases[i]
			} else {
				parts[i] = n
			}
		}
		fmt.Fprintf(b, "Import {%s} From %q\n", strings.Join(parts, ", "), st.Path)
	case *ExportStmt:
		fmt.Fprintf(b, "Export %s\n", st.Name)
	case *ThrowStmt:
		b.WriteString("Throw\n")
		dumpExpr(b, st.Value, depth+1)
	case *ExprStmt:
		b.WriteString("Expr\n")
		dumpExpr(b, st.X, depth+1)
	default:
		fmt.Fprintf(b, "%T\n", s)
	}
}

func dumpBlock(b *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		dumpStmt(b, s, depth)
	}
}

func dumpExpr(b *strings.Builder, e Expr, depth int) {
	indent(b, depth)
	switch ex := e.(type) {
	case *NumberLit:
		fmt.Fprintf(b, "Number %v\n", ex.Value)
	case *BigIntLit:
		fmt.Fprintf(b, "BigInteger %s\n", ex.Digits)
	case *StringLit:
		fmt.Fprintf(b, "String %q\n", ex.Value)
	case *BoolLit:
		fmt.Fprintf(b, "Boolean %v\n", ex.Value)
	case *NullLit:
		b.WriteString("Null\n")
	case *Ident:
		fmt.Fprintf(b, "Ident %s\n", ex.Name)
	case *ArrayLit:
		b.WriteString("Array\n")
		for _, el := range ex.Elems {
			dumpExpr(b, el, depth+1)
		}
	case *DictLit:
		b.WriteString("Dict\n")
		for _, entry := range ex.Entries {
			indent(b, depth+1)
			fmt.Fprintf(b, "%q:\n", entry.Key)
			dumpExpr(b, entry.Value, depth+2)
		}
	case *BinaryExpr:
		fmt.Fprintf(b, "Binary %s\n", ex.Op)
		dumpExpr(b, ex.Left, depth+1)
		dumpExpr(b, ex.Right, depth+1)
	case *UnaryExpr:
		fmt.Fprintf(b, "Unary %s\n", ex.Op)
		dumpExpr(b, ex.X, depth+1)
	case *CallExpr:
		b.WriteString("Call\n")
		dumpExpr(b, ex.Func, depth+1)
		for _, a := range ex.Args {
			dumpExpr(b, a, depth+1)
		}
	case *IndexExpr:
		b.WriteString("Index\n")
		dumpExpr(b, ex.Object, depth+1)
		dumpExpr(b, ex.Index, depth+1)
	case *IfExpr:
		b.WriteString("If\n")
		dumpExpr(b, ex.Cond, depth+1)
		dumpBlock(b, ex.Then, depth+1)
		for _, el := range ex.Elifs {
			indent(b, depth+1)
			b.WriteString("Elif\n")
			dumpExpr(b, el.Cond, depth+2)
			dumpBlock(b, el.Body, depth+2)
		}
		if ex.Else != nil {
			indent(b, depth+1)
			b.WriteString("Else\n")
			dumpBlock(b, ex.Else, depth+2)
		}
	case *LambdaExpr:
		fmt.Fprintf(b, "Lambda (%s)\n", strings.Join(ex.Params, ", "))
		dumpBlock(b, ex.Body, depth+1)
	default:
		fmt.Fprintf(b, "%T\n", e)
	}
}
