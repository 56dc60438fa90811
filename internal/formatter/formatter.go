package formatter

import (
	"fmt"
	"strings"

	"github.com/lhaig/icss/internal/ast"
)

// Format takes a parsed tree and returns canonical ICSS source code.
// Top-level items keep their order, since an assignment is only visible after it.
func Format(tree *ast.Tree) string {
	f := &formatter{tree: tree}
	if sheet := tree.Stylesheet(); sheet != nil {
		f.formatStylesheet(sheet)
	}
	return f.sb.String()
}

type formatter struct {
	tree   *ast.Tree
	sb     strings.Builder
	indent int
}

// --- helpers (same pattern as the generator) ---

func (f *formatter) emitLine(s string) {
	if s == "" {
		f.sb.WriteString("\n")
	} else {
		f.sb.WriteString(f.indentStr())
		f.sb.WriteString(s)
		f.sb.WriteString("\n")
	}
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(fmt.Sprintf(format, args...))
	f.sb.WriteString("\n")
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

func (f *formatter) blankLine() {
	f.sb.WriteString("\n")
}

// --- stylesheet-level ---

// formatStylesheet separates top-level items by a blank line,
// except that runs of assignments stay together
func (f *formatter) formatStylesheet(sheet *ast.Stylesheet) {
	prevAssign := false
	for i, id := range sheet.Body {
		_, isAssign := f.tree.Node(id).(*ast.VariableAssignment)
		if i > 0 && !(isAssign && prevAssign) {
			f.blankLine()
		}
		f.formatNode(id)
		prevAssign = isAssign
	}
}

func (f *formatter) formatNode(id ast.NodeID) {
	switch n := f.tree.Node(id).(type) {
	case *ast.Stylerule:
		f.formatStylerule(n)
	case *ast.Declaration:
		f.formatDeclaration(n)
	case *ast.VariableAssignment:
		f.formatVariableAssignment(n)
	case *ast.IfClause:
		f.formatIfClause(n)
	}
}

func (f *formatter) formatStylerule(rule *ast.Stylerule) {
	selectors := make([]string, 0, len(rule.Selectors))
	for _, id := range rule.Selectors {
		if sel, ok := f.tree.Node(id).(*ast.Selector); ok {
			selectors = append(selectors, sel.Text)
		}
	}
	f.emitLinef("%s {", strings.Join(selectors, ", "))
	f.formatBody(rule.Body)
	f.emitLine("}")
}

func (f *formatter) formatBody(body []ast.NodeID) {
	f.incIndent()
	for _, id := range body {
		f.formatNode(id)
	}
	f.decIndent()
}

func (f *formatter) formatDeclaration(decl *ast.Declaration) {
	name := ""
	if prop, ok := f.tree.Node(decl.Property).(*ast.PropertyName); ok {
		name = prop.Name
	}
	f.emitLinef("%s: %s;", name, f.formatExpr(decl.Expr))
}

func (f *formatter) formatVariableAssignment(va *ast.VariableAssignment) {
	f.emitLinef("%s := %s;", f.formatExpr(va.Name), f.formatExpr(va.Expr))
}

func (f *formatter) formatIfClause(ifc *ast.IfClause) {
	f.emitLinef("if [%s] {", f.formatExpr(ifc.Cond))
	f.formatBody(ifc.Body)
	if elseC, ok := f.tree.Node(ifc.Else).(*ast.ElseClause); ok {
		f.emitLine("} else {")
		f.formatBody(elseC.Body)
	}
	f.emitLine("}")
}

// --- expressions ---

// formatExpr writes an expression without parentheses, which the grammar lacks.
// Parser output is always precedence shaped, so the text parses back to the same tree.
func (f *formatter) formatExpr(id ast.NodeID) string {
	switch expr := f.tree.Node(id).(type) {
	case *ast.AddOperation:
		return f.formatBinary(expr.LHS, "+", expr.RHS)
	case *ast.SubtractOperation:
		return f.formatBinary(expr.LHS, "-", expr.RHS)
	case *ast.MultiplyOperation:
		return f.formatBinary(expr.LHS, "*", expr.RHS)

	case *ast.VariableReference:
		return expr.Name

	case *ast.BoolLiteral:
		if expr.Value {
			return "TRUE"
		}
		return "FALSE"

	case ast.Literal:
		return ast.FormatLiteral(expr)

	default:
		return ""
	}
}

func (f *formatter) formatBinary(lhs ast.NodeID, op string, rhs ast.NodeID) string {
	return fmt.Sprintf("%s %s %s", f.formatExpr(lhs), op, f.formatExpr(rhs))
}
