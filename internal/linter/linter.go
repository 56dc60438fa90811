package linter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lhaig/icss/internal/ast"
	"github.com/lhaig/icss/internal/diagnostic"
)

// Linter performs style checks on a parsed ICSS tree.
// It reports warnings (never errors) using the diagnostic system.
type Linter struct {
	tree *ast.Tree
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on the given tree and returns diagnostics.
func Lint(tree *ast.Tree) *diagnostic.Diagnostics {
	l := &Linter{
		tree: tree,
		diag: diagnostic.New(),
	}

	sheet := tree.Stylesheet()
	if sheet == nil {
		return l.diag
	}

	usedNames := l.collectUsedNames()
	l.lintBody(sheet.Body, usedNames)

	return l.diag
}

// lintBody checks one node list and recurses into nested bodies.
func (l *Linter) lintBody(body []ast.NodeID, usedNames map[string]bool) {
	l.checkDuplicateProperties(body)

	for _, id := range body {
		switch n := l.tree.Node(id).(type) {
		case *ast.VariableAssignment:
			l.checkVariableNaming(n)
			l.checkUnusedVariable(n, usedNames)

		case *ast.Stylerule:
			l.checkEmptyStylerule(n)
			l.lintBody(n.Body, usedNames)

		case *ast.IfClause:
			l.checkLiteralCondition(n)
			l.lintBody(n.Body, usedNames)
			if elseC, ok := l.tree.Node(n.Else).(*ast.ElseClause); ok {
				l.lintBody(elseC.Body, usedNames)
			}
		}
	}
}

// --- Lint rules ---

// checkEmptyStylerule warns if a stylerule has no body.
func (l *Linter) checkEmptyStylerule(rule *ast.Stylerule) {
	if len(rule.Body) > 0 {
		return
	}
	l.diag.Warningf(rule.Line, rule.Column,
		"stylerule '%s' has an empty body", l.selectorText(rule))
}

// checkVariableNaming warns if a variable name does not start with an upper-case letter.
func (l *Linter) checkVariableNaming(va *ast.VariableAssignment) {
	name := l.variableName(va)
	if name == "" || isCapitalized(name) {
		return
	}
	l.diag.Warningf(va.Line, va.Column,
		"variable '%s' should start with an upper-case letter", name)
}

// checkUnusedVariable warns about variables that are assigned but never referenced.
func (l *Linter) checkUnusedVariable(va *ast.VariableAssignment, usedNames map[string]bool) {
	name := l.variableName(va)
	if name == "" || usedNames[name] {
		return
	}
	l.diag.Warningf(va.Line, va.Column,
		"variable '%s' is assigned but never used", name)
}

// checkDuplicateProperties warns about a property declared more than once in the same body.
// Declarations inside if-branches belong to their own body.
func (l *Linter) checkDuplicateProperties(body []ast.NodeID) {
	seen := make(map[string]bool)
	for _, id := range body {
		decl, ok := l.tree.Node(id).(*ast.Declaration)
		if !ok {
			continue
		}
		prop, ok := l.tree.Node(decl.Property).(*ast.PropertyName)
		if !ok {
			continue
		}
		key := strings.ToLower(prop.Name)
		if seen[key] {
			l.diag.Warningf(decl.Line, decl.Column,
				"property '%s' is declared more than once in the same body", prop.Name)
		}
		seen[key] = true
	}
}

// checkLiteralCondition warns if an if condition is a boolean literal.
func (l *Linter) checkLiteralCondition(ifc *ast.IfClause) {
	lit, ok := l.tree.Node(ifc.Cond).(*ast.BoolLiteral)
	if !ok {
		return
	}
	l.diag.Warningf(ifc.Line, ifc.Column,
		"if condition is always %s", ast.FormatLiteral(lit))
}

// collectUsedNames returns every variable name read anywhere in the tree.
// Assignment targets are not reads.
func (l *Linter) collectUsedNames() map[string]bool {
	used := make(map[string]bool)
	targets := make(map[ast.NodeID]bool)

	l.tree.Walk(l.tree.Root, func(id ast.NodeID, n ast.Node) bool {
		switch n := n.(type) {
		case *ast.VariableAssignment:
			targets[n.Name] = true
		case *ast.VariableReference:
			if !targets[id] {
				used[n.Name] = true
			}
		}
		return true
	})
	return used
}

func (l *Linter) variableName(va *ast.VariableAssignment) string {
	if ref, ok := l.tree.Node(va.Name).(*ast.VariableReference); ok {
		return ref.Name
	}
	return ""
}

func (l *Linter) selectorText(rule *ast.Stylerule) string {
	var parts []string
	for _, id := range rule.Selectors {
		if sel, ok := l.tree.Node(id).(*ast.Selector); ok {
			parts = append(parts, sel.Text)
		}
	}
	return strings.Join(parts, ", ")
}

// isCapitalized returns true if the name starts with an uppercase letter.
func isCapitalized(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
