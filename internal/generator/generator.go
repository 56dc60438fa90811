// Package generator emits CSS text from an evaluated ICSS tree.
package generator

import (
	"fmt"
	"strings"

	"github.com/lhaig/icss/internal/ast"
)

// Generate renders every top-level stylerule of an evaluated tree as CSS.
// The tree is validated first; a tree that is not in emission shape yields an error.
func Generate(tree *ast.Tree) (string, error) {
	if errs := Validate(tree); len(errs) > 0 {
		return "", fmt.Errorf("cannot generate CSS:\n  %s", strings.Join(errs, "\n  "))
	}

	g := &generator{tree: tree}
	for i, id := range tree.Stylesheet().Body {
		if i > 0 {
			g.emitLine("")
		}
		g.generateStylerule(tree.Node(id).(*ast.Stylerule))
	}
	return g.sb.String(), nil
}

type generator struct {
	tree *ast.Tree
	sb   strings.Builder
}

func (g *generator) emit(s string) {
	g.sb.WriteString(s)
}

func (g *generator) emitLine(s string) {
	g.sb.WriteString(s)
	g.sb.WriteString("\n")
}

func (g *generator) generateStylerule(rule *ast.Stylerule) {
	selectors := make([]string, 0, len(rule.Selectors))
	for _, id := range rule.Selectors {
		selectors = append(selectors, g.tree.Node(id).(*ast.Selector).Text)
	}
	g.emitLine(strings.Join(selectors, ", ") + " {")

	for _, id := range rule.Body {
		g.generateDeclaration(g.tree.Node(id).(*ast.Declaration))
	}
	g.emitLine("}")
}

func (g *generator) generateDeclaration(decl *ast.Declaration) {
	prop := g.tree.Node(decl.Property).(*ast.PropertyName)
	lit := g.tree.Node(decl.Expr).(ast.Literal)
	g.emit("  ")
	g.emitLine(prop.Name + ": " + ast.FormatLiteral(lit) + ";")
}
