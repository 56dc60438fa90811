package generator

import (
	"fmt"
	"strings"

	"github.com/lhaig/icss/internal/ast"
)

// Validate checks that a tree is in emission shape and returns a list of error messages.
// An empty slice indicates the tree can be generated.
func Validate(tree *ast.Tree) []string {
	var errors []string

	sheet := tree.Stylesheet()
	if sheet == nil {
		return []string{"tree root is not a Stylesheet"}
	}

	for _, id := range sheet.Body {
		rule, ok := tree.Node(id).(*ast.Stylerule)
		if !ok {
			errors = append(errors, describe(tree, id, "top-level node must be a Stylerule, got %s", nodeName(tree.Node(id))))
			continue
		}
		errors = append(errors, validateStylerule(tree, id, rule)...)
	}

	// evaluated trees may still hold annotated nodes when errors were ignored
	tree.Walk(tree.Root, func(id ast.NodeID, n ast.Node) bool {
		if d := tree.DiagnosticOf(id); d != nil {
			errors = append(errors, describe(tree, id, "%s carries a diagnostic: %s", nodeName(n), d.Message))
		}
		return true
	})

	return errors
}

func validateStylerule(tree *ast.Tree, id ast.NodeID, rule *ast.Stylerule) []string {
	var errors []string

	if len(rule.Selectors) == 0 {
		errors = append(errors, describe(tree, id, "stylerule has no selectors"))
	}
	for _, sel := range rule.Selectors {
		if _, ok := tree.Node(sel).(*ast.Selector); !ok {
			errors = append(errors, describe(tree, id, "stylerule selector must be a Selector, got %s", nodeName(tree.Node(sel))))
		}
	}

	for _, child := range rule.Body {
		decl, ok := tree.Node(child).(*ast.Declaration)
		if !ok {
			errors = append(errors, describe(tree, child, "stylerule body may only hold declarations, got %s", nodeName(tree.Node(child))))
			continue
		}
		errors = append(errors, validateDeclaration(tree, child, decl)...)
	}
	return errors
}

func validateDeclaration(tree *ast.Tree, id ast.NodeID, decl *ast.Declaration) []string {
	var errors []string

	name := "?"
	if prop, ok := tree.Node(decl.Property).(*ast.PropertyName); ok {
		name = prop.Name
	} else {
		errors = append(errors, describe(tree, id, "declaration has no property name"))
	}
	if _, ok := tree.Node(decl.Expr).(ast.Literal); !ok {
		errors = append(errors, describe(tree, id, "declaration '%s' has unfolded expression %s", name, nodeName(tree.Node(decl.Expr))))
	}
	return errors
}

// describe prefixes a message with the node's position
func describe(tree *ast.Tree, id ast.NodeID, format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	n := tree.Node(id)
	if n == nil {
		return msg
	}
	line, col := n.Pos()
	return fmt.Sprintf("%d:%d: %s", line, col, msg)
}

func nodeName(n ast.Node) string {
	if n == nil {
		return "nothing"
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
