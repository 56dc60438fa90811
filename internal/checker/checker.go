package checker

import (
	"strings"

	"github.com/lhaig/icss/internal/ast"
	"github.com/lhaig/icss/internal/diagnostic"
	"github.com/lhaig/icss/internal/scope"
)

// Checker performs semantic analysis on an ICSS tree.
// It annotates offending nodes and never changes the tree's structure.
type Checker struct {
	tree  *ast.Tree
	scope *scope.Chain[Type]
}

// Check performs semantic analysis and returns every diagnostic in tree pre-order
func Check(tree *ast.Tree) *diagnostic.Diagnostics {
	c := &Checker{
		tree:  tree,
		scope: scope.New[Type](),
	}

	if sheet := tree.Stylesheet(); sheet != nil {
		c.checkStylesheet(sheet)
	}

	return tree.Diagnostics()
}

// checkStylesheet checks the top-level list in the global frame
func (c *Checker) checkStylesheet(sheet *ast.Stylesheet) {
	for _, id := range sheet.Body {
		if _, ok := c.tree.Node(id).(*ast.IfClause); ok {
			c.tree.Annotate(id, diagnostic.MisplacedConditional,
				"if-expressions are only allowed inside style rules")
			continue
		}
		c.checkNode(id)
	}
}

// checkBody checks a rule, if or else body in its own frame
func (c *Checker) checkBody(body []ast.NodeID) {
	c.scope.Scoped(func() {
		for _, id := range body {
			c.checkNode(id)
		}
	})
}

func (c *Checker) checkNode(id ast.NodeID) {
	switch n := c.tree.Node(id).(type) {
	case *ast.VariableAssignment:
		c.checkVariableAssignment(id, n)
	case *ast.Stylerule:
		c.checkBody(n.Body)
	case *ast.Declaration:
		c.checkDeclaration(id, n)
	case *ast.IfClause:
		c.checkIfClause(id, n)
	}
}

// checkIfClause checks the guard and both branches, each in its own frame
func (c *Checker) checkIfClause(id ast.NodeID, ifc *ast.IfClause) {
	condType := c.inferType(ifc.Cond)
	if condType != TypeBool {
		c.tree.Annotate(id, diagnostic.TypeMismatch,
			"if condition must be Bool, got %s", condType)
	}

	c.checkBody(ifc.Body)

	if elseC, ok := c.tree.Node(ifc.Else).(*ast.ElseClause); ok {
		c.checkBody(elseC.Body)
	}
}

// checkVariableAssignment binds the inferred type in the innermost frame
func (c *Checker) checkVariableAssignment(id ast.NodeID, va *ast.VariableAssignment) {
	name := ""
	if ref, ok := c.tree.Node(va.Name).(*ast.VariableReference); ok {
		name = ref.Name
	}

	t := c.inferType(va.Expr)
	if t == TypeUndefined {
		c.tree.Annotate(id, diagnostic.TypeMismatch,
			"cannot infer a type for variable '%s'", name)
	}

	if name != "" {
		c.scope.Define(name, t)
	}
}

// checkDeclaration enforces the property allow-list
func (c *Checker) checkDeclaration(id ast.NodeID, decl *ast.Declaration) {
	propName := ""
	if prop, ok := c.tree.Node(decl.Property).(*ast.PropertyName); ok {
		propName = prop.Name
	}

	t := c.inferType(decl.Expr)
	if t == TypeUndefined {
		c.tree.Annotate(id, diagnostic.TypeMismatch,
			"undefined expression in declaration '%s'", propName)
		return
	}

	rule, ok := allowedProperties[strings.ToLower(propName)]
	if !ok {
		c.tree.Annotate(id, diagnostic.DisallowedProperty,
			"property '%s' is not allowed", propName)
		return
	}
	if !rule.accepts(t) {
		c.tree.Annotate(id, diagnostic.TypeMismatch,
			"property '%s' requires %s, got %s", propName, rule.requires, t)
	}
}

// inferType computes the type of an expression bottom-up
func (c *Checker) inferType(id ast.NodeID) Type {
	switch n := c.tree.Node(id).(type) {
	case ast.Literal:
		return typeOfLiteral(n.LiteralKind())

	case *ast.VariableReference:
		t, ok := c.scope.Lookup(n.Name)
		if !ok {
			c.tree.Annotate(id, diagnostic.UndefinedVariable, "undefined variable '%s'", n.Name)
			return TypeUndefined
		}
		return t

	case *ast.AddOperation:
		return c.inferAdditive(n.LHS, n.RHS)

	case *ast.SubtractOperation:
		return c.inferAdditive(n.LHS, n.RHS)

	case *ast.MultiplyOperation:
		return c.inferMultiply(id, n)

	default:
		return TypeUndefined
	}
}

// inferAdditive types `+` and `-`: both sides must agree
func (c *Checker) inferAdditive(lhs, rhs ast.NodeID) Type {
	left := c.inferType(lhs)
	right := c.inferType(rhs)
	if left == TypeUndefined || right == TypeUndefined {
		return TypeUndefined
	}
	if left == right {
		return left
	}
	return TypeUndefined
}

// inferMultiply types `*`: at least one side must be a scalar
func (c *Checker) inferMultiply(id ast.NodeID, op *ast.MultiplyOperation) Type {
	left := c.inferType(op.LHS)
	right := c.inferType(op.RHS)
	if left == TypeUndefined || right == TypeUndefined {
		return TypeUndefined
	}

	switch {
	case left == TypeScalar && right == TypePixel, left == TypePixel && right == TypeScalar:
		return TypePixel
	case left == TypeScalar && right == TypeScalar:
		return TypeScalar
	case left == TypePixel && right == TypePixel:
		c.tree.Annotate(id, diagnostic.IllegalOperandCombination,
			"cannot multiply Pixel by Pixel")
	}
	return TypeUndefined
}
