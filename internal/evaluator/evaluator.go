// Package evaluator folds constant expressions and removes what a stylesheet
// cannot contain: variable assignments are dropped once recorded and
// conditionals are replaced by the branch their guard selects.
//
// After Apply, no VariableAssignment, IfClause or ElseClause is reachable from
// the root, and every declaration's expression is a literal unless the
// declaration (or something under it) carries a diagnostic.
package evaluator

import (
	"github.com/lhaig/icss/internal/ast"
	"github.com/lhaig/icss/internal/scope"
)

// Evaluator rewrites a tree in place
type Evaluator struct {
	tree  *ast.Tree
	scope *scope.Chain[*Value]
}

// Apply evaluates the tree in place. Running it again on its own output changes nothing.
func Apply(tree *ast.Tree) {
	sheet := tree.Stylesheet()
	if sheet == nil {
		return
	}

	e := &Evaluator{
		tree:  tree,
		scope: scope.New[*Value](),
	}
	sheet.Body = e.evalBody(sheet.Body, true)
}

// evalBody processes a node list left to right and returns its replacement
func (e *Evaluator) evalBody(body []ast.NodeID, topLevel bool) []ast.NodeID {
	out := make([]ast.NodeID, 0, len(body))

	for _, id := range body {
		switch n := e.tree.Node(id).(type) {
		case *ast.VariableAssignment:
			e.evalVariableAssignment(id, n)

		case *ast.Declaration:
			e.evalDeclaration(id, n)
			out = append(out, id)

		case *ast.Stylerule:
			e.scope.Scoped(func() {
				n.Body = e.evalBody(n.Body, false)
			})
			out = append(out, id)

		case *ast.IfClause:
			// if-expressions belong inside style rules; a top-level one is dropped
			if topLevel {
				continue
			}
			out = append(out, e.evalIfClause(id, n)...)

		case *ast.ElseClause:
			// only reachable through its IfClause

		default:
			out = append(out, id)
		}
	}
	return out
}

// evalVariableAssignment records the folded value in the innermost frame.
// A binding that does not fold is recorded as nil so it still hides any
// outer binding of the same name.
func (e *Evaluator) evalVariableAssignment(id ast.NodeID, va *ast.VariableAssignment) {
	ref, ok := e.tree.Node(va.Name).(*ast.VariableReference)
	if !ok {
		return
	}
	if e.tree.HasDiagnostic(id) {
		e.scope.Define(ref.Name, nil)
		return
	}
	if v, ok := e.fold(va.Expr); ok {
		e.scope.Define(ref.Name, &v)
		return
	}
	e.scope.Define(ref.Name, nil)
}

// evalDeclaration replaces the expression by its folded literal
func (e *Evaluator) evalDeclaration(id ast.NodeID, decl *ast.Declaration) {
	if e.tree.HasDiagnostic(id) {
		return
	}
	expr := e.tree.Node(decl.Expr)
	if _, ok := expr.(ast.Literal); ok || expr == nil {
		return
	}

	v, ok := e.fold(decl.Expr)
	if !ok {
		return
	}
	line, col := expr.Pos()
	decl.Expr = e.tree.Add(v.Literal(line, col))
}

// evalIfClause evaluates the selected branch in its own frame and returns
// the nodes to splice in place of the clause
func (e *Evaluator) evalIfClause(id ast.NodeID, ifc *ast.IfClause) []ast.NodeID {
	var branch []ast.NodeID
	if e.guard(id, ifc) {
		branch = ifc.Body
	} else if elseC, ok := e.tree.Node(ifc.Else).(*ast.ElseClause); ok {
		branch = elseC.Body
	}
	if len(branch) == 0 {
		return nil
	}

	var spliced []ast.NodeID
	e.scope.Scoped(func() {
		spliced = e.evalBody(branch, false)
	})
	return spliced
}

// guard folds the condition; anything but a literal true counts as false
func (e *Evaluator) guard(id ast.NodeID, ifc *ast.IfClause) bool {
	if e.tree.DiagnosticOf(id) != nil || e.tree.HasDiagnostic(ifc.Cond) {
		return false
	}
	v, ok := e.fold(ifc.Cond)
	return ok && v.Kind == ast.BoolKind && v.Bool
}

// fold computes the value of an expression, reporting false when it cannot
func (e *Evaluator) fold(id ast.NodeID) (Value, bool) {
	switch n := e.tree.Node(id).(type) {
	case ast.Literal:
		return valueOf(n), true

	case *ast.VariableReference:
		v, ok := e.scope.Lookup(n.Name)
		if !ok || v == nil {
			return Value{}, false
		}
		return *v, true

	case *ast.AddOperation:
		a, b, ok := e.foldOperands(n.LHS, n.RHS)
		if !ok {
			return Value{}, false
		}
		return add(a, b)

	case *ast.SubtractOperation:
		a, b, ok := e.foldOperands(n.LHS, n.RHS)
		if !ok {
			return Value{}, false
		}
		return subtract(a, b)

	case *ast.MultiplyOperation:
		a, b, ok := e.foldOperands(n.LHS, n.RHS)
		if !ok {
			return Value{}, false
		}
		return multiply(a, b)

	default:
		return Value{}, false
	}
}

func (e *Evaluator) foldOperands(lhs, rhs ast.NodeID) (Value, Value, bool) {
	a, ok := e.fold(lhs)
	if !ok {
		return Value{}, Value{}, false
	}
	b, ok := e.fold(rhs)
	if !ok {
		return Value{}, Value{}, false
	}
	return a, b, true
}
