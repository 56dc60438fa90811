package ast

import (
	"fmt"

	"github.com/lhaig/icss/internal/diagnostic"
)

// NodeID is a handle into a Tree's node arena
type NodeID int32

// NoNode marks an absent optional child
const NoNode NodeID = -1

// Meta carries the source position and the optional diagnostic of a node
type Meta struct {
	Line   int
	Column int
	Diag   *diagnostic.Diagnostic
}

func (m *Meta) Pos() (int, int) { return m.Line, m.Column }
func (m *Meta) meta() *Meta      { return m }

// Node is the closed set of ICSS node variants
type Node interface {
	Pos() (line, col int)
	meta() *Meta
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// LiteralKind enumerates the value kinds a literal can have
type LiteralKind int

const (
	PixelKind LiteralKind = iota
	PercentageKind
	ColorKind
	ScalarKind
	BoolKind
)

func (k LiteralKind) String() string {
	switch k {
	case PixelKind:
		return "Pixel"
	case PercentageKind:
		return "Percentage"
	case ColorKind:
		return "Color"
	case ScalarKind:
		return "Scalar"
	case BoolKind:
		return "Bool"
	default:
		return "unknown"
	}
}

// Literal is a terminal expression with a fixed value kind
type Literal interface {
	Expression
	LiteralKind() LiteralKind
}

// Stylesheet is the tree root
type Stylesheet struct {
	Meta
	Body []NodeID
}

// Stylerule is a selector list with a body of declarations, ifs and assignments
type Stylerule struct {
	Meta
	Selectors []NodeID
	Body      []NodeID
}

// SelectorKind distinguishes tag, class and id selectors
type SelectorKind int

const (
	TagSelector SelectorKind = iota
	ClassSelector
	IDSelector
)

// Selector is a single selector of a stylerule
type Selector struct {
	Meta
	Kind SelectorKind
	Text string
}

// NewSelector classifies text by its leading '.' or '#'
func NewSelector(text string, line, col int) *Selector {
	kind := TagSelector
	if len(text) > 0 {
		switch text[0] {
		case '.':
			kind = ClassSelector
		case '#':
			kind = IDSelector
		}
	}
	return &Selector{Meta: Meta{Line: line, Column: col}, Kind: kind, Text: text}
}

// Declaration is `property: expression;`
type Declaration struct {
	Meta
	Property NodeID
	Expr     NodeID
}

// PropertyName names the property of a declaration
type PropertyName struct {
	Meta
	Name string
}

// VariableAssignment is `Name := expression;`
type VariableAssignment struct {
	Meta
	Name NodeID // *VariableReference
	Expr NodeID
}

// IfClause is `if [cond] { body } else { ... }`
type IfClause struct {
	Meta
	Cond NodeID
	Body []NodeID
	Else NodeID // *ElseClause or NoNode
}

// ElseClause is the alternative body of an IfClause
type ElseClause struct {
	Meta
	Body []NodeID
}

type PixelLiteral struct {
	Meta
	Value int
}

type PercentageLiteral struct {
	Meta
	Value int
}

type ColorLiteral struct {
	Meta
	Value string
}

type ScalarLiteral struct {
	Meta
	Value int
}

type BoolLiteral struct {
	Meta
	Value bool
}

// VariableReference names a variable
type VariableReference struct {
	Meta
	Name string
}

type AddOperation struct {
	Meta
	LHS NodeID
	RHS NodeID
}

type SubtractOperation struct {
	Meta
	LHS NodeID
	RHS NodeID
}

type MultiplyOperation struct {
	Meta
	LHS NodeID
	RHS NodeID
}

func (*PixelLiteral) exprNode()      {}
func (*PercentageLiteral) exprNode() {}
func (*ColorLiteral) exprNode()      {}
func (*ScalarLiteral) exprNode()     {}
func (*BoolLiteral) exprNode()       {}
func (*VariableReference) exprNode() {}
func (*AddOperation) exprNode()      {}
func (*SubtractOperation) exprNode() {}
func (*MultiplyOperation) exprNode() {}

func (*PixelLiteral) LiteralKind() LiteralKind      { return PixelKind }
func (*PercentageLiteral) LiteralKind() LiteralKind { return PercentageKind }
func (*ColorLiteral) LiteralKind() LiteralKind      { return ColorKind }
func (*ScalarLiteral) LiteralKind() LiteralKind     { return ScalarKind }
func (*BoolLiteral) LiteralKind() LiteralKind       { return BoolKind }

// FormatLiteral returns the stylesheet text of a literal
func FormatLiteral(lit Literal) string {
	switch l := lit.(type) {
	case *PixelLiteral:
		return fmt.Sprintf("%dpx", l.Value)
	case *PercentageLiteral:
		return fmt.Sprintf("%d%%", l.Value)
	case *ColorLiteral:
		return l.Value
	case *ScalarLiteral:
		return fmt.Sprintf("%d", l.Value)
	case *BoolLiteral:
		if l.Value {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Tree owns every node of one compilation unit
type Tree struct {
	nodes []Node
	Root  NodeID
}

// NewTree creates a tree whose root is an empty Stylesheet
func NewTree() *Tree {
	t := &Tree{}
	t.Root = t.Add(&Stylesheet{Meta: Meta{Line: 1, Column: 1}})
	return t
}

// Add appends n to the arena and returns its handle
func (t *Tree) Add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// Node returns the node for id, or nil for NoNode and out-of-range handles
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Stylesheet returns the root node
func (t *Tree) Stylesheet() *Stylesheet {
	s, _ := t.Node(t.Root).(*Stylesheet)
	return s
}

// Len returns the arena size, reachable or not
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns the ordered child handles of id
func (t *Tree) Children(id NodeID) []NodeID {
	switch n := t.Node(id).(type) {
	case *Stylesheet:
		return n.Body
	case *Stylerule:
		out := make([]NodeID, 0, len(n.Selectors)+len(n.Body))
		out = append(out, n.Selectors...)
		return append(out, n.Body...)
	case *Declaration:
		return present(n.Property, n.Expr)
	case *VariableAssignment:
		return present(n.Name, n.Expr)
	case *IfClause:
		out := present(n.Cond)
		out = append(out, n.Body...)
		if n.Else != NoNode {
			out = append(out, n.Else)
		}
		return out
	case *ElseClause:
		return n.Body
	case *AddOperation:
		return present(n.LHS, n.RHS)
	case *SubtractOperation:
		return present(n.LHS, n.RHS)
	case *MultiplyOperation:
		return present(n.LHS, n.RHS)
	default:
		return nil
	}
}

func present(ids ...NodeID) []NodeID {
	out := make([]NodeID, 0, len(ids))
	for _, id := range ids {
		if id != NoNode {
			out = append(out, id)
		}
	}
	return out
}

// Walk visits the subtree rooted at id in pre-order.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID, Node) bool) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for _, child := range t.Children(id) {
		t.Walk(child, fn)
	}
}

// Annotate attaches a diagnostic to id. A node keeps its first diagnostic.
func (t *Tree) Annotate(id NodeID, kind diagnostic.Kind, format string, args ...interface{}) bool {
	n := t.Node(id)
	if n == nil {
		return false
	}
	m := n.meta()
	if m.Diag != nil {
		return false
	}
	m.Diag = &diagnostic.Diagnostic{
		Severity: diagnostic.Error,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Line:     m.Line,
		Column:   m.Column,
	}
	return true
}

// DiagnosticOf returns the diagnostic attached to id itself, if any
func (t *Tree) DiagnosticOf(id NodeID) *diagnostic.Diagnostic {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return n.meta().Diag
}

// HasDiagnostic reports whether any node in the subtree of id carries a diagnostic
func (t *Tree) HasDiagnostic(id NodeID) bool {
	found := false
	t.Walk(id, func(_ NodeID, n Node) bool {
		if n.meta().Diag != nil {
			found = true
		}
		return !found
	})
	return found
}

// Diagnostics collects every diagnostic reachable from the root, in pre-order
func (t *Tree) Diagnostics() *diagnostic.Diagnostics {
	diags := diagnostic.New()
	t.Walk(t.Root, func(_ NodeID, n Node) bool {
		if d := n.meta().Diag; d != nil {
			diags.Add(*d)
		}
		return true
	})
	return diags
}
