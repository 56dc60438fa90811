package evaluator

import "github.com/lhaig/icss/internal/ast"

// Value is a folded literal: the payload of an evaluator scope frame
type Value struct {
	Kind  ast.LiteralKind
	Int   int    // Pixel, Percentage, Scalar
	Color string // Color
	Bool  bool   // Bool
}

func valueOf(lit ast.Literal) Value {
	switch l := lit.(type) {
	case *ast.PixelLiteral:
		return Value{Kind: ast.PixelKind, Int: l.Value}
	case *ast.PercentageLiteral:
		return Value{Kind: ast.PercentageKind, Int: l.Value}
	case *ast.ScalarLiteral:
		return Value{Kind: ast.ScalarKind, Int: l.Value}
	case *ast.ColorLiteral:
		return Value{Kind: ast.ColorKind, Color: l.Value}
	default:
		b, _ := lit.(*ast.BoolLiteral)
		return Value{Kind: ast.BoolKind, Bool: b != nil && b.Value}
	}
}

// Literal builds a fresh literal node positioned at line:col
func (v Value) Literal(line, col int) ast.Literal {
	meta := ast.Meta{Line: line, Column: col}
	switch v.Kind {
	case ast.PixelKind:
		return &ast.PixelLiteral{Meta: meta, Value: v.Int}
	case ast.PercentageKind:
		return &ast.PercentageLiteral{Meta: meta, Value: v.Int}
	case ast.ScalarKind:
		return &ast.ScalarLiteral{Meta: meta, Value: v.Int}
	case ast.ColorKind:
		return &ast.ColorLiteral{Meta: meta, Value: v.Color}
	default:
		return &ast.BoolLiteral{Meta: meta, Value: v.Bool}
	}
}

// String returns the stylesheet text of the value
func (v Value) String() string {
	return ast.FormatLiteral(v.Literal(0, 0))
}

// numeric reports whether v takes part in + and -
func (v Value) numeric() bool {
	return v.Kind == ast.PixelKind || v.Kind == ast.ScalarKind || v.Kind == ast.PercentageKind
}

func add(a, b Value) (Value, bool) {
	if !a.numeric() || a.Kind != b.Kind {
		return Value{}, false
	}
	return Value{Kind: a.Kind, Int: a.Int + b.Int}, true
}

func subtract(a, b Value) (Value, bool) {
	if !a.numeric() || a.Kind != b.Kind {
		return Value{}, false
	}
	return Value{Kind: a.Kind, Int: a.Int - b.Int}, true
}

func multiply(a, b Value) (Value, bool) {
	switch {
	case a.Kind == ast.ScalarKind && b.Kind == ast.PixelKind,
		a.Kind == ast.PixelKind && b.Kind == ast.ScalarKind:
		return Value{Kind: ast.PixelKind, Int: a.Int * b.Int}, true
	case a.Kind == ast.ScalarKind && b.Kind == ast.ScalarKind:
		return Value{Kind: ast.ScalarKind, Int: a.Int * b.Int}, true
	}
	return Value{}, false
}
