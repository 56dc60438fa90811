package checker

import "github.com/lhaig/icss/internal/ast"

// Type is an inferred ICSS expression type
type Type int

const (
	TypeUndefined Type = iota
	TypePixel
	TypePercentage
	TypeColor
	TypeScalar
	TypeBool
)

// String returns the string representation of the type
func (t Type) String() string {
	switch t {
	case TypePixel:
		return "Pixel"
	case TypePercentage:
		return "Percentage"
	case TypeColor:
		return "Color"
	case TypeScalar:
		return "Scalar"
	case TypeBool:
		return "Bool"
	default:
		return "Undefined"
	}
}

// typeOfLiteral maps a literal kind to its fixed type
func typeOfLiteral(kind ast.LiteralKind) Type {
	switch kind {
	case ast.PixelKind:
		return TypePixel
	case ast.PercentageKind:
		return TypePercentage
	case ast.ColorKind:
		return TypeColor
	case ast.ScalarKind:
		return TypeScalar
	case ast.BoolKind:
		return TypeBool
	default:
		return TypeUndefined
	}
}

// propertyRule lists the types a property accepts
type propertyRule struct {
	allowed  []Type
	requires string // human description used in diagnostics
}

// allowedProperties is keyed by lower-cased property name
var allowedProperties = map[string]propertyRule{
	"color":            {allowed: []Type{TypeColor}, requires: "a color value (hex #rrggbb)"},
	"background-color": {allowed: []Type{TypeColor}, requires: "a color value (hex #rrggbb)"},
	"width":            {allowed: []Type{TypePixel, TypePercentage}, requires: "a size in pixels (px) or percentage (%)"},
	"height":           {allowed: []Type{TypePixel, TypePercentage}, requires: "a size in pixels (px) or percentage (%)"},
}

func (r propertyRule) accepts(t Type) bool {
	for _, a := range r.allowed {
		if a == t {
			return true
		}
	}
	return false
}
