package parser

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"github.com/lhaig/icss/internal/ast"
)

func parse(t *testing.T, input string) *ast.Tree {
	t.Helper()
	p := New(input)
	tree := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %s", p.Diagnostics().Format("test"))
	}
	return tree
}

func TestParseStylerule(t *testing.T) {
	input := `a, .Menu, #Main {
  color: #ff0000;
  width: 10px;
}`
	tree := parse(t, input)
	sheet := tree.Stylesheet()
	if len(sheet.Body) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(sheet.Body))
	}

	rule, ok := tree.Node(sheet.Body[0]).(*ast.Stylerule)
	if !ok {
		t.Fatalf("expected *ast.Stylerule, got %T", tree.Node(sheet.Body[0]))
	}
	if len(rule.Selectors) != 3 {
		t.Fatalf("expected 3 selectors, got %d", len(rule.Selectors))
	}

	wantSel := []struct {
		text string
		kind ast.SelectorKind
	}{
		{"a", ast.TagSelector},
		{".menu", ast.ClassSelector},
		{"#main", ast.IDSelector},
	}
	for i, want := range wantSel {
		sel := tree.Node(rule.Selectors[i]).(*ast.Selector)
		if sel.Text != want.text || sel.Kind != want.kind {
			t.Errorf("selector[%d] = %q/%d, want %q/%d", i, sel.Text, sel.Kind, want.text, want.kind)
		}
	}

	if len(rule.Body) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(rule.Body))
	}
	decl := tree.Node(rule.Body[1]).(*ast.Declaration)
	prop := tree.Node(decl.Property).(*ast.PropertyName)
	if prop.Name != "width" {
		t.Errorf("expected property 'width', got %q", prop.Name)
	}
	px, ok := tree.Node(decl.Expr).(*ast.PixelLiteral)
	if !ok || px.Value != 10 {
		t.Errorf("expected 10px, got %s", pretty.Sprintf("%# v", tree.Node(decl.Expr)))
	}
	if line, col := decl.Pos(); line != 3 || col != 3 {
		t.Errorf("expected declaration at 3:3, got %d:%d", line, col)
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"10px", "PixelLiteral: 10px"},
		{"25%", "PercentageLiteral: 25%"},
		{"4", "ScalarLiteral: 4"},
		{"#00ff00", "ColorLiteral: #00ff00"},
		{"TRUE", "BoolLiteral: true"},
		{"FALSE", "BoolLiteral: false"},
		{"true", "BoolLiteral: true"},
		{"False", "BoolLiteral: false"},
		{"Width", "VariableReference: Width"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			tree := parse(t, "X := "+tt.expr+";")
			va := tree.Node(tree.Stylesheet().Body[0]).(*ast.VariableAssignment)
			got := strings.TrimSpace(ast.Print(tree, va.Expr))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tree := parse(t, "p { width: 1px + 2 * 3px - 4px; }")
	rule := tree.Node(tree.Stylesheet().Body[0]).(*ast.Stylerule)
	decl := tree.Node(rule.Body[0]).(*ast.Declaration)

	got := strings.Split(strings.TrimRight(ast.Print(tree, decl.Expr), "\n"), "\n")
	want := []string{
		"SubtractOperation",
		"  AddOperation",
		"    PixelLiteral: 1px",
		"    MultiplyOperation",
		"      ScalarLiteral: 2",
		"      PixelLiteral: 3px",
		"  PixelLiteral: 4px",
	}
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Errorf("unexpected tree shape:\n%s", strings.Join(diff, "\n"))
	}
}

func TestParseLeftAssociativeMultiply(t *testing.T) {
	tree := parse(t, "p { width: 2 * 3 * 4px; }")
	rule := tree.Node(tree.Stylesheet().Body[0]).(*ast.Stylerule)
	decl := tree.Node(rule.Body[0]).(*ast.Declaration)

	outer, ok := tree.Node(decl.Expr).(*ast.MultiplyOperation)
	if !ok {
		t.Fatalf("expected MultiplyOperation, got %T", tree.Node(decl.Expr))
	}
	if _, ok := tree.Node(outer.LHS).(*ast.MultiplyOperation); !ok {
		t.Errorf("expected left operand to be a MultiplyOperation, got %T", tree.Node(outer.LHS))
	}
	if _, ok := tree.Node(outer.RHS).(*ast.PixelLiteral); !ok {
		t.Errorf("expected right operand to be a PixelLiteral, got %T", tree.Node(outer.RHS))
	}
}

func TestParseIfElse(t *testing.T) {
	input := `p {
  if [UseDark] {
    color: #000000;
    Inner := 1;
  } else {
    color: #ffffff;
  }
}`
	tree := parse(t, input)
	rule := tree.Node(tree.Stylesheet().Body[0]).(*ast.Stylerule)
	ifc, ok := tree.Node(rule.Body[0]).(*ast.IfClause)
	if !ok {
		t.Fatalf("expected IfClause, got %T", tree.Node(rule.Body[0]))
	}
	if ref, ok := tree.Node(ifc.Cond).(*ast.VariableReference); !ok || ref.Name != "UseDark" {
		t.Errorf("unexpected condition: %s", pretty.Sprintf("%# v", tree.Node(ifc.Cond)))
	}
	if len(ifc.Body) != 2 {
		t.Errorf("expected 2 nodes in if-body, got %d", len(ifc.Body))
	}
	if _, ok := tree.Node(ifc.Body[1]).(*ast.VariableAssignment); !ok {
		t.Errorf("expected assignment in if-body, got %T", tree.Node(ifc.Body[1]))
	}
	elseC, ok := tree.Node(ifc.Else).(*ast.ElseClause)
	if !ok {
		t.Fatalf("expected ElseClause, got %T", tree.Node(ifc.Else))
	}
	if len(elseC.Body) != 1 {
		t.Errorf("expected 1 node in else-body, got %d", len(elseC.Body))
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	tree := parse(t, "p { if [TRUE] { width: 1px; } }")
	rule := tree.Node(tree.Stylesheet().Body[0]).(*ast.Stylerule)
	ifc := tree.Node(rule.Body[0]).(*ast.IfClause)
	if ifc.Else != ast.NoNode {
		t.Errorf("expected no else clause, got %d", ifc.Else)
	}
}

func TestParseTopLevelIfAndAssignments(t *testing.T) {
	input := `Size := 10px;
lower := 5px;
if [TRUE] { width: Size; }
p { width: Size; }`
	tree := parse(t, input)
	body := tree.Stylesheet().Body
	if len(body) != 4 {
		t.Fatalf("expected 4 top-level nodes, got %d", len(body))
	}
	if _, ok := tree.Node(body[1]).(*ast.VariableAssignment); !ok {
		t.Errorf("expected lower-case assignment, got %T", tree.Node(body[1]))
	}
	if _, ok := tree.Node(body[2]).(*ast.IfClause); !ok {
		t.Errorf("expected top-level IfClause, got %T", tree.Node(body[2]))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		substr string
	}{
		{"missing semicolon", "p { width: 10px }", "expected ;"},
		{"bad top level", "; p { }", "unexpected ; at top level"},
		{"bad expression", "p { width: ; }", "unexpected ; in expression"},
		{"missing brace", "p { width: 1px;", "expected }"},
		{"illegal char", "p { width: @; }", "ILLEGAL '@'"},
		{"bad body item", "p { 10px; }", "in rule body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.input)
			p.Parse()
			if !p.Diagnostics().HasErrors() {
				t.Fatal("expected parse errors")
			}
			if !strings.Contains(p.Diagnostics().Format("test"), tt.substr) {
				t.Errorf("expected error containing %q, got:\n%s", tt.substr, p.Diagnostics().Format("test"))
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	input := `p { width: ; height: 10px; }
a { color: #000000; }`
	p := New(input)
	tree := p.Parse()
	if !p.Diagnostics().HasErrors() {
		t.Fatal("expected parse errors")
	}
	if n := len(tree.Stylesheet().Body); n != 2 {
		t.Errorf("expected both rules to be parsed, got %d", n)
	}
}

func TestParseCapitalisedProperty(t *testing.T) {
	tree := parse(t, "p { Width: 1px; COLOR: #000000; }")
	rule := tree.Node(tree.Stylesheet().Body[0]).(*ast.Stylerule)
	if len(rule.Body) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(rule.Body))
	}
	decl := tree.Node(rule.Body[0]).(*ast.Declaration)
	if prop := tree.Node(decl.Property).(*ast.PropertyName); prop.Name != "Width" {
		t.Errorf("expected property 'Width', got %q", prop.Name)
	}
}
