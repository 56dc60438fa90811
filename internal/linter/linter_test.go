package linter

import (
	"strings"
	"testing"

	"github.com/lhaig/icss/internal/diagnostic"
	"github.com/lhaig/icss/internal/parser"
)

func parseAndLint(t *testing.T, source string) []string {
	t.Helper()
	p := parser.New(source)
	tree := p.Parse()

	if p.Diagnostics().HasErrors() {
		t.Fatalf("Parser errors: %s", p.Diagnostics().Format("test"))
	}

	diag := Lint(tree)
	var warnings []string
	for _, d := range diag.All() {
		warnings = append(warnings, d.Message)
	}
	return warnings
}

func containsWarning(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

// --- Empty stylerule ---

func TestEmptyStylerule(t *testing.T) {
	warnings := parseAndLint(t, "p, .menu { }")
	if !containsWarning(warnings, "stylerule 'p, .menu' has an empty body") {
		t.Errorf("Expected empty body warning, got: %v", warnings)
	}
}

func TestNonEmptyStyleruleNoWarning(t *testing.T) {
	warnings := parseAndLint(t, "p { width: 1px; }")
	if containsWarning(warnings, "empty body") {
		t.Errorf("Did not expect empty body warning, got: %v", warnings)
	}
}

// --- Variables ---

func TestUnusedVariable(t *testing.T) {
	source := `Used := 1px;
Unused := 2px;
p { Local := 3px; width: Used; }`
	warnings := parseAndLint(t, source)
	if !containsWarning(warnings, "variable 'Unused' is assigned but never used") {
		t.Errorf("Expected unused warning for Unused, got: %v", warnings)
	}
	if !containsWarning(warnings, "variable 'Local' is assigned but never used") {
		t.Errorf("Expected unused warning for Local, got: %v", warnings)
	}
	if containsWarning(warnings, "'Used'") {
		t.Errorf("Did not expect a warning for Used, got: %v", warnings)
	}
}

func TestVariableUsedInCondition(t *testing.T) {
	warnings := parseAndLint(t, "Dark := TRUE;\np { if [Dark] { color: #000000; } }")
	if containsWarning(warnings, "never used") {
		t.Errorf("Did not expect unused warning, got: %v", warnings)
	}
}

func TestVariableUsedByAnotherAssignment(t *testing.T) {
	warnings := parseAndLint(t, "A := 1px;\nB := A * 2;\np { width: B; }")
	if containsWarning(warnings, "never used") {
		t.Errorf("Did not expect unused warning, got: %v", warnings)
	}
}

func TestVariableNaming(t *testing.T) {
	warnings := parseAndLint(t, "size := 1px;\np { width: size; }")
	if !containsWarning(warnings, "variable 'size' should start with an upper-case letter") {
		t.Errorf("Expected naming warning, got: %v", warnings)
	}

	warnings = parseAndLint(t, "Size := 1px;\np { width: Size; }")
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got: %v", warnings)
	}
}

// --- Duplicate properties ---

func TestDuplicateProperty(t *testing.T) {
	warnings := parseAndLint(t, "p { width: 1px; color: #000000; Width: 2px; }")
	if !containsWarning(warnings, "property 'Width' is declared more than once") {
		t.Errorf("Expected duplicate warning, got: %v", warnings)
	}
}

func TestDuplicatePropertyAcrossBranchesNoWarning(t *testing.T) {
	source := `Dark := TRUE;
p {
    width: 1px;
    if [Dark] { width: 2px; } else { width: 3px; }
}`
	warnings := parseAndLint(t, source)
	if containsWarning(warnings, "more than once") {
		t.Errorf("Did not expect duplicate warning, got: %v", warnings)
	}
}

// --- Literal conditions ---

func TestLiteralCondition(t *testing.T) {
	warnings := parseAndLint(t, "p { if [FALSE] { width: 1px; } if [true] { width: 2px; } }")
	if !containsWarning(warnings, "if condition is always false") {
		t.Errorf("Expected always-false warning, got: %v", warnings)
	}
	if !containsWarning(warnings, "if condition is always true") {
		t.Errorf("Expected always-true warning, got: %v", warnings)
	}
}

// --- Severity and order ---

func TestLintOnlyWarnings(t *testing.T) {
	p := parser.New("x := 1px;\np { }\na { width: 1px; width: 2px; }")
	diags := Lint(p.Parse())

	if diags.HasErrors() {
		t.Errorf("Linter must not produce errors: %s", diags.Format("test"))
	}
	if diags.Count() != 4 {
		t.Fatalf("Expected 4 warnings, got %d: %s", diags.Count(), diags.Format("test"))
	}
	for _, d := range diags.All() {
		if d.Severity != diagnostic.Warning || d.Kind != diagnostic.Lint {
			t.Errorf("unexpected diagnostic %+v", d)
		}
	}
	if first := diags.All()[0]; first.Line != 1 {
		t.Errorf("Expected warnings in source order, first at line %d", first.Line)
	}
}
