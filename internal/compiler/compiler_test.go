package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lhaig/icss/internal/diagnostic"
)

func TestCompileValidStylesheet(t *testing.T) {
	source := `/* theme */
LinkColor := #ff0000;
Gutter := 8px;
UseWide := FALSE;

a {
    color: LinkColor;
    width: Gutter * 2 + 4px;
}

.container, #Main {
    if [UseWide] {
        width: 100%;
    } else {
        Pad := Gutter - 2px;
        width: 3 * Pad;
    }
    background-color: #ffffff;
}`

	res := Compile(source)
	if res.Diagnostics != nil && res.Diagnostics.HasErrors() {
		t.Fatalf("Expected no errors, got:\n%s", res.Diagnostics.Format("test"))
	}

	want := `a {
  color: #ff0000;
  width: 20px;
}

.container, #main {
  width: 18px;
  background-color: #ffffff;
}
`
	if res.CSS != want {
		t.Errorf("unexpected CSS:\n%s\nwant:\n%s", res.CSS, want)
	}
}

func TestCompileParseError(t *testing.T) {
	res := Compile("p { width: 10px }") // missing semicolon
	if res.Diagnostics == nil || !res.Diagnostics.HasErrors() {
		t.Error("Expected parse errors")
	}

	if res.CSS != "" {
		t.Error("Expected no CSS on parse error")
	}
}

func TestCompileCheckError(t *testing.T) {
	res := Compile("p { width: Missing; }")
	if res.Diagnostics == nil || !res.Diagnostics.HasErrors() {
		t.Fatal("Expected check errors")
	}
	if got := res.Diagnostics.OfKind(diagnostic.UndefinedVariable); len(got) != 1 {
		t.Errorf("Expected one undefined variable error, got:\n%s", res.Diagnostics.Format("test"))
	}

	if res.CSS != "" {
		t.Error("Expected no CSS on check error")
	}
}

func TestCompileUnevaluableDeclaration(t *testing.T) {
	// colors type-check under + but do not fold
	res := Compile("p { color: #ff0000 + #00ff00; }")
	if res.Diagnostics == nil || !res.Diagnostics.HasErrors() {
		t.Fatal("Expected an evaluation error")
	}
	errs := res.Diagnostics.OfKind(diagnostic.Unevaluable)
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "'color'") {
		t.Errorf("unexpected diagnostics:\n%s", res.Diagnostics.Format("test"))
	}
	if res.CSS != "" {
		t.Error("Expected no CSS on evaluation error")
	}
}

func TestCompileUnfoldedBindingHidesOuter(t *testing.T) {
	res := Compile("C := #111111;\na {\n    C := #222222 + #333333;\n    color: C;\n}")
	if res.Diagnostics == nil || !res.Diagnostics.HasErrors() {
		t.Fatalf("Expected an evaluation error, got CSS %q", res.CSS)
	}
	errs := res.Diagnostics.OfKind(diagnostic.Unevaluable)
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "'color'") {
		t.Errorf("unexpected diagnostics:\n%s", res.Diagnostics.Format("test"))
	}
	if res.CSS != "" {
		t.Errorf("Expected no CSS, got %q", res.CSS)
	}

	res = Compile("B := TRUE;\na {\n    B := FALSE + FALSE;\n    if [B] { width: 10px; } else { width: 20px; }\n}")
	if res.Diagnostics != nil && res.Diagnostics.HasErrors() {
		t.Fatalf("Expected no errors, got:\n%s", res.Diagnostics.Format("test"))
	}
	if want := "a {\n  width: 20px;\n}\n"; res.CSS != want {
		t.Errorf("unexpected CSS %q, want %q", res.CSS, want)
	}
}

func TestCompileDiagnosticsInSourceOrder(t *testing.T) {
	source := `p {
    margin: 1px;
    width: #000000;
}
if [TRUE] { color: #000000; }
a { height: 1px * 1px; }`

	diag := Check(source)
	var lines []int
	for _, d := range diag.All() {
		lines = append(lines, d.Line)
	}
	for i := 1; i < len(lines); i++ {
		if lines[i] < lines[i-1] {
			t.Fatalf("diagnostics out of order: %v\n%s", lines, diag.Format("test"))
		}
	}
	if diag.ErrorCount() < 4 {
		t.Errorf("Expected at least 4 errors, got:\n%s", diag.Format("test"))
	}
}

func TestCheckValidStylesheet(t *testing.T) {
	diag := Check("W := 10px;\np { width: W; height: 50%; }")
	if diag.HasErrors() {
		t.Errorf("Expected no errors, got:\n%s", diag.Format("test"))
	}
}

func TestCheckInvalidStylesheet(t *testing.T) {
	diag := Check("p { color: 10px; }")
	if !diag.HasErrors() {
		t.Error("Expected type mismatch error")
	}
}

func TestLint(t *testing.T) {
	diag := Lint("unused := 1px;\np { }")
	if diag.HasErrors() {
		t.Errorf("Expected only warnings, got:\n%s", diag.Format("test"))
	}
	if diag.Count() != 3 {
		t.Errorf("Expected 3 warnings, got:\n%s", diag.Format("test"))
	}

	diag = Lint("p {")
	if !diag.HasErrors() {
		t.Error("Expected parse errors from Lint")
	}
}

func TestFormat(t *testing.T) {
	out, diag := Format("p{width:1px;}")
	if diag.HasErrors() {
		t.Fatalf("unexpected errors:\n%s", diag.Format("test"))
	}
	if out != "p {\n    width: 1px;\n}\n" {
		t.Errorf("unexpected output %q", out)
	}

	if _, diag := Format("p { width }"); !diag.HasErrors() {
		t.Error("Expected parse errors from Format")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"theme.icss", "theme.css"},
		{"dir/site.icss", "dir/site.css"},
		{"noext", "noext.css"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompileFile(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "site.icss")
	if err := os.WriteFile(in, []byte("Size := 2px;\np { width: Size * 5; }"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	out := filepath.Join(tmpDir, "build", "site.css")
	if err := CompileFile(in, out); err != nil {
		t.Fatalf("CompileFile failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != "p {\n  width: 10px;\n}\n" {
		t.Errorf("unexpected output %q", string(data))
	}
}

func TestCompileFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if err := CompileFile(filepath.Join(tmpDir, "missing.icss"), "-"); err == nil {
		t.Error("Expected an error for a missing input file")
	}

	in := filepath.Join(tmpDir, "bad.icss")
	if err := os.WriteFile(in, []byte("p { margin: 1px; }"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}
	err := CompileFile(in, filepath.Join(tmpDir, "bad.css"))
	if err == nil {
		t.Fatal("Expected compilation errors")
	}
	if !strings.Contains(err.Error(), "bad.icss:1:5") {
		t.Errorf("Expected the error to name the file and position, got: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(tmpDir, "bad.css")); statErr == nil {
		t.Error("Expected no output file on error")
	}
}
