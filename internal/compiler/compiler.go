package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lhaig/icss/internal/ast"
	"github.com/lhaig/icss/internal/checker"
	"github.com/lhaig/icss/internal/diagnostic"
	"github.com/lhaig/icss/internal/evaluator"
	"github.com/lhaig/icss/internal/formatter"
	"github.com/lhaig/icss/internal/generator"
	"github.com/lhaig/icss/internal/linter"
	"github.com/lhaig/icss/internal/parser"
)

// Result holds the output of a compilation
type Result struct {
	Diagnostics *diagnostic.Diagnostics
	Tree        *ast.Tree
	CSS         string
}

// Compile runs the full pipeline: parse -> check -> evaluate -> generate.
// Returns the result without writing files.
func Compile(source string) *Result {
	res := &Result{}

	// Parse
	p := parser.New(source)
	tree := p.Parse()
	res.Tree = tree

	if p.Diagnostics().HasErrors() {
		res.Diagnostics = p.Diagnostics()
		return res
	}

	// Type check
	res.Diagnostics = checker.Check(tree)
	if res.Diagnostics.HasErrors() {
		return res
	}

	// Evaluate in place, then emit
	evaluator.Apply(tree)
	if diags := unevaluated(tree); diags.HasErrors() {
		res.Diagnostics = diags
		return res
	}

	css, err := generator.Generate(tree)
	if err != nil {
		res.Diagnostics = diagnostic.New()
		res.Diagnostics.Errorf(diagnostic.Unevaluable, 1, 1, "%s", err)
		return res
	}
	res.CSS = css

	return res
}

// unevaluated reports declarations the evaluator could not fold.
// The checker lets some of these through, e.g. adding two colors.
func unevaluated(tree *ast.Tree) *diagnostic.Diagnostics {
	diags := diagnostic.New()
	tree.Walk(tree.Root, func(_ ast.NodeID, n ast.Node) bool {
		decl, ok := n.(*ast.Declaration)
		if !ok {
			return true
		}
		if _, ok := tree.Node(decl.Expr).(ast.Literal); ok {
			return false
		}
		name := ""
		if prop, ok := tree.Node(decl.Property).(*ast.PropertyName); ok {
			name = prop.Name
		}
		diags.Errorf(diagnostic.Unevaluable, decl.Line, decl.Column,
			"expression in declaration '%s' does not evaluate to a value", name)
		return false
	})
	return diags
}

// Check runs parse + check only (no evaluation).
func Check(source string) *diagnostic.Diagnostics {
	p := parser.New(source)
	tree := p.Parse()

	if p.Diagnostics().HasErrors() {
		return p.Diagnostics()
	}

	return checker.Check(tree)
}

// Lint parses the source and runs the lint rules. Parse errors are returned instead of warnings.
func Lint(source string) *diagnostic.Diagnostics {
	p := parser.New(source)
	tree := p.Parse()

	if p.Diagnostics().HasErrors() {
		return p.Diagnostics()
	}

	return linter.Lint(tree)
}

// Format returns the canonical form of source, or the parse errors.
func Format(source string) (string, *diagnostic.Diagnostics) {
	p := parser.New(source)
	tree := p.Parse()

	if p.Diagnostics().HasErrors() {
		return "", p.Diagnostics()
	}

	return formatter.Format(tree), p.Diagnostics()
}

// OutputPath returns the default stylesheet path for an ICSS input file.
func OutputPath(inPath string) string {
	return strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".css"
}

// CompileFile reads inPath, compiles it and writes the CSS to outPath.
// An outPath of "-" writes to standard output.
func CompileFile(inPath, outPath string) error {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inPath, err)
	}

	res := Compile(string(source))
	if res.Diagnostics != nil && res.Diagnostics.HasErrors() {
		return fmt.Errorf("compilation errors:\n%s", res.Diagnostics.Format(inPath))
	}

	if outPath == "-" {
		_, err := os.Stdout.WriteString(res.CSS)
		return err
	}

	// Ensure output directory exists
	outDir := filepath.Dir(outPath)
	if outDir != "." && outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if err := os.WriteFile(outPath, []byte(res.CSS), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return nil
}
