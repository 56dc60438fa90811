package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lhaig/icss/internal/ast"
	"github.com/lhaig/icss/internal/checker"
	"github.com/lhaig/icss/internal/compiler"
	"github.com/lhaig/icss/internal/evaluator"
	"github.com/lhaig/icss/internal/parser"
)

const usage = `icssc - The ICSS stylesheet compiler

Usage:
  icssc build [-o out.css] <file.icss>   Compile to CSS
  icssc check <file.icss>                Parse and type-check only
  icssc lint <file.icss>                 Run lint checks for style issues
  icssc fmt [-w] <file.icss>             Print canonical ICSS
  icssc ast [-eval] <file.icss>          Dump the syntax tree
  icssc repl                             Start an interactive session

Examples:
  icssc build theme.icss              Build theme.icss -> theme.css
  icssc build -o - theme.icss         Write the CSS to stdout
  icssc fmt -w theme.icss             Rewrite theme.icss in canonical form
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "build":
		handleBuild(os.Args[2:])
	case "check":
		handleCheck(os.Args[2:])
	case "lint":
		handleLint(os.Args[2:])
	case "fmt":
		handleFmt(os.Args[2:])
	case "ast":
		handleAST(os.Args[2:])
	case "repl":
		os.Exit(runRepl())
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// parseFlags parses subcommand options and returns the single input file
func parseFlags(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		os.Exit(1)
	}
	return fs.Arg(0)
}

func readSource(filePath string) string {
	source, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %s\n", err)
		os.Exit(1)
	}
	return string(source)
}

func handleBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	out := fs.String("o", "", "output file (- for stdout)")
	filePath := parseFlags(fs, args)

	outPath := *out
	if outPath == "" {
		outPath = compiler.OutputPath(filePath)
	}

	if err := compiler.CompileFile(filePath, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if outPath != "-" {
		fmt.Printf("Wrote %s\n", outPath)
	}
}

func handleCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	filePath := parseFlags(fs, args)

	diag := compiler.Check(readSource(filePath))
	if diag.HasErrors() {
		fmt.Fprintln(os.Stderr, diag.Format(filePath))
		os.Exit(1)
	}

	fmt.Println("No errors found.")
}

func handleLint(args []string) {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	filePath := parseFlags(fs, args)

	diag := compiler.Lint(readSource(filePath))
	if diag.HasErrors() {
		fmt.Fprintln(os.Stderr, diag.Format(filePath))
		os.Exit(1)
	}

	if diag.Count() == 0 {
		fmt.Println("No lint warnings.")
		return
	}

	fmt.Print(diag.Format(filePath))
	fmt.Println()
	fmt.Printf("%d warning(s) found.\n", diag.Count())
}

func handleFmt(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "write result to the source file instead of stdout")
	filePath := parseFlags(fs, args)

	formatted, diag := compiler.Format(readSource(filePath))
	if diag.HasErrors() {
		fmt.Fprintln(os.Stderr, diag.Format(filePath))
		os.Exit(1)
	}

	if !*write {
		fmt.Print(formatted)
		return
	}
	if err := os.WriteFile(filePath, []byte(formatted), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %s\n", err)
		os.Exit(1)
	}
}

func handleAST(args []string) {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	eval := fs.Bool("eval", false, "check and evaluate before dumping")
	filePath := parseFlags(fs, args)

	p := parser.New(readSource(filePath))
	tree := p.Parse()
	if p.Diagnostics().HasErrors() {
		fmt.Fprintln(os.Stderr, p.Diagnostics().Format(filePath))
		os.Exit(1)
	}

	// annotations show up in the dump
	checker.Check(tree)
	if *eval {
		evaluator.Apply(tree)
	}
	fmt.Print(ast.Print(tree, tree.Root))
}
