package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/lhaig/icss/internal/compiler"
	"github.com/lhaig/icss/internal/diagnostic"
)

const (
	banner      = "icssc repl - type ICSS, :reset to start over, :quit to exit"
	promptMain  = "icss> "
	promptCont  = "....  "
	historyFile = ".icssc_history"
)

// session accumulates accepted input so later entries see earlier variables.
type session struct {
	source string
	css    string
	lines  int
}

// eval compiles the session plus input and returns only the CSS the input added.
// Input that fails to compile is not kept.
func (s *session) eval(input string) (string, *diagnostic.Diagnostics) {
	src := s.source + input + "\n"
	res := compiler.Compile(src)
	if res.Diagnostics != nil && res.Diagnostics.HasErrors() {
		return "", s.relocate(res.Diagnostics)
	}

	added := strings.TrimPrefix(strings.TrimPrefix(res.CSS, s.css), "\n")
	s.source = src
	s.css = res.CSS
	s.lines += strings.Count(input, "\n") + 1
	return added, nil
}

// relocate shifts positions so they count from the start of the latest input.
func (s *session) relocate(diags *diagnostic.Diagnostics) *diagnostic.Diagnostics {
	out := diagnostic.New()
	for _, d := range diags.All() {
		if d.Line > s.lines {
			d.Line -= s.lines
		}
		out.Add(d)
	}
	return out
}

// braceDepth returns how many braces are still open in src, ignoring comments.
func braceDepth(src string) int {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch {
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return depth + 1 // unterminated comment: keep reading
			}
			i += end + 3
		case src[i] == '{':
			depth++
		case src[i] == '}':
			depth--
		}
	}
	return depth
}

func runRepl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := &session{}
	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		switch strings.TrimSpace(input) {
		case "":
			continue
		case ":quit":
			return 0
		case ":reset":
			s = &session{}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		css, diags := s.eval(input)
		if diags != nil {
			fmt.Fprintln(os.Stderr, diags.Format("repl"))
			continue
		}
		fmt.Print(css)
	}
}

// readInput reads lines until every opened brace is closed.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if braceDepth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}
