// ==============================================================================================
// FILE: cmd/plox/main.go
// ==============================================================================================
// PACKAGE: main
// PURPOSE: The command-line driver. Dispatches between file mode (run a script and exit with a
//          status reflecting whether a syntax or runtime error occurred) and REPL mode (no
//          arguments, persistent interactive session).
// ==============================================================================================

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"plox/diagnostics"
	"plox/interpreter"
	"plox/lexer"
	"plox/parser"
	"plox/repl"
)

func main() {
	printTokens := flag.Bool("tokens", false, "print the token stream before running")
	printAST := flag.Bool("ast", false, "print the parsed syntax tree before running")
	flag.Parse()

	args := flag.Args()
	switch {
	case len(args) > 1:
		fmt.Fprintln(os.Stderr, "Usage: plox [script]")
		os.Exit(64)
	case len(args) == 1:
		os.Exit(runFile(args[0], *printTokens, *printAST, os.Stdout, os.Stderr))
	default:
		repl.Start(os.Stdin, os.Stdout)
	}
}

// runFile lexes, parses, and interprets path, writing program output to stdout and
// diagnostics to stderr, and returns the process exit code: 0 on a clean run, 65 if a
// syntax error was reported, 70 if a runtime error was reported, 1 if the file could not
// be read.
func runFile(path string, wantTokens, wantAST bool, stdout, stderr io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %s\n", err)
		return 1
	}

	sink := diagnostics.New(stderr)
	source := string(data)

	tokens := lexer.ScanTokens(source, sink)
	if wantTokens {
		for _, tok := range tokens {
			fmt.Fprintf(stdout, "%-15s %s\n", tok.Kind, tok.Lexeme)
		}
	}

	p := parser.New(tokens, sink)
	statements := p.Parse()

	if wantAST {
		for _, stmt := range statements {
			if stmt != nil {
				fmt.Fprintln(stdout, stmt.String())
			}
		}
	}

	if sink.HadSyntaxError {
		return 65
	}

	interp := interpreter.New(stdout, sink)
	interp.Interpret(statements)

	if sink.HadRuntimeError {
		return 70
	}
	return 0
}
