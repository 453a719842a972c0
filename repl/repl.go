// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The Read-Eval-Print Loop interface.
//          It connects the user input stream to the pipeline (Lexer->Parser->Interpreter)
//          and manages the persistent session state.
// ==============================================================================================

package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"plox/ast"
	"plox/diagnostics"
	"plox/interpreter"
	"plox/lexer"
	"plox/parser"
	"plox/token"
)

// ----------------------------------------------------------------------------
// UI CONSTANTS & CONFIGURATION
// ----------------------------------------------------------------------------

const (
	PROMPT = ">> "
	LOGO   = `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃  _____  _     ___  __  __                          ┃
┃ |  _  || |   / _ \ \ \/ /                          ┃
┃ | |_| || |  | | | | \  /                           ┃
┃ |  ___|| |__| |_| | /  \                           ┃
┃ |_|    |____|\___/ /_/\_\                          ┃
┃                                                    ┃
┃ The plox Language                                  ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
`
)

// ANSI Color Codes for terminal output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Gray   = "\033[37m"
	Bold   = "\033[1m"
)

// ----------------------------------------------------------------------------
// REPL LOGIC
// ----------------------------------------------------------------------------

// Start launches the Read-Eval-Print Loop. It reads lines from in, evaluates each
// as a complete program, and writes results and diagnostics to out. A single
// Interpreter persists across the whole session, so a variable or function
// declared on one line is visible on the next.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	sink := diagnostics.New(out)
	interp := interpreter.New(out, sink)
	debugMode := false

	fmt.Fprint(out, LOGO)
	printHelp(out)

	for {
		fmt.Fprint(out, Cyan+PROMPT+Reset)
		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			switch line {
			case ".exit":
				fmt.Fprintln(out, Yellow+"Goodbye!"+Reset)
				return
			case ".clear":
				fmt.Fprint(out, "\033[H\033[2J")
				continue
			case ".reset":
				sink = diagnostics.New(out)
				interp = interpreter.New(out, sink)
				fmt.Fprintln(out, Green+"Environment cleared (memory reset)."+Reset)
				continue
			case ".debug":
				debugMode = !debugMode
				status := "DISABLED"
				if debugMode {
					status = "ENABLED"
				}
				fmt.Fprintf(out, Gray+"Debug mode %s\n"+Reset, status)
				continue
			case ".help":
				printHelp(out)
				continue
			default:
				fmt.Fprintf(out, Red+"Unknown command: %s. Type .help for info.\n"+Reset, line)
				continue
			}
		}

		if debugMode {
			printTokens(out, line, sink)
		}

		sink.ResetSyntaxError()
		tokens := lexer.ScanTokens(line, sink)
		p := parser.New(tokens, sink)
		statements := p.Parse()

		if sink.HadSyntaxError {
			continue
		}

		if debugMode {
			printAST(out, statements)
		}

		interp.Interpret(statements)
	}
}

// ----------------------------------------------------------------------------
// HELPER FUNCTIONS
// ----------------------------------------------------------------------------

func printHelp(out io.Writer) {
	fmt.Fprintln(out, Gray+"Commands:")
	fmt.Fprintln(out, "  .exit   Quit the REPL")
	fmt.Fprintln(out, "  .clear  Clear the terminal screen")
	fmt.Fprintln(out, "  .reset  Reset memory (forget all declarations)")
	fmt.Fprintln(out, "  .debug  Toggle verbose AST/Token output")
	fmt.Fprintln(out, "  .help   Show this message"+Reset)
	fmt.Fprintln(out)
}

func printTokens(out io.Writer, line string, sink *diagnostics.Sink) {
	fmt.Fprintln(out, Gray+"┌── [ TOKENS ] ──────────────────────────────────────────┐"+Reset)
	for _, tok := range lexer.ScanTokens(line, sink) {
		if tok.Kind == token.EOF {
			break
		}
		fmt.Fprintf(out, "│ %-15s : %s\n", tok.Kind, tok.Lexeme)
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}

func printAST(out io.Writer, statements []ast.Stmt) {
	fmt.Fprintln(out, Gray+"┌── [ AST TREE ] ────────────────────────────────────────┐"+Reset)
	for _, stmt := range statements {
		if stmt == nil {
			continue
		}
		fmt.Fprintf(out, "%s\n", stmt.String())
	}
	fmt.Fprintln(out, Gray+"└────────────────────────────────────────────────────────┘"+Reset)
}
