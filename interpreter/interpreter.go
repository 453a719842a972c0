// ==============================================================================================
// FILE: interpreter/interpreter.go
// ==============================================================================================
// PACKAGE: interpreter
// PURPOSE: The runtime execution engine. It walks the AST, evaluating expressions to
//          object.Object values and executing statements for their side effects. It owns the
//          global environment, the closure/scope discipline, and the non-local transfers used
//          for "return" and for unrecoverable runtime errors.
// ==============================================================================================

package interpreter

import (
	"fmt"
	"io"
	"math"

	"plox/ast"
	"plox/diagnostics"
	"plox/object"
	"plox/token"
)

// Singletons avoid reallocating true/false/nil constantly during evaluation.
var (
	NIL   = &object.Nil{}
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
)

// returnSignal is the non-local transfer used by "return". It is deliberately not an
// error: it is caught only by the function-invocation machinery in call(), never by the
// top-level runtime-error handling in Interpret.
type returnSignal struct {
	value object.Object
}

// Interpreter executes a parsed program against a persistent global environment. A
// single Interpreter is reused across every line of a REPL session so that top-level
// variable and function declarations stay visible to later input.
type Interpreter struct {
	globals *object.Environment
	env     *object.Environment
	sink    *diagnostics.Sink
	stdout  io.Writer
}

// New constructs an Interpreter with its globals seeded with the clock() builtin,
// writing `print` output to stdout and reporting runtime errors into sink.
func New(stdout io.Writer, sink *diagnostics.Sink) *Interpreter {
	globals := object.NewEnvironment()
	registerBuiltins(globals)
	return &Interpreter{globals: globals, env: globals, sink: sink, stdout: stdout}
}

// Interpret executes statements in order. A runtime error escaping any statement is
// caught here, reported to the sink, and ends the batch — statements after the failing
// one do not run. Nil statements (syntax errors the parser recovered from) are skipped;
// callers should not invoke Interpret with a list containing them unless
// sink.HadSyntaxError is false.
func (in *Interpreter) Interpret(statements []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			rt, ok := r.(*diagnostics.RuntimeError)
			if !ok {
				panic(r)
			}
			in.sink.RuntimeError(rt)
		}
	}()

	for _, stmt := range statements {
		if stmt == nil {
			continue
		}
		in.execute(stmt)
	}
}

// ----------------------------------------------------------------------------------------------
// statement execution
// ----------------------------------------------------------------------------------------------

func (in *Interpreter) execute(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Expression:
		in.evaluate(s.Expr)

	case *ast.Print:
		value := in.evaluate(s.Expr)
		fmt.Fprintln(in.stdout, stringify(value))

	case *ast.Var:
		var value object.Object = NIL
		if s.Initializer != nil {
			value = in.evaluate(s.Initializer)
		}
		in.env.Define(s.Name.Lexeme, value)

	case *ast.Block:
		in.executeBlock(s.Statements, object.NewEnclosedEnvironment(in.env))

	case *ast.If:
		if isTruthy(in.evaluate(s.Condition)) {
			in.execute(s.Then)
		} else if s.Else != nil {
			in.execute(s.Else)
		}

	case *ast.While:
		for isTruthy(in.evaluate(s.Condition)) {
			in.execute(s.Body)
		}

	case *ast.Function:
		fn := &object.Function{Name: s.Name.Lexeme, Params: paramNames(s.Params), Body: s.Body, Closure: in.env}
		in.env.Define(s.Name.Lexeme, fn)

	case *ast.Return:
		var value object.Object = NIL
		if s.Value != nil {
			value = in.evaluate(s.Value)
		}
		panic(returnSignal{value: value})

	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", stmt))
	}
}

// executeBlock swaps in env for the duration of the statement list and always restores
// the previous environment on the way out — normal completion, a runtime-error panic, or
// a return-signal panic all unwind through this defer.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *object.Environment) {
	previous := in.env
	defer func() { in.env = previous }()

	in.env = env
	for _, stmt := range statements {
		if stmt == nil {
			continue
		}
		in.execute(stmt)
	}
}

func paramNames(params []token.Token) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Lexeme
	}
	return names
}

// ----------------------------------------------------------------------------------------------
// expression evaluation
// ----------------------------------------------------------------------------------------------

func (in *Interpreter) evaluate(expr ast.Expr) object.Object {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value)

	case *ast.Grouping:
		return in.evaluate(e.Expression)

	case *ast.Variable:
		val, err := in.env.Get(e.Name)
		if err != nil {
			panic(err)
		}
		return val

	case *ast.Assign:
		value := in.evaluate(e.Value)
		if err := in.env.Assign(e.Name, value); err != nil {
			panic(err)
		}
		return value

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Call:
		return in.evalCall(e)

	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", expr))
	}
}

func literalValue(v any) object.Object {
	switch val := v.(type) {
	case nil:
		return NIL
	case bool:
		return nativeBool(val)
	case float64:
		return &object.Number{Value: val}
	case string:
		return &object.String{Value: val}
	default:
		panic(fmt.Sprintf("interpreter: unsupported literal value %v (%T)", v, v))
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary) object.Object {
	right := in.evaluate(e.Right)
	switch e.Operator.Kind {
	case token.MINUS:
		num, ok := right.(*object.Number)
		if !ok {
			panic(diagnostics.NewRuntimeError(e.Operator, "Operand must be a number."))
		}
		return &object.Number{Value: -num.Value}
	case token.BANG:
		return nativeBool(!isTruthy(right))
	default:
		panic(fmt.Sprintf("interpreter: unknown unary operator %s", e.Operator.Lexeme))
	}
}

func (in *Interpreter) evalLogical(e *ast.Logical) object.Object {
	left := in.evaluate(e.Left)
	if e.Operator.Kind == token.OR {
		if isTruthy(left) {
			return left
		}
	} else if !isTruthy(left) {
		return left
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) object.Object {
	left := in.evaluate(e.Left)
	right := in.evaluate(e.Right)
	op := e.Operator

	switch op.Kind {
	case token.PLUS:
		ln, lok := left.(*object.Number)
		rn, rok := right.(*object.Number)
		if lok && rok {
			return &object.Number{Value: ln.Value + rn.Value}
		}
		ls, lsok := left.(*object.String)
		rs, rsok := right.(*object.String)
		if lsok && rsok {
			return &object.String{Value: ls.Value + rs.Value}
		}
		panic(diagnostics.NewRuntimeError(op, "Operands must be two numbers or two strings."))

	case token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(*object.Number)
		rn, rok := right.(*object.Number)
		if !lok || !rok {
			panic(diagnostics.NewRuntimeError(op, "Operands must be a number."))
		}
		return in.evalNumericBinary(op.Kind, ln.Value, rn.Value)

	case token.EQUAL_EQUAL:
		return nativeBool(object.Equal(left, right))
	case token.BANG_EQUAL:
		return nativeBool(!object.Equal(left, right))

	default:
		panic(fmt.Sprintf("interpreter: unknown binary operator %s", op.Lexeme))
	}
}

func (in *Interpreter) evalNumericBinary(kind token.Kind, l, r float64) object.Object {
	switch kind {
	case token.MINUS:
		return &object.Number{Value: l - r}
	case token.STAR:
		return &object.Number{Value: l * r}
	case token.SLASH:
		return &object.Number{Value: l / r}
	case token.PERCENT:
		return &object.Number{Value: mod(l, r)}
	case token.GREATER:
		return nativeBool(l > r)
	case token.GREATER_EQUAL:
		return nativeBool(l >= r)
	case token.LESS:
		return nativeBool(l < r)
	case token.LESS_EQUAL:
		return nativeBool(l <= r)
	default:
		panic(fmt.Sprintf("interpreter: unknown numeric operator %s", kind))
	}
}

func (in *Interpreter) evalCall(e *ast.Call) object.Object {
	callee := in.evaluate(e.Callee)

	args := make([]object.Object, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = in.evaluate(a)
	}

	callable, ok := callee.(object.Callable)
	if !ok {
		panic(diagnostics.NewRuntimeError(e.Paren, "Can only call functions and classes."))
	}
	if len(args) != callable.Arity() {
		panic(diagnostics.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}

	return in.call(callable, args)
}

// call invokes a Callable. For a user Function, a fresh environment enclosing the
// function's captured closure (not the caller's environment) is created, parameters
// are bound there, and the body runs as a block under it. A returnSignal panic raised
// inside the body is caught here and converted back into the call's result; any other
// panic (a runtime error) propagates past this frame unchanged.
func (in *Interpreter) call(callable object.Callable, args []object.Object) (result object.Object) {
	builtin, isBuiltin := callable.(*object.Builtin)
	if isBuiltin {
		return builtin.Fn(args)
	}

	fn := callable.(*object.Function)
	callEnv := object.NewEnclosedEnvironment(fn.Closure)
	for i, name := range fn.Params {
		callEnv.Define(name, args[i])
	}

	result = NIL
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ret, ok := r.(returnSignal); ok {
					result = ret.value
					return
				}
				panic(r)
			}
		}()
		in.executeBlock(fn.Body, callEnv)
	}()
	return result
}

// ----------------------------------------------------------------------------------------------
// shared helpers
// ----------------------------------------------------------------------------------------------

func nativeBool(b bool) *object.Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// isTruthy implements plox's truthiness rule: only nil and false are falsy.
func isTruthy(obj object.Object) bool {
	switch v := obj.(type) {
	case *object.Nil:
		return false
	case *object.Boolean:
		return v.Value
	default:
		return true
	}
}

// stringify renders a value the way `print` and the REPL display it.
func stringify(obj object.Object) string {
	if fn, ok := obj.(*object.Function); ok {
		return fn.Inspect()
	}
	return obj.Inspect()
}

// mod implements Lox's "%" as a floored remainder, matching Python's float "%"
// (sign follows the divisor): -7 % 3 is 2, not -1.
func mod(l, r float64) float64 {
	return l - r*math.Floor(l/r)
}
