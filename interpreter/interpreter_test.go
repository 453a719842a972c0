// ==============================================================================================
// FILE: interpreter/interpreter_test.go
// ==============================================================================================

package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plox/diagnostics"
	"plox/lexer"
	"plox/parser"
)

// run lexes, parses, and interprets src with a fresh Interpreter, returning everything
// print wrote plus the diagnostics sink so tests can assert on both.
func run(t *testing.T, src string) (string, *diagnostics.Sink) {
	t.Helper()
	var errOut bytes.Buffer
	sink := diagnostics.New(&errOut)
	tokens := lexer.ScanTokens(src, sink)
	statements := parser.New(tokens, sink).Parse()
	require.False(t, sink.HadSyntaxError, "unexpected syntax error: %s", errOut.String())

	var stdout bytes.Buffer
	New(&stdout, sink).Interpret(statements)
	if sink.HadRuntimeError {
		return stdout.String(), sink
	}
	return stdout.String(), sink
}

func lines(out string) []string {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestArithmeticAndStringOps(t *testing.T) {
	t.Run("numeric arithmetic follows IEEE-754 semantics, including division by zero", func(t *testing.T) {
		out, sink := run(t, `print 1 + 2 * 3; print 1 / 0; print -1 / 0; print 7 % 3;`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"7", "+Inf", "-Inf", "1"}, lines(out))
	})

	t.Run("modulo floors toward the divisor's sign, matching the reference interpreter", func(t *testing.T) {
		out, sink := run(t, `print -7 % 3; print 7 % -3;`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"2", "-2"}, lines(out))
	})

	t.Run("plus concatenates two strings", func(t *testing.T) {
		out, sink := run(t, `print "foo" + "bar";`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"foobar"}, lines(out))
	})

	t.Run("adding a string and a number is a runtime error", func(t *testing.T) {
		_, sink := run(t, `print "foo" + 1;`)
		assert.True(t, sink.HadRuntimeError)
	})
}

func TestTruthinessAndEquality(t *testing.T) {
	t.Run("only nil and false are falsy", func(t *testing.T) {
		out, sink := run(t, `
if (0) print "zero-truthy"; else print "zero-falsy";
if ("") print "empty-truthy"; else print "empty-falsy";
if (nil) print "nil-truthy"; else print "nil-falsy";
if (false) print "false-truthy"; else print "false-falsy";
`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"zero-truthy", "empty-truthy", "nil-falsy", "false-falsy"}, lines(out))
	})

	t.Run("equality never coerces across tags, and nil equals nil", func(t *testing.T) {
		out, sink := run(t, `
print nil == nil;
print 0 == false;
print "" == nil;
print 1 == 1;
`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"true", "false", "false", "true"}, lines(out))
	})
}

func TestScopingAndClosures(t *testing.T) {
	t.Run("a block-scoped variable shadows the outer one and is gone after the block", func(t *testing.T) {
		out, sink := run(t, `
var x = "outer";
{
  var x = "inner";
  print x;
}
print x;
`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"inner", "outer"}, lines(out))
	})

	t.Run("a function closes over its declaration environment, not the caller's", func(t *testing.T) {
		out, sink := run(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
var counter = makeCounter();
print counter();
print counter();
print counter();
`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"1", "2", "3"}, lines(out))
	})

	t.Run("assignment walks to the nearest scope that already binds the name", func(t *testing.T) {
		out, sink := run(t, `
var x = 1;
fun setX() { x = 2; }
setX();
print x;
`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"2"}, lines(out))
	})

	t.Run("assigning an undeclared name is a runtime error", func(t *testing.T) {
		_, sink := run(t, `ghost = 1;`)
		assert.True(t, sink.HadRuntimeError)
	})
}

func TestControlFlowAndFunctions(t *testing.T) {
	t.Run("while loop", func(t *testing.T) {
		out, sink := run(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"0", "1", "2"}, lines(out))
	})

	t.Run("for loop desugars correctly, including update and scoped init", func(t *testing.T) {
		out, sink := run(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"0", "1", "2"}, lines(out))
	})

	t.Run("recursive function with an early return", func(t *testing.T) {
		out, sink := run(t, `
fun fib(n) {
  if (n <= 1) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
		require.False(t, sink.HadRuntimeError)
		assert.Equal(t, []string{"55"}, lines(out))
	})

	t.Run("calling a non-callable value is a runtime error", func(t *testing.T) {
		_, sink := run(t, `var x = 1; x();`)
		assert.True(t, sink.HadRuntimeError)
	})

	t.Run("wrong arity is a runtime error", func(t *testing.T) {
		_, sink := run(t, `fun f(a, b) { return a + b; } f(1);`)
		assert.True(t, sink.HadRuntimeError)
	})
}

func TestClockBuiltin(t *testing.T) {
	out, sink := run(t, `print clock() > 0;`)
	require.False(t, sink.HadRuntimeError)
	assert.Equal(t, []string{"true"}, lines(out))
}
