// ==============================================================================================
// FILE: object/environment_test.go
// ==============================================================================================

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plox/token"
)

func nameToken(name string) token.Token {
	return token.Token{Kind: token.IDENTIFIER, Lexeme: name, Line: 1}
}

func TestEnvironmentGet(t *testing.T) {
	t.Run("resolves a binding from the current scope", func(t *testing.T) {
		env := NewEnvironment()
		env.Define("x", &Number{Value: 1})
		val, err := env.Get(nameToken("x"))
		require.Nil(t, err)
		assert.Equal(t, &Number{Value: 1}, val)
	})

	t.Run("walks up through enclosing scopes", func(t *testing.T) {
		outer := NewEnvironment()
		outer.Define("x", &Number{Value: 1})
		inner := NewEnclosedEnvironment(outer)
		val, err := inner.Get(nameToken("x"))
		require.Nil(t, err)
		assert.Equal(t, &Number{Value: 1}, val)
	})

	t.Run("an unbound name is an undefined-variable error", func(t *testing.T) {
		env := NewEnvironment()
		_, err := env.Get(nameToken("missing"))
		require.NotNil(t, err)
		assert.Equal(t, "Undefined variable 'missing'.", err.Message)
	})
}

func TestEnvironmentAssign(t *testing.T) {
	t.Run("assign rewrites an existing binding in place, by presence not truthiness", func(t *testing.T) {
		env := NewEnvironment()
		env.Define("flag", &Boolean{Value: false})
		err := env.Assign(nameToken("flag"), &Boolean{Value: true})
		require.Nil(t, err)
		val, getErr := env.Get(nameToken("flag"))
		require.Nil(t, getErr)
		assert.Equal(t, &Boolean{Value: true}, val)
	})

	t.Run("assign writes to the nearest enclosing scope that already binds the name", func(t *testing.T) {
		outer := NewEnvironment()
		outer.Define("x", &Number{Value: 1})
		inner := NewEnclosedEnvironment(outer)

		err := inner.Assign(nameToken("x"), &Number{Value: 2})
		require.Nil(t, err)

		// the inner scope never got its own binding
		_, hasLocal := inner.values["x"]
		assert.False(t, hasLocal)

		val, _ := outer.Get(nameToken("x"))
		assert.Equal(t, &Number{Value: 2}, val)
	})

	t.Run("assigning an unbound name is an undefined-variable error and creates no binding", func(t *testing.T) {
		env := NewEnvironment()
		err := env.Assign(nameToken("ghost"), &Number{Value: 1})
		require.NotNil(t, err)
		assert.Equal(t, "Undefined variable 'ghost'.", err.Message)
		_, ok := env.values["ghost"]
		assert.False(t, ok)
	})
}
