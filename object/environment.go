// ==============================================================================================
// FILE: object/environment.go
// ==============================================================================================
// PACKAGE: object
// PURPOSE: Implements the environment chain: the memory model backing variable storage,
//          lexical scoping, and closure capture. A block or function call gets its own
//          Environment linked to the scope enclosing it; a Function holds a shared reference
//          to the environment active at its declaration, which is what makes closures work.
// ==============================================================================================

package object

import (
	"plox/diagnostics"
	"plox/token"
)

// Environment is a single scope: a name-to-value map plus a link to the enclosing scope.
type Environment struct {
	values    map[string]Object
	enclosing *Environment
}

// NewEnvironment creates a fresh global environment with no enclosing scope.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a child scope of outer. Used when entering a block or
// invoking a function.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.enclosing = outer
	return env
}

// Define always creates or replaces a binding in the current scope. Re-declaring a name
// already bound in this same scope is permitted and simply overwrites it.
func (e *Environment) Define(name string, value Object) {
	e.values[name] = value
}

// Get resolves name against the current scope, then each enclosing scope in turn. It
// fails with "Undefined variable" anchored at the lookup token's line if no scope in the
// chain binds the name.
func (e *Environment) Get(name token.Token) (Object, *diagnostics.RuntimeError) {
	if val, ok := e.values[name.Lexeme]; ok {
		return val, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, diagnostics.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign writes value to the nearest scope in the chain that already binds name. It
// never creates a new binding: assigning to a name no scope binds is an error, by
// presence of the name, not by its current value's truthiness (a variable currently
// holding nil/false/0/"" is still assignable without walking past it).
func (e *Environment) Assign(name token.Token, value Object) *diagnostics.RuntimeError {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, value)
	}
	return diagnostics.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}
