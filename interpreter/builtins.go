// ==============================================================================================
// FILE: interpreter/builtins.go
// ==============================================================================================
// PACKAGE: interpreter
// PURPOSE: Native functions seeded into the global environment before any user code runs.
// ==============================================================================================

package interpreter

import (
	"time"

	"plox/object"
)

// registerBuiltins defines every native function plox programs can call without
// declaring it first.
func registerBuiltins(globals *object.Environment) {
	globals.Define("clock", &object.Builtin{
		Name: "clock",
		Arit: 0,
		Fn: func(args []object.Object) object.Object {
			return &object.Number{Value: float64(time.Now().UnixNano()) / float64(time.Second)}
		},
	})
}
