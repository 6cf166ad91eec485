package tglng

import (
	"fmt"
	"os"
)

// diagOut is where Interpreter.Error and the builtin library's execution
// diagnostics go. Separated from os.Stderr directly so tests can redirect
// it.
var diagOut = os.Stderr

// DiagOut exposes diagOut to the builtin command library, which reports
// its own execution-time errors (not parse-time, which go through
// Interpreter.Error) the same way the teacher's wcerr-based builtins do.
func DiagOut() *os.File { return diagOut }

// ArgError reports a builtin invoked with the wrong number of arguments.
// Mirrors the shape of the teacher's errors.go, adapted to TglNG's
// string-in/string-out convention instead of ts's object model.
func ArgError(got, want int) error {
	return fmt.Errorf("wrong number of arguments: got %d, want %d", got, want)
}

// TypeError reports a value that failed a type-like check (e.g. an
// argument to an arithmetic builtin that didn't parse as an integer).
func TypeError(what, value string) error {
	return fmt.Errorf("invalid %s: %q", what, value)
}

// Undefined reports a lookup miss: an unbound register, an unknown long
// name, or (in the driver layer) an environment a config path depends on
// that was never set.
var Undefined = fmt.Errorf("undefined")
