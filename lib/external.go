package lib

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	tg "github.com/AltSysrq/tglng"
)

// getenv/setenv/exec, grounded on external.cxx's cmdGetenv/cmdSetenv/
// cmdExec/invoke_external — translated onto os.Getenv/os.Setenv/os/exec,
// which do the UTF-8-native work the original hand-rolled with
// codecvt/fork/exec/tmpfile.
func init() {
	tg.RegisterGlobal("getenv", tg.NewFunctionParser(&tg.Function{
		OutArity: 2, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			if v, ok := os.LookupEnv(in[0]); ok {
				out[0] = v
				out[1] = "1"
			} else {
				out[0] = ""
				out[1] = "0"
			}
			return true
		},
	}))

	tg.RegisterGlobal("setenv", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			if err := os.Setenv(in[0], in[1]); err != nil {
				fmt.Fprintf(tg.DiagOut(), "could not set %s to %s: %v\n", in[0], in[1], err)
				return false
			}
			out[0] = ""
			return true
		},
	}))

	// exec(cmd, stdin, ignoreStatus) -> (stdout, exitStatus). cmd runs
	// through $SHELL -c (or /bin/sh), matching the original's invocation
	// convention; a non-zero exit fails the command unless ignoreStatus
	// parses true.
	tg.RegisterGlobal("exec", tg.NewFunctionParser(&tg.Function{
		OutArity: 2, InArity: 3,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			shell := os.Getenv("SHELL")
			if shell == "" {
				shell = "/bin/sh"
			}

			cmd := exec.Command(shell, "-c", in[0])
			cmd.Stdin = bytes.NewReader([]byte(in[1]))
			var stdout bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = os.Stderr

			err := cmd.Run()
			exitStatus := 0
			if exitErr, ok := err.(*exec.ExitError); ok {
				exitStatus = exitErr.ExitCode()
			} else if err != nil {
				fmt.Fprintf(tg.DiagOut(), "could not run %q: %v\n", in[0], err)
				return false
			}

			if exitStatus != 0 && !tg.ParseBool(in[2]) {
				fmt.Fprintf(tg.DiagOut(), "command %q returned exit status %d\n", in[0], exitStatus)
				return false
			}

			out[0] = stdout.String()
			out[1] = tg.IntToStr(exitStatus)
			return true
		},
	}))
}
