package lib

import (
	"fmt"
	"os"
	"path/filepath"

	tg "github.com/AltSysrq/tglng"
)

// Filesystem builtins, grounded on fs.cxx's fs_ls (glob(3) wrapped into a
// list) and generalized to the rest of §4.I's FS row using Go's os/
// path-filepath stack in place of glob(3)/fopen.
func init() {
	tg.RegisterGlobal("ls", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			matches, err := filepath.Glob(in[0])
			if err != nil {
				fmt.Fprintf(tg.DiagOut(), "invalid glob pattern %q: %v\n", in[0], err)
				return false
			}
			result := ""
			for _, m := range matches {
				result = listAppend(result, m)
			}
			out[0] = result
			return true
		},
	}))

	tg.RegisterGlobal("read", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			data, err := os.ReadFile(in[0])
			if err != nil {
				fmt.Fprintf(tg.DiagOut(), "could not read %s: %v\n", in[0], err)
				return false
			}
			out[0] = string(data)
			return true
		},
	}))
	tg.RegisterGlobal("read-binary", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			data, err := os.ReadFile(in[0])
			if err != nil {
				fmt.Fprintf(tg.DiagOut(), "could not read %s: %v\n", in[0], err)
				return false
			}
			out[0] = string(data)
			return true
		},
	}))

	writeFile := func(flag int) func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		return func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			f, err := os.OpenFile(in[0], flag, 0644)
			if err != nil {
				fmt.Fprintf(tg.DiagOut(), "could not open %s: %v\n", in[0], err)
				return false
			}
			defer f.Close()
			if _, err := f.WriteString(in[1]); err != nil {
				fmt.Fprintf(tg.DiagOut(), "could not write %s: %v\n", in[0], err)
				return false
			}
			out[0] = ""
			return true
		}
	}

	tg.RegisterGlobal("write", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2, Exec: writeFile(os.O_WRONLY | os.O_CREATE | os.O_TRUNC),
	}))
	tg.RegisterGlobal("write-binary", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2, Exec: writeFile(os.O_WRONLY | os.O_CREATE | os.O_TRUNC),
	}))
	tg.RegisterGlobal("append", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2, Exec: writeFile(os.O_WRONLY | os.O_CREATE | os.O_APPEND),
	}))
	tg.RegisterGlobal("append-binary", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2, Exec: writeFile(os.O_WRONLY | os.O_CREATE | os.O_APPEND),
	}))
}
