package lib

import (
	"fmt"

	tg "github.com/AltSysrq/tglng"
)

// arithBinOp backs the num-* builtins (grounded on arithmetic.cxx's
// ArithmeticCommand, generalized from its per-op template onto the
// Function facet's uniform calling convention): parse both operands as
// integers, apply op, render the result back to decimal.
func arithBinOp(op func(l, r int) int, div bool) func(out, in []string, interp *tg.Interpreter, parm uint) bool {
	return func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		var l, r int
		if !tg.ParseInteger(&l, []rune(in[0]), 0, nil) {
			fmt.Fprintln(tg.DiagOut(), tg.TypeError("integer operand", in[0]))
			return false
		}
		if !tg.ParseInteger(&r, []rune(in[1]), 0, nil) {
			fmt.Fprintln(tg.DiagOut(), tg.TypeError("integer operand", in[1]))
			return false
		}
		if div && r == 0 {
			fmt.Fprintln(tg.DiagOut(), "divide by zero")
			return false
		}
		out[0] = tg.IntToStr(op(l, r))
		return true
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func registerArith(name string, op func(l, r int) int, div bool) {
	fn := &tg.Function{OutArity: 1, InArity: 2, Exec: arithBinOp(op, div)}
	tg.RegisterGlobal(name, tg.NewFunctionParser(fn))
}

func init() {
	registerArith("num-add", func(l, r int) int { return l + r }, false)
	registerArith("num-sub", func(l, r int) int { return l - r }, false)
	registerArith("num-mul", func(l, r int) int { return l * r }, false)
	registerArith("num-div", func(l, r int) int { return l / r }, true)
	registerArith("num-mod", func(l, r int) int { return l % r }, true)
	registerArith("num-equ", func(l, r int) int { return boolInt(l == r) }, false)
	registerArith("num-neq", func(l, r int) int { return boolInt(l != r) }, false)
	registerArith("num-slt", func(l, r int) int { return boolInt(l < r) }, false)
	registerArith("num-sgt", func(l, r int) int { return boolInt(l > r) }, false)
	registerArith("num-leq", func(l, r int) int { return boolInt(l <= r) }, false)
	registerArith("num-geq", func(l, r int) int { return boolInt(l >= r) }, false)
}
