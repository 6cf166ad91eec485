package lib

import tg "github.com/AltSysrq/tglng"

// logical-and/-or/-xor/-not back onto parseBool and the Function facet
// (grounded on logical.cxx's LogicalCommand). The original short-circuits
// the right operand for `and`/`or`; the Function facet's calling
// convention evaluates every argument before the function runs, so that
// short-circuit is not observable here — both operands are always
// evaluated, matching how every other (1←2)/(1←1) builtin behaves.
func init() {
	bin := func(name string, f func(l, r bool) bool) {
		fn := &tg.Function{OutArity: 1, InArity: 2, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			out[0] = boolStr(f(tg.ParseBool(in[0]), tg.ParseBool(in[1])))
			return true
		}}
		tg.RegisterGlobal(name, tg.NewFunctionParser(fn))
	}

	bin("logical-and", func(l, r bool) bool { return l && r })
	bin("logical-or", func(l, r bool) bool { return l || r })
	bin("logical-xor", func(l, r bool) bool { return l != r })

	not := &tg.Function{OutArity: 1, InArity: 1, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		out[0] = boolStr(!tg.ParseBool(in[0]))
		return true
	}}
	tg.RegisterGlobal("logical-not", tg.NewFunctionParser(not))
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
