package lib

import (
	"strings"

	tg "github.com/AltSysrq/tglng"
)

// str-equ/-slt/-sgt/-str/-ix/-is/-len: all string builtins, folded onto the
// Function facet's (out←in) calling convention (grounded on strings.cxx's
// StringComparison/StringSearch/StringIndex, generalized the same way
// arithmetic.go generalizes ArithmeticCommand).
func init() {
	cmp := func(name string, f func(l, r string) bool) {
		fn := &tg.Function{OutArity: 1, InArity: 2, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			out[0] = boolStr(f(in[0], in[1]))
			return true
		}}
		tg.RegisterGlobal(name, tg.NewFunctionParser(fn))
	}
	cmp("str-equ", func(l, r string) bool { return l == r })
	cmp("str-slt", func(l, r string) bool { return l < r })
	cmp("str-sgt", func(l, r string) bool { return l > r })

	strStr := &tg.Function{OutArity: 1, InArity: 2, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		needle, haystack := in[0], in[1]
		ix := strings.Index(haystack, needle)
		if ix < 0 {
			out[0] = ""
		} else {
			out[0] = tg.IntToStr(ix)
		}
		return true
	}}
	tg.RegisterGlobal("str-str", tg.NewFunctionParser(strStr))

	// str-ix(string, begin, end): end may be "" for an implicit one-character
	// slice. Negative indices wrap per the resolved clamp rule: begin relative
	// to size, end relative to size+1 (so end=-0 reaches the last character).
	strIx := &tg.Function{OutArity: 1, InArity: 3, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		str := in[0]
		runes := []rune(str)
		size := len(runes)

		var ib int
		if !tg.ParseInteger(&ib, []rune(in[1]), 0, nil) {
			return false
		}
		var ie int
		if in[2] == "" {
			ie = ib + 1
		} else if !tg.ParseInteger(&ie, []rune(in[2]), 0, nil) {
			return false
		}

		if ib < 0 {
			ib += size
		}
		if ie < 0 {
			ie += size + 1
		}
		if ib < 0 {
			ib = 0
		}
		if ib > size {
			ib = size
		}
		if ie < ib {
			ie = ib
		}
		if ie > size {
			ie = size
		}

		out[0] = string(runes[ib:ie])
		return true
	}}
	tg.RegisterGlobal("str-ix", tg.NewFunctionParser(strIx))

	// str-is(class, string): reports whether every character of string
	// belongs to class (d=digit, a=alpha, w=word, s=space, u=upper, l=lower).
	strIs := &tg.Function{OutArity: 1, InArity: 2, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		class, s := in[0], in[1]
		if class == "" || s == "" {
			out[0] = "0"
			return true
		}
		var test func(rune) bool
		switch class[0] {
		case 'd':
			test = func(r rune) bool { return r >= '0' && r <= '9' }
		case 'a':
			test = func(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
		case 'w':
			test = func(r rune) bool {
				return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
			}
		case 's':
			test = func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' }
		case 'u':
			test = func(r rune) bool { return r >= 'A' && r <= 'Z' }
		case 'l':
			test = func(r rune) bool { return r >= 'a' && r <= 'z' }
		default:
			out[0] = "0"
			return true
		}
		for _, r := range s {
			if !test(r) {
				out[0] = "0"
				return true
			}
		}
		out[0] = "1"
		return true
	}}
	tg.RegisterGlobal("str-is", tg.NewFunctionParser(strIs))

	strLen := &tg.Function{OutArity: 1, InArity: 1, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		out[0] = tg.IntToStr(len([]rune(in[0])))
		return true
	}}
	tg.RegisterGlobal("str-len", tg.NewFunctionParser(strLen))
}
