package lib

import (
	"fmt"
	"regexp"
	"strings"

	tg "github.com/AltSysrq/tglng"
)

// Regex support rides on Go's regexp package (RE2), surfaced through the
// §6 Regex interface contract: rx-support reports the backend name,
// exactly as regex_ops.cxx's rxSupport reports the compiled-in engine.
// The remaining builtins (rx-match/-repl/-repl-each, and the -inline
// spellings, which are aliases taking the same function-call arguments as
// their non-inline forms) share one compile helper across five names.
func compileRegex(pattern, options string) (*regexp.Regexp, error) {
	prefix := ""
	if strings.ContainsRune(options, 'i') {
		prefix += "i"
	}
	if strings.ContainsRune(options, 'l') {
		prefix += "m"
	}
	if prefix != "" {
		pattern = "(?" + prefix + ")" + pattern
	}
	return regexp.Compile(pattern)
}

func init() {
	tg.RegisterGlobal("rx-support", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 0,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			out[0] = "regexp (RE2)"
			return true
		},
	}))

	matchFn := func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		pattern, options, str := in[0], in[1], in[2]
		re, err := compileRegex(pattern, options)
		if err != nil {
			fmt.Fprintf(tg.DiagOut(), "invalid regex %q: %v\n", pattern, err)
			return false
		}
		out[0] = boolStr(re.MatchString(str))
		return true
	}
	tg.RegisterGlobal("rx-match", tg.NewFunctionParser(&tg.Function{OutArity: 1, InArity: 3, Exec: matchFn}))
	tg.RegisterGlobal("rx-match-inline", tg.NewFunctionParser(&tg.Function{OutArity: 1, InArity: 3, Exec: matchFn}))

	replFn := func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		pattern, options, repl, str := in[0], in[1], in[2], in[3]
		re, err := compileRegex(pattern, options)
		if err != nil {
			fmt.Fprintf(tg.DiagOut(), "invalid regex %q: %v\n", pattern, err)
			return false
		}
		loc := re.FindStringIndex(str)
		if loc == nil {
			out[0] = str
			return true
		}
		out[0] = str[:loc[0]] + re.ReplaceAllString(str[loc[0]:loc[1]], repl) + str[loc[1]:]
		return true
	}
	tg.RegisterGlobal("rx-repl", tg.NewFunctionParser(&tg.Function{OutArity: 1, InArity: 4, Exec: replFn}))
	tg.RegisterGlobal("rx-replace-inline", tg.NewFunctionParser(&tg.Function{OutArity: 1, InArity: 4, Exec: replFn}))

	tg.RegisterGlobal("rx-repl-each", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 4,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			pattern, options, repl, str := in[0], in[1], in[2], in[3]
			re, err := compileRegex(pattern, options)
			if err != nil {
				fmt.Fprintf(tg.DiagOut(), "invalid regex %q: %v\n", pattern, err)
				return false
			}
			out[0] = re.ReplaceAllString(str, repl)
			return true
		},
	}))
}
