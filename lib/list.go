package lib

import (
	"fmt"
	"strings"

	tg "github.com/AltSysrq/tglng"
)

// Lists are whitespace-separated items with balanced-bracket quoting,
// riding directly on the default tokeniser (grounded on list.cxx, which
// itself delegates to defaultTokeniser/defaultTokeniserPreprocessor with
// escape decoding enabled).
const listTokeniserOptions = "e"

func listEscape(item string) string {
	var hasSpace, hasParen, hasBrack, hasBrace, hasSlash bool
	for _, r := range item {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			hasSpace = true
		case r == '(' || r == ')':
			hasParen = true
		case r == '[' || r == ']':
			hasBrack = true
		case r == '{' || r == '}':
			hasBrace = true
		case r == '\\':
			hasSlash = true
		}
	}

	escapeBraces := hasParen && hasBrack && hasBrace

	str := item
	if hasSlash || escapeBraces {
		var b strings.Builder
		for _, r := range str {
			if r == '\\' {
				b.WriteByte('\\')
			} else if (r == '{' || r == '}') && escapeBraces {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		str = b.String()
	}

	if hasSpace || hasParen || hasBrack || hasBrace {
		switch {
		case !hasParen:
			str = "(" + str + ")"
		case !hasBrack:
			str = "[" + str + "]"
		default:
			str = "{" + str + "}"
		}
	}
	return str
}

func listAppend(list, item string) string {
	escaped := listEscape(item)
	if list == "" {
		return escaped
	}
	return list + " " + escaped
}

// listCar peels the first item off a list, returning it and the
// remainder. ok is false once the list is exhausted.
func listCar(list string, interp *tg.Interpreter) (item, remainder string, ok bool) {
	pre := tg.DefaultTokeniserPreprocessor(list, listTokeniserOptions, interp)
	if pre == "" {
		return "", "", false
	}
	item, remainder = tg.DefaultTokenise(pre, listTokeniserOptions, interp)
	return item, remainder, true
}

func init() {
	tg.RegisterGlobal("list-escape", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			out[0] = listEscape(in[0])
			return true
		},
	}))

	tg.RegisterGlobal("list-append", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			out[0] = listAppend(in[0], in[1])
			return true
		},
	}))

	// list-car(list) -> (item, remainder); out[0] is the item, out[1] the
	// remaining list. An empty list is reported as a failure.
	tg.RegisterGlobal("list-car", tg.NewFunctionParser(&tg.Function{
		OutArity: 2, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			item, rest, ok := listCar(in[0], interp)
			if !ok {
				fmt.Fprintln(tg.DiagOut(), "list-car: empty list")
				return false
			}
			out[0] = item
			out[1] = rest
			return true
		},
	}))

	tg.RegisterGlobal("list-length", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			n := 0
			rest := in[0]
			for {
				_, next, ok := listCar(rest, interp)
				if !ok {
					break
				}
				n++
				rest = next
			}
			out[0] = tg.IntToStr(n)
			return true
		},
	}))

	tg.RegisterGlobal("list-ix", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			var idx int
			if !tg.ParseInteger(&idx, []rune(in[1]), 0, nil) || idx < 0 {
				return false
			}
			rest := in[0]
			for i := 0; ; i++ {
				item, next, ok := listCar(rest, interp)
				if !ok {
					return false
				}
				if i == idx {
					out[0] = item
					return true
				}
				rest = next
			}
		},
	}))

	tg.RegisterGlobal("list-map", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			fn := tg.GetFunction(interp, in[0], nil, 0, tg.ExactArity(1, 1))
			if fn == nil {
				return false
			}
			result := ""
			rest := in[1]
			for {
				item, next, ok := listCar(rest, interp)
				if !ok {
					break
				}
				mapped := make([]string, 1)
				if !fn.Exec(mapped, []string{item}, interp, fn.Parm) {
					return false
				}
				result = listAppend(result, mapped[0])
				rest = next
			}
			out[0] = result
			return true
		},
	}))

	tg.RegisterGlobal("list-filter", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			fn := tg.GetFunction(interp, in[0], nil, 0, tg.ExactArity(1, 1))
			if fn == nil {
				return false
			}
			result := ""
			rest := in[1]
			for {
				item, next, ok := listCar(rest, interp)
				if !ok {
					break
				}
				keep := make([]string, 1)
				if !fn.Exec(keep, []string{item}, interp, fn.Parm) {
					return false
				}
				if tg.ParseBool(keep[0]) {
					result = listAppend(result, item)
				}
				rest = next
			}
			out[0] = result
			return true
		},
	}))

	tg.RegisterGlobal("list-fold", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 3,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			fn := tg.GetFunction(interp, in[0], nil, 0, tg.ExactArity(1, 2))
			if fn == nil {
				return false
			}
			acc := in[2]
			rest := in[1]
			for {
				item, next, ok := listCar(rest, interp)
				if !ok {
					break
				}
				next0 := make([]string, 1)
				if !fn.Exec(next0, []string{item, acc}, interp, fn.Parm) {
					return false
				}
				acc = next0[0]
				rest = next
			}
			out[0] = acc
			return true
		},
	}))

	// list-zip(a, b): pairs elements positionally, each pair itself an
	// escaped two-item list; stops at the shorter input.
	tg.RegisterGlobal("list-zip", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			result := ""
			ra, rb := in[0], in[1]
			for {
				ia, na, oka := listCar(ra, interp)
				ib, nb, okb := listCar(rb, interp)
				if !oka || !okb {
					break
				}
				pair := listAppend(listAppend("", ia), ib)
				result = listAppend(result, pair)
				ra, rb = na, nb
			}
			out[0] = result
			return true
		},
	}))

	// list-unzip(list-of-pairs): reverses list-zip, producing two lists
	// joined by a single space as a two-item list itself (out[0] is that
	// combined list; callers split it with list-car).
	tg.RegisterGlobal("list-unzip", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			var firsts, seconds string
			rest := in[0]
			for {
				pair, next, ok := listCar(rest, interp)
				if !ok {
					break
				}
				a, b, ok := listCar(pair, interp)
				if !ok {
					return false
				}
				bItem, _, ok := listCar(b, interp)
				if !ok {
					return false
				}
				firsts = listAppend(firsts, a)
				seconds = listAppend(seconds, bItem)
				rest = next
			}
			out[0] = listAppend(listAppend("", firsts), seconds)
			return true
		},
	}))

	// list-flatten(list-of-lists): concatenates every element's own items
	// into one flat list.
	tg.RegisterGlobal("list-flatten", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			result := ""
			rest := in[0]
			for {
				sub, next, ok := listCar(rest, interp)
				if !ok {
					break
				}
				subRest := sub
				for {
					item, subNext, ok := listCar(subRest, interp)
					if !ok {
						break
					}
					result = listAppend(result, item)
					subRest = subNext
				}
				rest = next
			}
			out[0] = result
			return true
		},
	}))

	// list-assign(regs, list): writes each item into the register named by
	// the corresponding character of regs; extra items or registers are
	// left alone.
	tg.RegisterGlobal("list-assign", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			regs := []rune(in[0])
			rest := in[1]
			for _, r := range regs {
				item, next, ok := listCar(rest, interp)
				if !ok {
					break
				}
				interp.SetRegister(r, item)
				rest = next
			}
			out[0] = ""
			return true
		},
	}))

	// list-convert(fromOptions, list): re-tokenises list under a different
	// tokeniser-options spec and re-emits it as a canonical list.
	tg.RegisterGlobal("list-convert", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 2,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			options := in[0]
			result := ""
			rest := tg.DefaultTokeniserPreprocessor(in[1], options, interp)
			for rest != "" {
				item, next := tg.DefaultTokenise(rest, options, interp)
				result = listAppend(result, item)
				rest = next
			}
			out[0] = result
			return true
		},
	}))
}
