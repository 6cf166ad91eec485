package lib

import (
	"strings"
	"unicode"

	tg "github.com/AltSysrq/tglng"
)

// Magic case conversion (grounded on magic_case.cxx): a two-pass process.
// The first pass scans the input for hints (lower present, upper present,
// separators present); the second walks character by character with a
// small state machine that decides, for each letter/digit, whether it
// starts a new token, starts a new word within a token, or continues the
// current word, then applies the matching case function.
const (
	hintLC  = 1 << 0
	hintUC  = 1 << 1
	hintSep = 1 << 4
)

func isMagicSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || r == '-'
}

type caseFn func(rune) rune

func toUpperFn(r rune) rune { return unicode.ToUpper(r) }
func toLowerFn(r rune) rune { return unicode.ToLower(r) }

type delimitedConfig struct {
	delimiter         rune // 0 means none
	replaceSeparators bool
	tokenInit         caseFn
	wordInit          caseFn
	wordRest          caseFn
}

type delimitedState struct {
	startToken, startWord          bool
	prevUpper, prevLower, prevDigit bool
}

func newDelimitedState() delimitedState {
	return delimitedState{startToken: true}
}

// step converts one character, mutating state for the next call, and
// returns the (possibly multi-rune, when a delimiter is inserted) output.
func (cfg delimitedConfig) step(ch rune, hint int, st *delimitedState) string {
	wasU := unicode.IsUpper(ch)
	wasD := unicode.IsDigit(ch)

	if wasD || unicode.IsLetter(ch) {
		var out rune
		prefix := ""
		switch {
		case st.startToken:
			out = cfg.tokenInit(ch)
		case (st.prevLower && (wasU || wasD) && hint&hintSep == 0) ||
			(st.prevDigit && !wasD && hint&hintSep == 0) ||
			st.startWord:
			out = cfg.wordInit(ch)
			if cfg.delimiter != 0 && !st.startWord {
				prefix = string(cfg.delimiter)
			}
		default:
			out = cfg.wordRest(ch)
		}

		*st = delimitedState{prevUpper: wasU, prevDigit: wasD && !wasU, prevLower: !wasU && !wasD}
		if !wasU && !wasD {
			// Non-upper, non-digit letters count as lowercase continuation,
			// same as the original (it folds "neither upper nor lower" into
			// the lowercase-follows state).
			*st = delimitedState{prevLower: true}
		}
		return prefix + string(out)
	}

	if isMagicSeparator(ch) {
		if !cfg.replaceSeparators {
			return string(ch)
		}
		*st = delimitedState{startWord: true}
		if cfg.delimiter != 0 {
			return string(cfg.delimiter)
		}
		return ""
	}

	*st = delimitedState{startToken: true}
	return string(ch)
}

func (cfg delimitedConfig) convert(in string) string {
	var hint int
	for _, r := range in {
		if unicode.IsLower(r) {
			hint |= hintLC
		}
		if unicode.IsUpper(r) {
			hint |= hintUC
		}
		if isMagicSeparator(r) {
			hint |= hintSep
		}
	}

	var b strings.Builder
	st := newDelimitedState()
	for _, r := range in {
		b.WriteString(cfg.step(r, hint, &st))
	}
	return b.String()
}

func registerMagicCase(name string, f func(string) string) {
	fn := &tg.Function{OutArity: 1, InArity: 1, Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
		out[0] = f(in[0])
		return true
	}}
	tg.RegisterGlobal(name, tg.NewFunctionParser(fn))
}

func simpleCase(f caseFn) func(string) string {
	return func(s string) string {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(f(r))
		}
		return b.String()
	}
}

func init() {
	registerMagicCase("str-tolower", simpleCase(toLowerFn))
	registerMagicCase("str-toupper", simpleCase(toUpperFn))

	registerMagicCase("str-totitle", delimitedConfig{' ', false, toUpperFn, toUpperFn, toLowerFn}.convert)
	registerMagicCase("str-tosent", delimitedConfig{' ', false, toUpperFn, toLowerFn, toLowerFn}.convert)
	registerMagicCase("str-tocamel", delimitedConfig{0, true, toLowerFn, toUpperFn, toLowerFn}.convert)
	registerMagicCase("str-topascal", delimitedConfig{0, true, toUpperFn, toUpperFn, toLowerFn}.convert)
	registerMagicCase("str-toscream", delimitedConfig{'_', true, toUpperFn, toUpperFn, toUpperFn}.convert)
	registerMagicCase("str-tocstyle", delimitedConfig{'_', true, toLowerFn, toLowerFn, toLowerFn}.convert)
	registerMagicCase("str-tocaspal", delimitedConfig{'_', true, toUpperFn, toUpperFn, toLowerFn}.convert)
	registerMagicCase("str-tolisp", delimitedConfig{'-', true, toLowerFn, toLowerFn, toLowerFn}.convert)
	registerMagicCase("str-tocobol", delimitedConfig{'-', true, toUpperFn, toUpperFn, toUpperFn}.convert)
}
