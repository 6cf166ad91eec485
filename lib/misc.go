package lib

import (
	"fmt"

	tg "github.com/AltSysrq/tglng"
)

// noOpCommand always yields "". Its parser also exposes a (1←0) Function
// facet.
type noOpCommand struct{ left tg.Command }

func (c *noOpCommand) Left() tg.Command { return c.left }
func (c *noOpCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	*dst = ""
	return true
}

type noOpParser struct{}

func (noOpParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	*offset++
	return &noOpCommand{left}, tg.ContinueParsing
}

func (noOpParser) Function() *tg.Function {
	return &tg.Function{
		OutArity: 1, InArity: 0,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			out[0] = ""
			return true
		},
	}
}

// metaCommand emits the current escape character literally, grounded on
// fundamental.cxx's SelfInsertCommand but capturing the interpreter's
// escape character at parse time instead of a literal rune from the text.
type metaCommand struct {
	left  tg.Command
	value string
}

func (c *metaCommand) Left() tg.Command { return c.left }
func (c *metaCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	*dst = c.value
	return true
}

type metaParser struct{}

func (metaParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	*offset++
	return &metaCommand{left, string(interp.Escape)}, tg.ContinueParsing
}

// setMetaParser reads the next character and installs it as the new
// escape character; it contributes nothing to the command chain.
type setMetaParser struct{}

func (setMetaParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var newEscape rune
	if !ap.Require(tg.Seq(ap, ap.H(), ap.HInto(&newEscape))) {
		return left, tg.ParseError
	}
	interp.Escape = newEscape
	return left, tg.ContinueParsing
}

// ignoreCommand evaluates its argument section for side effects only; its
// own contribution is always "".
type ignoreCommand struct {
	left tg.Command
	body tg.Section
}

func (c *ignoreCommand) Left() tg.Command { return c.left }
func (c *ignoreCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	var discarded string
	if !c.body.Exec(&discarded, interp) {
		return false
	}
	*dst = ""
	return true
}

type ignoreParser struct{}

func (ignoreParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var body tg.Section
	if !ap.Require(tg.Seq(ap, ap.H(), ap.S(&body))) {
		return left, tg.ParseError
	}
	return &ignoreCommand{left, body}, tg.ContinueParsing
}

// eval re-parses and evaluates a string value as new source text, in
// Literal mode, and yields the resulting output.
func init() {
	tg.RegisterGlobal("eval", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			var tree tg.Command
			text := []rune(in[0])
			offset := 0
			if res := interp.ParseAllRunes(&tree, text, &offset, tg.ParseModeLiteral); res == tg.ParseError {
				return false
			}
			return interp.Exec(&out[0], tree)
		},
	}))

	// error(msg) reports msg to the diagnostic stream and fails execution.
	tg.RegisterGlobal("error", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			fmt.Fprintln(tg.DiagOut(), in[0])
			return false
		},
	}))

	// warn(msg) reports msg but still succeeds, yielding "".
	tg.RegisterGlobal("warn", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			fmt.Fprintln(tg.DiagOut(), in[0])
			out[0] = ""
			return true
		},
	}))

	// character(code) converts an integer codepoint into a one-rune string.
	tg.RegisterGlobal("character", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			var code int
			if !tg.ParseInteger(&code, []rune(in[0]), 0, nil) {
				fmt.Fprintf(tg.DiagOut(), "character: invalid code %q\n", in[0])
				return false
			}
			out[0] = string(rune(code))
			return true
		},
	}))

	// character-code(str) converts the first rune of str into its decimal
	// codepoint.
	tg.RegisterGlobal("character-code", tg.NewFunctionParser(&tg.Function{
		OutArity: 1, InArity: 1,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			runes := []rune(in[0])
			if len(runes) == 0 {
				fmt.Fprintln(tg.DiagOut(), "character-code: empty string")
				return false
			}
			out[0] = tg.IntToStr(int(runes[0]))
			return true
		},
	}))

	tg.RegisterGlobal("no-op", noOpParser{})
	tg.RegisterGlobal("meta", metaParser{})
	tg.RegisterGlobal("set-meta", setMetaParser{})
	tg.RegisterGlobal("ignore", ignoreParser{})
}
