package lib

import (
	"fmt"

	tg "github.com/AltSysrq/tglng"
)

// ifCommand backs `if`, grounded on control.cxx's If.
type ifCommand struct {
	left                  tg.Command
	condition, then, otherwise tg.Section
}

func (c *ifCommand) Left() tg.Command { return c.left }

func (c *ifCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	var cond string
	if !c.condition.Exec(&cond, interp) {
		return false
	}
	if tg.ParseBool(cond) {
		return c.then.Exec(dst, interp)
	}
	return c.otherwise.Exec(dst, interp)
}

type ifParser struct{}

func (ifParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var condition, then, otherwise tg.Section
	header := tg.Seq(ap, ap.H(),
		tg.Seq(ap, ap.S(&condition), tg.Seq(ap, ap.S(&then), tg.Opt(ap.S(&otherwise)))))
	if !ap.Require(header) {
		return left, tg.ParseError
	}
	return &ifCommand{left, condition, then, otherwise}, tg.ContinueParsing
}

// falseCoalesceCommand backs `false-coalesce`: evaluate lhs; if it parses
// as boolean-false, evaluate and return rhs instead.
type falseCoalesceCommand struct {
	left     tg.Command
	lhs, rhs tg.Section
}

func (c *falseCoalesceCommand) Left() tg.Command { return c.left }

func (c *falseCoalesceCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	if !c.lhs.Exec(dst, interp) {
		return false
	}
	if tg.ParseBool(*dst) {
		return true
	}
	return c.rhs.Exec(dst, interp)
}

type falseCoalesceParser struct{}

func (falseCoalesceParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var lhs, rhs tg.Section
	if !ap.Require(tg.Seq(ap, ap.H(), tg.Seq(ap, ap.S(&lhs), ap.S(&rhs)))) {
		return left, tg.ParseError
	}
	return &falseCoalesceCommand{left, lhs, rhs}, tg.ContinueParsing
}

// forIntegerCommand backs `for-integer`/`for-int-print`, grounded on
// control.cxx's ForInteger. body.Left runs once before the loop and again
// at the head of every iteration (faithfully preserved from the original,
// however odd that reads); body.Right is the per-iteration trailer.
type forIntegerCommand struct {
	left                   tg.Command
	emitCounterImplicitly  bool
	reg                    rune
	init, limit, increment tg.Command
	body                   tg.Section
}

func (c *forIntegerCommand) Left() tg.Command { return c.left }

func (c *forIntegerCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	*dst = ""

	var str string
	if !interp.Exec(&str, c.body.Left()) {
		return false
	}
	*dst += str

	slim := 10
	if c.limit != nil {
		if !interp.Exec(&str, c.limit) {
			return false
		}
		if !tg.ParseInteger(&slim, []rune(str), 0, nil) {
			fmt.Fprintf(tg.DiagOut(), "invalid integer for for-integer limit: %s\n", str)
			return false
		}
	}

	sinit := 0
	if c.init != nil {
		if !interp.Exec(&str, c.init) {
			return false
		}
		if !tg.ParseInteger(&sinit, []rune(str), 0, nil) {
			fmt.Fprintf(tg.DiagOut(), "invalid integer for for-integer init: %s\n", str)
			return false
		}
		interp.SetRegister(c.reg, str)
	} else {
		interp.SetRegister(c.reg, "0")
	}

	var sinc int
	if c.increment != nil {
		if !interp.Exec(&str, c.increment) {
			return false
		}
		if !tg.ParseInteger(&sinc, []rune(str), 0, nil) || sinc == 0 {
			fmt.Fprintf(tg.DiagOut(), "invalid integer for for-integer increment: %s\n", str)
			return false
		}
	} else if sinit <= slim {
		sinc = 1
	} else {
		sinc = -1
	}

	for curr := sinit; (sinc > 0 && curr < slim) || (sinc < 0 && curr > slim); {
		if !interp.Exec(&str, c.body.Left()) {
			return false
		}
		*dst += str

		if c.emitCounterImplicitly {
			v, ok := interp.LookupRegister(c.reg)
			if !ok {
				fmt.Fprintf(tg.DiagOut(), "for-integer loop register %c was unset during execution\n", c.reg)
				return false
			}
			*dst += v
		}

		if !interp.Exec(&str, c.body.Right()) {
			return false
		}
		*dst += str

		v, ok := interp.LookupRegister(c.reg)
		if !ok {
			fmt.Fprintf(tg.DiagOut(), "for-integer loop register %c was unset during execution\n", c.reg)
			return false
		}
		if !tg.ParseInteger(&curr, []rune(v), 0, nil) {
			fmt.Fprintf(tg.DiagOut(), "for-integer loop register %c was set to invalid integer %s during execution\n", c.reg, v)
			return false
		}
		curr += sinc
		interp.SetRegister(c.reg, tg.IntToStr(curr))
	}

	return true
}

// forIntegerParser backs both `for-integer` and `for-int-print`
// (emitCounterImplicitly distinguishes them); accepts 0-4 leading
// arguments (limit, register, init, increment) before the body section.
type forIntegerParser struct {
	emitCounterImplicitly bool
}

func (p forIntegerParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)

	var limit, init, inc tg.Command
	reg := 'i'
	var body tg.Section

	l3 := tg.Alt(ap.S(&body), tg.Seq(ap, ap.A(&inc), ap.S(&body)))
	l2 := tg.Alt(ap.S(&body), tg.Seq(ap, ap.A(&init), l3))
	l1 := tg.Alt(ap.S(&body), tg.Seq(ap, ap.HInto(&reg), l2))
	l0 := tg.Alt(ap.S(&body), tg.Seq(ap, ap.A(&limit), l1))

	if !ap.Require(tg.Seq(ap, ap.H(), l0)) {
		return left, tg.ParseError
	}

	return &forIntegerCommand{left, p.emitCounterImplicitly, reg, init, limit, inc, body}, tg.ContinueParsing
}

// forEachCommand backs `for-each`/`for-each-print`: iterate the tokens of a
// source string under a chosen tokeniser-options spec (§4.H), binding each
// token to a register in turn. Supplemented: the original command library
// has no for-each; this follows for-integer's shape (body.Left runs once
// up front and again each iteration, body.Right is the per-iteration
// trailer) with the loop variable swapped for a token walk.
type forEachCommand struct {
	left                  tg.Command
	emitTokenImplicitly   bool
	reg                   rune
	options, source       tg.Command
	body                  tg.Section
}

func (c *forEachCommand) Left() tg.Command { return c.left }

func (c *forEachCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	*dst = ""

	var str string
	if !interp.Exec(&str, c.body.Left()) {
		return false
	}
	*dst += str

	var options string
	if !interp.Exec(&options, c.options) {
		return false
	}

	var source string
	if !interp.Exec(&source, c.source) {
		return false
	}

	rest := tg.DefaultTokeniserPreprocessor(source, options, interp)
	for rest != "" {
		token, next := tg.DefaultTokenise(rest, options, interp)
		rest = next

		interp.SetRegister(c.reg, token)

		if !interp.Exec(&str, c.body.Left()) {
			return false
		}
		*dst += str

		if c.emitTokenImplicitly {
			*dst += token
		}

		if !interp.Exec(&str, c.body.Right()) {
			return false
		}
		*dst += str
	}

	return true
}

type forEachParser struct {
	emitTokenImplicitly bool
}

func (p forEachParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)

	var reg rune
	var options, source tg.Command
	var body tg.Section

	grammar := tg.Seq(ap, ap.HInto(&reg), tg.Seq(ap, ap.A(&options), tg.Seq(ap, ap.A(&source), ap.S(&body))))

	if !ap.Require(tg.Seq(ap, ap.H(), grammar)) {
		return left, tg.ParseError
	}

	return &forEachCommand{left, p.emitTokenImplicitly, reg, options, source, body}, tg.ContinueParsing
}

func init() {
	tg.RegisterGlobal("if", ifParser{})
	tg.RegisterGlobal("false-coalesce", falseCoalesceParser{})
	tg.RegisterGlobal("for-integer", forIntegerParser{emitCounterImplicitly: false})
	tg.RegisterGlobal("for-int-print", forIntegerParser{emitCounterImplicitly: true})
	tg.RegisterGlobal("for-each", forEachParser{emitTokenImplicitly: false})
	tg.RegisterGlobal("for-each-print", forEachParser{emitTokenImplicitly: true})
}
