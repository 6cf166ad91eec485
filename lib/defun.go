package lib

import (
	"fmt"

	tg "github.com/AltSysrq/tglng"
)

// defun/lambda/call, grounded on defun.cxx. A defined function becomes a
// UserFunction external (§4.G) wrapped in a FunctionParser so it is
// callable both by its long name's generic calling convention and, for
// `call`, dynamically by name computed at run time.
func defineFunction(interp *tg.Interpreter, shortName rune, longName, outputs, inputs string, body tg.Command, text []rune, nameOffset int) bool {
	if _, ok := interp.LookupLong(longName); ok {
		interp.Error(fmt.Sprintf("Command name already in use: %s", longName), string(text), nameOffset)
		return false
	}

	uf := &tg.UserFunction{Body: body, InRegs: inputs, OutRegs: outputs}
	ref := interp.NewExternal(uf)

	fn := &tg.Function{
		OutArity: len(outputs) + 1,
		InArity:  len(inputs),
		Parm:     ref,
		Exec: func(out, in []string, interp *tg.Interpreter, parm uint) bool {
			ext, _ := interp.External(parm)
			return ext.(*tg.UserFunction).Invoke(out, in, interp)
		},
	}

	parser := tg.NewFunctionParser(fn)
	interp.BindLong(longName, parser)
	if shortName != 0 {
		interp.BindShort(shortName, parser)
	}
	return true
}

type defunParser struct{}

func (defunParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var name, outputs, inputs string
	var nameOffset int
	var shortName rune
	var body tg.Command

	header := tg.Seq(ap, ap.H(),
		tg.Seq(ap, tg.Save(ap, ap.To(&name, '#'), &nameOffset),
			tg.Seq(ap, tg.Opt(tg.Seq(ap, ap.X(':'), ap.HInto(&shortName))),
				tg.Seq(ap, tg.Opt(tg.Alt(ap.X(']'), tg.Seq(ap, ap.X('['), ap.To(&outputs, ']')))),
					tg.Seq(ap, tg.Opt(tg.Alt(ap.X(')'), tg.Seq(ap, ap.X('('), ap.To(&inputs, ')')))),
						ap.A(&body))))))
	if !ap.Require(header) {
		return left, tg.ParseError
	}

	if !defineFunction(interp, shortName, name, outputs, inputs, body, text, nameOffset) {
		return left, tg.ParseError
	}
	return left, tg.ContinueParsing
}

var nextLambdaName int

type lambdaParser struct{}

func (lambdaParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var outputs, inputs string
	var body tg.Command
	origOffset := *offset

	header := tg.Seq(ap, ap.H(),
		tg.Seq(ap, tg.Opt(tg.Alt(ap.X(']'), tg.Seq(ap, ap.X('['), ap.To(&outputs, ']')))),
			tg.Seq(ap, tg.Opt(tg.Alt(ap.X(')'), tg.Seq(ap, ap.X('('), ap.To(&inputs, ')')))),
				ap.A(&body))))
	if !ap.Require(header) {
		return left, tg.ParseError
	}

	name := fmt.Sprintf("lambda#%d", nextLambdaName)
	nextLambdaName++

	if !defineFunction(interp, 0, name, outputs, inputs, body, text, origOffset) {
		return left, tg.ParseError
	}
	return tg.NewSelfInsert(left, name), tg.ContinueParsing
}

type callParser struct{}

func (callParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var fn tg.Command
	var outregs string
	var done bool

	header := tg.Seq(ap, ap.H(),
		tg.Seq(ap, ap.A(&fn),
			tg.Seq(ap, tg.Opt(tg.Seq(ap, ap.X('['), ap.To(&outregs, ']'))),
				tg.Seq(ap, ap.X('('), tg.Opt(ap.XInto(&done, ')'))))))
	if !ap.Require(header) {
		return left, tg.ParseError
	}

	var args []tg.Command
	for !done {
		var arg tg.Command
		step := tg.Seq(ap, ap.A(&arg), tg.Alt(ap.X(','), ap.XInto(&done, ')')))
		if !ap.Require(step) {
			return left, tg.ParseError
		}
		args = append(args, arg)
	}

	return tg.NewDynamicFunctionInvocation(left, fn, args, outregs), tg.ContinueParsing
}

func init() {
	tg.RegisterGlobal("defun", defunParser{})
	tg.RegisterGlobal("lambda", lambdaParser{})
	tg.RegisterGlobal("call", callParser{})
}
