package lib

import (
	"fmt"

	tg "github.com/AltSysrq/tglng"
)

// variable is a shared string cell (§4.D/§4.I, grounded on variable.cxx's
// Variable/VariableValue). The original reference-counts the backing
// storage so copies of a Variable alias the same value; sharing a
// *variable does that for free under Go's GC, so there is no
// VariableValue wrapper here.
type variable struct {
	value string
}

// variableGetCommand yields the variable's current value.
type variableGetCommand struct {
	left tg.Command
	v    *variable
}

func (c *variableGetCommand) Left() tg.Command { return c.left }

func (c *variableGetCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	*dst = c.v.value
	return true
}

// variableGetParser is bound, under a temporary long name, while a `let`
// body is being parsed, so that uses of the name inside the body resolve
// to this particular variable instead of whatever `name` meant outside.
type variableGetParser struct {
	v *variable
}

func (variableGetParser) Temporary() bool { return true }

func (p *variableGetParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	*offset++ // past the command character
	return &variableGetCommand{left, p.v}, tg.ContinueParsing
}

// variableSetCommand assigns a variable's value, then returns "".
type variableSetCommand struct {
	left  tg.Command
	v     *variable
	value tg.Command
}

func (c *variableSetCommand) Left() tg.Command { return c.left }

func (c *variableSetCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	*dst = ""
	var val string
	if !interp.Exec(&val, c.value) {
		return false
	}
	c.v.value = val
	return true
}

// variableLetCommand binds a fresh value for the duration of body, then
// restores whatever the variable held before.
type variableLetCommand struct {
	left  tg.Command
	v     *variable
	value tg.Command
	body  tg.Command
}

func (c *variableLetCommand) Left() tg.Command { return c.left }

func (c *variableLetCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	old := c.v.value
	var val string
	if !interp.Exec(&val, c.value) {
		return false
	}
	c.v.value = val

	ok := interp.Exec(dst, c.body)
	c.v.value = old
	return ok
}

// variableLetParser backs `let`: `let#name#=value body`, where body is the
// rest of the input up to the enclosing close character or end of input.
// The body is parsed with `name` temporarily rebound to this specific
// variable, so nested `let`s of the same name shadow correctly.
type variableLetParser struct{}

func (variableLetParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var name string
	var value tg.Command
	if !ap.Require(tg.Seq(ap, ap.H(), tg.Seq(ap, ap.To(&name, '#'), tg.Seq(ap, ap.X('='), ap.A(&value))))) {
		return left, tg.ParseError
	}

	v := &variable{}

	oldParser, hadOld := interp.LookupLong(name)
	interp.BindLong(name, &variableGetParser{v})

	var body tg.Command
	res := interp.ParseAllRunes(&body, text, offset, tg.ParseModeCommand)

	if hadOld {
		interp.BindLong(name, oldParser)
	} else {
		interp.UnbindLong(name)
	}

	if res == tg.ParseError {
		return left, tg.ParseError
	}
	return &variableLetCommand{left, v, value, body}, res
}

// variableSetParser backs `set`: `set#name#=value`. name must already name
// a variable introduced by an enclosing `let` in this lexical scope.
type variableSetParser struct{}

func (variableSetParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var name string
	var value tg.Command
	var nameOffset int
	if !ap.Require(tg.Seq(ap, ap.H(), tg.Seq(ap, tg.Save(ap, ap.To(&name, '#'), &nameOffset), tg.Seq(ap, ap.X('='), ap.A(&value))))) {
		return left, tg.ParseError
	}

	parser, ok := interp.LookupLong(name)
	if !ok {
		interp.Error(fmt.Sprintf("No such command: %s", name), string(text), nameOffset)
		return left, tg.ParseError
	}
	vgp, ok := parser.(*variableGetParser)
	if !ok {
		interp.Error(fmt.Sprintf("Not a variable (in this scope): %s", name), string(text), nameOffset)
		return left, tg.ParseError
	}

	return &variableSetCommand{left, vgp.v, value}, tg.ContinueParsing
}

func init() {
	tg.RegisterGlobal("let", variableLetParser{})
	tg.RegisterGlobal("set", variableSetParser{})
}
