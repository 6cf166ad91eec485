package lib

import (
	"fmt"

	tg "github.com/AltSysrq/tglng"
)

// readRegisterCommand backs `read-reg`, grounded on registers.cxx's
// ReadRegister. (The `$X` section form in the core engine already covers
// the common case; this is the explicit command-character spelling.)
type readRegisterCommand struct {
	left tg.Command
	reg  rune
}

func (c *readRegisterCommand) Left() tg.Command { return c.left }

func (c *readRegisterCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	v, ok := interp.LookupRegister(c.reg)
	if !ok {
		fmt.Fprintf(tg.DiagOut(), "tglng: error: attempt to read from unset register: %c\n", c.reg)
		return false
	}
	*dst = v
	return true
}

// writeRegisterCommand backs `write-reg`: writes the concatenation of a
// section's two halves into a register.
type writeRegisterCommand struct {
	left    tg.Command
	reg     rune
	section tg.Section
}

func (c *writeRegisterCommand) Left() tg.Command { return c.left }

func (c *writeRegisterCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	var value string
	if !c.section.Exec(&value, interp) {
		return false
	}
	interp.SetRegister(c.reg, value)
	*dst = ""
	return true
}

// unsetRegisterCommand backs `unset-reg`.
type unsetRegisterCommand struct {
	left tg.Command
	reg  rune
}

func (c *unsetRegisterCommand) Left() tg.Command { return c.left }

func (c *unsetRegisterCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	interp.UnsetRegister(c.reg)
	*dst = ""
	return true
}

type readRegisterParser struct{}

func (readRegisterParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var reg rune
	if !ap.Require(tg.Seq(ap, ap.H(), ap.HInto(&reg))) {
		return left, tg.ParseError
	}
	return &readRegisterCommand{left, reg}, tg.ContinueParsing
}

type unsetRegisterParser struct{}

func (unsetRegisterParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var reg rune
	if !ap.Require(tg.Seq(ap, ap.H(), ap.HInto(&reg))) {
		return left, tg.ParseError
	}
	return &unsetRegisterCommand{left, reg}, tg.ContinueParsing
}

type writeRegisterParser struct{}

func (writeRegisterParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var reg rune
	var section tg.Section
	if !ap.Require(tg.Seq(ap, ap.H(), tg.Seq(ap, ap.HInto(&reg), ap.S(&section)))) {
		return left, tg.ParseError
	}
	return &writeRegisterCommand{left, reg, section}, tg.ContinueParsing
}

func init() {
	tg.RegisterGlobal("read-reg", readRegisterParser{})
	tg.RegisterGlobal("unset-reg", unsetRegisterParser{})
	tg.RegisterGlobal("write-reg", writeRegisterParser{})
}
