package lib

import (
	tg "github.com/AltSysrq/tglng"
)

// sectionCommand just executes a Section, grounded on parens.cxx's
// SectionCommand; it backs `section-command`, the building block other
// parsers reach for when a body needs to run as an ordinary command.
type sectionCommand struct {
	left    tg.Command
	section tg.Section
}

func (c *sectionCommand) Left() tg.Command { return c.left }

func (c *sectionCommand) Exec(dst *string, interp *tg.Interpreter) bool {
	return c.section.Exec(dst, interp)
}

type sectionCommandParser struct{}

func (sectionCommandParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var section tg.Section
	if !ap.Require(tg.Seq(ap, ap.H(), ap.S(&section))) {
		return left, tg.ParseError
	}
	return &sectionCommand{left, section}, tg.ContinueParsing
}

// closeParser just advances past its own command character and reports the
// structural-close result matching the bracket it names, grounded on
// parens.cxx's CloseParenParser template.
type closeParser struct {
	result tg.ParseResult
}

func (p closeParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	*offset++
	return left, p.result
}

func init() {
	tg.RegisterGlobal("section-command", sectionCommandParser{})
	tg.RegisterGlobal("close-paren", closeParser{tg.StopCloseParen})
	tg.RegisterGlobal("close-bracket", closeParser{tg.StopCloseBracket})
	tg.RegisterGlobal("close-brace", closeParser{tg.StopCloseBrace})
}

// BindConventionalParens binds ')', ']' and '}' to close-paren, close-bracket
// and close-brace respectively, so that the `(...)`, `[...]` and `{...}`
// section forms work without the caller having to `bind` them by hand first.
// A freshly constructed Interpreter only has '#' bound (matching the core
// engine's own default), the same way a freshly built original-language
// interpreter only gained these bindings once its tglngrc loaded; callers
// that never read a startup config, namely cmd/tglng and the test suite,
// call this instead to get the same conventional surface syntax.
func BindConventionalParens(interp *tg.Interpreter) {
	for short, long := range map[rune]string{
		')': "close-paren",
		']': "close-bracket",
		'}': "close-brace",
	} {
		if parser, ok := interp.LookupLong(long); ok {
			interp.BindShort(short, parser)
		}
	}
}
