// Package lib is TglNG's built-in command library (§4.I): the concrete
// parsers that populate the default registry. The core engine (package
// tglng) never imports this package; a driver imports it purely for its
// init()-time side effects, exactly as the original's GlobalBinding<T>
// static constructors populate the global table before main runs.
package lib

import (
	"fmt"

	tg "github.com/AltSysrq/tglng"
)

// selfInsertParser backs the `self-insert` builtin: it consumes the next
// character of source text literally, the same job Interpreter.parseRunes
// already does for Literal/Verbatim mode, exposed here as a named command
// so that e.g. `bind` can rebind a short name to explicit self-insertion.
type selfInsertParser struct{}

func (selfInsertParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	*offset++ // past the command character
	if *offset >= len(text) {
		interp.Error("Expected a character to insert", string(text), *offset)
		return left, tg.ParseError
	}
	c := text[*offset]
	*offset++
	return tg.NewSelfInsert(left, string(c)), tg.ContinueParsing
}

func init() {
	tg.RegisterGlobal("self-insert", selfInsertParser{})
}

// longCommandParser backs `long-command` (and the default '#' short
// binding): reads a name terminated by another '#' and dispatches to that
// name's parser.
type longCommandParser struct{}

func (longCommandParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	// Through the default short binding of '#', *offset sits on that
	// opening delimiter, which is skipped first. Under any other trigger
	// character, the name is read starting at *offset itself.
	if *offset < len(text) && text[*offset] == '#' {
		*offset++
	}

	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var name string
	if !ap.Require(ap.To(&name, '#')) {
		return left, tg.ParseError
	}
	// Move back to the closing '#', since that is the effective character
	// for the command that follows.
	*offset--

	parser, ok := interp.LookupLong(name)
	if !ok {
		interp.Error(fmt.Sprintf("Unknown command: %s", name), string(text), *offset)
		return left, tg.ParseError
	}
	return parser.Parse(interp, left, text, offset)
}

func init() {
	tg.RegisterGlobal("long-command", longCommandParser{})
}

// bindParser backs `bind`: maps a single short character to an existing
// long-name parser.
type bindParser struct{}

func (bindParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var longName string
	var shortName rune
	if !ap.Require(tg.Seq(ap, ap.H(), tg.Seq(ap, ap.To(&longName, '#'), ap.HInto(&shortName)))) {
		return left, tg.ParseError
	}

	parser, ok := interp.LookupLong(longName)
	if !ok {
		interp.Error(fmt.Sprintf("Unknown command: %s", longName), string(text), *offset)
		return left, tg.ParseError
	}
	if t, ok := parser.(tg.Temporary); ok && t.Temporary() {
		interp.Error(fmt.Sprintf("Cannot bind temporary command: %s", longName), string(text), *offset)
		return left, tg.ParseError
	}

	interp.BindShort(shortName, parser)
	return left, tg.ContinueParsing
}

func init() {
	tg.RegisterGlobal("bind", bindParser{})
}
