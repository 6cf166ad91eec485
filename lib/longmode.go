package lib

import (
	"unicode"

	tg "github.com/AltSysrq/tglng"
)

// isLongModeNameChar mirrors long_mode.cxx's LongModeCmdParser::isname.
func isLongModeNameChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_'
}

// longModeCmdParser backs `long-mode-cmd`: read a whole name-character run
// and dispatch it as a long command (falling back to a single-character
// short command when no long binding matches), grounded on
// long_mode.cxx's LongModeCmdParser.
type longModeCmdParser struct{}

func (longModeCmdParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	origOffset := *offset

	if *offset >= len(text) || !isLongModeNameChar(text[*offset]) {
		interp.Error("long-mode-cmd: Invalid invocation.", string(text), *offset)
		return left, tg.ParseError
	}

	for *offset < len(text) && isLongModeNameChar(text[*offset]) {
		*offset++
	}
	*offset--

	name := string(text[origOffset : *offset+1])

	parser, ok := interp.LookupLong(name)
	if !ok {
		if len(name) == 1 {
			if p, ok := interp.LookupShort(rune(name[0])); ok {
				parser = p
			}
		}
		if parser == nil {
			interp.Error("No such command: "+name, string(text), origOffset)
			return left, tg.ParseError
		}
	}

	return parser.Parse(interp, left, text, offset)
}

// longModeParser toggles LongMode around an inner ParseAll, backing both
// `long-mode` and `short-mode` (grounded on long_mode.cxx's
// LongModeParser<bool>).
type longModeParser struct {
	mode bool
}

func (p longModeParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	*offset++

	wasLong := interp.LongMode
	interp.LongMode = p.mode

	result := interp.ParseAllRunes(&left, text, offset, tg.ParseModeCommand)

	interp.LongMode = wasLong
	return left, result
}

func init() {
	tg.RegisterGlobal("long-mode-cmd", longModeCmdParser{})
	tg.RegisterGlobal("long-mode", longModeParser{mode: true})
	tg.RegisterGlobal("short-mode", longModeParser{mode: false})
}
