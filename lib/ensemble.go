package lib

import (
	"runtime"

	tg "github.com/AltSysrq/tglng"
)

// ensemble is a user-defined dispatch table mapping a single character to
// an existing long-name parser, grounded on ensemble.cxx's Ensemble: it
// reads one header character then delegates parsing entirely to whichever
// subcommand is bound under it.
type ensemble struct {
	commands map[rune]tg.CommandParser
}

func (e *ensemble) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var subcommand rune
	if !ap.Require(tg.Seq(ap, ap.H(), ap.HInto(&subcommand))) {
		return left, tg.ParseError
	}

	// Back up so the delegate parser sees the subcommand character itself.
	*offset--

	parser, ok := e.commands[subcommand]
	if !ok {
		interp.Error("No such ensemble subcommand: "+string(subcommand), string(text), *offset)
		return left, tg.ParseError
	}

	return parser.Parse(interp, left, text, offset)
}

func (e *ensemble) bind(subcommand rune, parser tg.CommandParser) {
	e.commands[subcommand] = parser
}

// ensembleKey scopes an ensemble's registration to the Interpreter that
// created it, mirroring ensemble.cxx's map<pair<Interpreter*,wstring>,
// Ensemble*>: two interpreters may each define an ensemble of the same
// name without clobbering each other's entry.
type ensembleKey struct {
	interp *tg.Interpreter
	name   string
}

var ensembles = map[ensembleKey]*ensemble{}

// removeEnsemblesOf drops every ensemble registered by interp. It is
// installed as a finalizer on interp itself, standing in for the
// destructor-driven removal ensemble.cxx gets for free from
// Interpreter::~Interpreter deleting its owned CommandParsers.
func removeEnsemblesOf(interp *tg.Interpreter) {
	for k := range ensembles {
		if k.interp == interp {
			delete(ensembles, k)
		}
	}
}

type ensembleNewParser struct{}

func (ensembleNewParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var name string
	var nameOffset int
	if !ap.Require(tg.Seq(ap, ap.H(), tg.Save(ap, ap.To(&name, '#'), &nameOffset))) {
		return left, tg.ParseError
	}

	if _, ok := interp.LookupLong(name); ok {
		interp.Error("Command name already in use: "+name, string(text), nameOffset)
		return left, tg.ParseError
	}

	e := &ensemble{commands: make(map[rune]tg.CommandParser)}
	ensembles[ensembleKey{interp, name}] = e
	runtime.SetFinalizer(interp, removeEnsemblesOf)
	interp.BindLong(name, e)
	return left, tg.ContinueParsing
}

type ensembleBindParser struct{}

func (ensembleBindParser) Parse(interp *tg.Interpreter, left tg.Command, text []rune, offset *int) (tg.Command, tg.ParseResult) {
	ap := tg.NewArgumentParser(interp, text, offset, &left)
	var ename, cname string
	var enameOffset, cnameOffset int
	var shortname rune

	header := tg.Seq(ap, ap.H(),
		tg.Seq(ap, tg.Save(ap, ap.To(&ename, '#'), &enameOffset),
			tg.Seq(ap, tg.Save(ap, ap.To(&cname, '#'), &cnameOffset), ap.HInto(&shortname))))
	if !ap.Require(header) {
		return left, tg.ParseError
	}

	e, ok := ensembles[ensembleKey{interp, ename}]
	if !ok {
		interp.Error("No such ensemble: "+ename, string(text), enameOffset)
		return left, tg.ParseError
	}

	cparser, ok := interp.LookupLong(cname)
	if !ok {
		interp.Error("No such command: "+cname, string(text), cnameOffset)
		return left, tg.ParseError
	}

	e.bind(shortname, cparser)
	return left, tg.ContinueParsing
}

func init() {
	tg.RegisterGlobal("ensemble-new", ensembleNewParser{})
	tg.RegisterGlobal("ensemble-bind", ensembleBindParser{})
}
