package tglng

import (
	"fmt"
	"strings"
)

/*******************************************************************************

	Parse modes

*******************************************************************************/

// ParseMode selects how raw characters are turned into commands while
// scanning text (§4.C).
type ParseMode int

const (
	// ParseModeVerbatim turns every character into a single-character
	// self-insert command.
	ParseModeVerbatim ParseMode = iota
	// ParseModeLiteral turns every character but the escape character into
	// self-insert; the escape character introduces exactly one command
	// (parsed in Command mode) then returns to Literal.
	ParseModeLiteral
	// ParseModeCommand treats every character as a command character.
	ParseModeCommand
)

/*******************************************************************************

	Command-parser registry

*******************************************************************************/

// CommandParser produces a Command from a cursor into source text, wrapping
// left (the command tree accumulated so far on this line of composition) or
// signals a structural stop/error via the returned ParseResult. Implementors
// live outside this package (see the lib package); this file registers none
// itself (Literal/Verbatim self-insertion is folded directly into
// parseRunes instead of going through the registry, since every parse mode
// needs it before any builtin has had a chance to register).
type CommandParser interface {
	Parse(interp *Interpreter, left Command, text []rune, offset *int) (Command, ParseResult)
}

// Temporary is implemented by parsers that must never be reachable from the
// short-name map (invariant I4); `let` installs parsers of this kind while
// it parses its body.
type Temporary interface {
	Temporary() bool
}

func isTemporary(p CommandParser) bool {
	t, ok := p.(Temporary)
	return ok && t.Temporary()
}

// FunctionFacet is implemented by a CommandParser that is also a pure
// (out ← in) function, per §4.G.
type FunctionFacet interface {
	Function() *Function
}

// globalBindings is the process-wide table populated by side-effecting
// init() functions in the lib package, mirroring the
// original's GlobalBinding<T> static constructors. It is written only before
// any Interpreter is constructed and is read-only thereafter, matching the
// shared-resource policy in §5.
var globalBindings = map[string]CommandParser{}

// RegisterGlobal installs parser under name in the process-wide default
// bindings table. Intended to be called from a builtin package's init().
// Panics if name is already bound, since that indicates two builtins
// colliding on a name, a programming error rather than a runtime condition.
func RegisterGlobal(name string, parser CommandParser) {
	if _, exists := globalBindings[name]; exists {
		panic(fmt.Sprintf("tglng: global command %q registered twice", name))
	}
	globalBindings[name] = parser
}

// LookupGlobal returns the process-wide parser bound to name, if any. Used
// by builtins (e.g. `call`, `bind`) that need to resolve a name without
// going through a particular interpreter's possibly-shadowed copy.
func LookupGlobal(name string) (CommandParser, bool) {
	p, ok := globalBindings[name]
	return p, ok
}

// FreeGlobalBindings clears the process-wide registry. Only meaningful at
// process shutdown (§5); exists so a driver can call it symmetrically with
// the original's freeGlobalBindings, though Go's garbage collector makes it
// unnecessary for correctness.
func FreeGlobalBindings() {
	globalBindings = map[string]CommandParser{}
}

/*******************************************************************************

	Interpreter

*******************************************************************************/

// Interpreter holds every piece of state a parse or an execution needs:
// the long/short command-parser maps, the register file, the escape
// character, the long-mode flag, and the external-object table (§4.C).
type Interpreter struct {
	// commandsL is this interpreter's long-name → parser map. It starts as
	// a copy of globalBindings and may be locally shadowed (by `let`) or
	// extended (by `defun`/`lambda`) without affecting other interpreters.
	commandsL map[string]CommandParser
	// commandsS is the short-char → parser map. Entries are never owned;
	// they always point at something also reachable via commandsL of this
	// interpreter or an ancestor it was cloned from (invariant I3).
	commandsS map[rune]CommandParser

	// registers holds the single-character register file (§3). Global to
	// this interpreter; not lexically scoped.
	registers map[rune]string

	// Escape is the character that, in Literal mode, introduces one
	// command. Defaults to a backtick.
	Escape rune
	// LongMode makes bare identifier characters dispatch through the
	// long-mode-cmd parser by default, rather than requiring `#name#`.
	LongMode bool

	// externals maps opaque non-zero integer IDs to typed objects (e.g.
	// UserFunction bodies). ID 0 is never assigned (invariant I5).
	externals   map[uint]interface{}
	nextExtID   uint

	// backupOffset is the offset at the start of the most recently parsed
	// command; Backup() rewinds to it so a parser that peeked one
	// character it can't handle can hand control back cleanly.
	backupOffset int

	// locateParseError, when set, makes the next Error() call additionally
	// print the numeric offset to standard output, then clear the flag.
	locateParseError bool
}

// New constructs a root interpreter seeded from the process-wide global
// default bindings (§4.C Construction). The short-name map starts with '#'
// bound to whatever builtin registered itself globally as "long-command";
// if nothing has (no lib package imported), '#' is left unbound.
func New() *Interpreter {
	interp := &Interpreter{
		commandsL: make(map[string]CommandParser, len(globalBindings)),
		commandsS: make(map[rune]CommandParser),
		registers: make(map[rune]string),
		Escape:    '`',
		externals: make(map[uint]interface{}),
		nextExtID: 1,
	}
	for name, parser := range globalBindings {
		interp.commandsL[name] = parser
	}
	if lc, ok := interp.commandsL["long-command"]; ok {
		interp.commandsS['#'] = lc
	}
	return interp
}

// Clone produces a new interpreter that shares parsers with interp (by
// reference - Go's garbage collector makes the original's proxy-for-
// ownership-symmetry indirection unnecessary) but copies registers by
// value and starts with interp's externals IDs reachable but not owned:
// writes to the clone's externals table do not appear in interp's.
func (interp *Interpreter) Clone() *Interpreter {
	clone := &Interpreter{
		commandsL: make(map[string]CommandParser, len(interp.commandsL)),
		commandsS: make(map[rune]CommandParser, len(interp.commandsS)),
		registers: make(map[rune]string, len(interp.registers)),
		Escape:    interp.Escape,
		LongMode:  interp.LongMode,
		externals: make(map[uint]interface{}, len(interp.externals)),
		nextExtID: interp.nextExtID,
	}
	for k, v := range interp.commandsL {
		clone.commandsL[k] = v
	}
	for k, v := range interp.commandsS {
		clone.commandsS[k] = v
	}
	for k, v := range interp.registers {
		clone.registers[k] = v
	}
	for k, v := range interp.externals {
		clone.externals[k] = v
	}
	return clone
}

// Register returns the current value of register r (empty string if unset).
func (interp *Interpreter) Register(r rune) string {
	return interp.registers[r]
}

// LookupRegister returns register r's value and whether it is set at all,
// distinguishing an unset register from one explicitly set to "".
func (interp *Interpreter) LookupRegister(r rune) (string, bool) {
	v, ok := interp.registers[r]
	return v, ok
}

// SetRegister assigns register r.
func (interp *Interpreter) SetRegister(r rune, value string) {
	interp.registers[r] = value
}

// UnsetRegister removes register r entirely, as opposed to setting it to
// the empty string (read-reg fails on an unset register but yields "" for
// one set to "", so the difference is visible to builtins that check
// presence via LookupRegister).
func (interp *Interpreter) UnsetRegister(r rune) {
	delete(interp.registers, r)
}

// Registers returns a snapshot copy of the full register map, for builtins
// (UserFunction.Invoke) that must save and restore it wholesale.
func (interp *Interpreter) Registers() map[rune]string {
	snap := make(map[rune]string, len(interp.registers))
	for k, v := range interp.registers {
		snap[k] = v
	}
	return snap
}

// SetRegisters replaces the entire register map, e.g. to restore a snapshot
// taken by Registers().
func (interp *Interpreter) SetRegisters(regs map[rune]string) {
	interp.registers = regs
}

// BindLong installs parser under name in this interpreter's long-name map
// only (§4.F bind temporary uses this directly and restores the previous
// binding itself; ordinary builtins like `defun` use it to add a
// permanent-for-this-interpreter name).
func (interp *Interpreter) BindLong(name string, parser CommandParser) {
	interp.commandsL[name] = parser
}

// UnbindLong removes name from this interpreter's long-name map.
func (interp *Interpreter) UnbindLong(name string) {
	delete(interp.commandsL, name)
}

// LookupLong returns the parser bound to name in this interpreter.
func (interp *Interpreter) LookupLong(name string) (CommandParser, bool) {
	p, ok := interp.commandsL[name]
	return p, ok
}

// LongNames lists every bound long command name, for driver-level
// completion (cmd/tglng's interactive mode).
func (interp *Interpreter) LongNames() []string {
	names := make([]string, 0, len(interp.commandsL))
	for name := range interp.commandsL {
		names = append(names, name)
	}
	return names
}

// BindShort maps short to an existing, non-temporary long-name parser
// (§4.F bind short). Rebinding silently overwrites. The caller (the `bind`
// builtin) is responsible for having already resolved longName to parser
// via LookupLong.
func (interp *Interpreter) BindShort(short rune, parser CommandParser) {
	interp.commandsS[short] = parser
}

// LookupShort returns the parser bound to the short character c.
func (interp *Interpreter) LookupShort(c rune) (CommandParser, bool) {
	p, ok := interp.commandsS[c]
	return p, ok
}

/*******************************************************************************

	Externals

*******************************************************************************/

// NewExternal stores obj under a freshly-allocated, non-zero ID and returns
// that ID (invariant I5).
func (interp *Interpreter) NewExternal(obj interface{}) uint {
	id := interp.nextExtID
	interp.nextExtID++
	interp.externals[id] = obj
	return id
}

// External retrieves the object stored under id, if any.
func (interp *Interpreter) External(id uint) (interface{}, bool) {
	obj, ok := interp.externals[id]
	return obj, ok
}

/*******************************************************************************

	Parsing

*******************************************************************************/

// Parse advances offset past one parsed command (or fails), per §4.C. left
// is the previously-accumulated command tree (may be nil); the returned
// Command, on ContinueParsing, is the new head of the chain (ordinarily
// wrapping left, though some parsers - notably `<`-sectioned ones - detach
// it deliberately).
func (interp *Interpreter) Parse(left Command, text string, offset *int) (Command, ParseResult) {
	runes := []rune(text)
	result := interp.parseRunes(&left, runes, offset, ParseModeCommand)
	return left, result
}

// parseRunes is the internal engine; mode selects Verbatim/Literal/Command
// dispatch and *leftOut carries the accumulator in and the new head out.
func (interp *Interpreter) parseRunes(leftOut *Command, text []rune, offset *int, mode ParseMode) ParseResult {
	if *offset >= len(text) {
		return StopEndOfInput
	}

	switch mode {
	case ParseModeVerbatim:
		c := text[*offset]
		*offset++
		*leftOut = newSelfInsert(*leftOut, string(c))
		return ContinueParsing

	case ParseModeLiteral:
		c := text[*offset]
		if c != interp.Escape {
			*offset++
			*leftOut = newSelfInsert(*leftOut, string(c))
			return ContinueParsing
		}
		*offset++
		if *offset >= len(text) {
			return StopEndOfInput
		}
		return interp.parseRunes(leftOut, text, offset, ParseModeCommand)

	case ParseModeCommand:
		// Skip leading whitespace on entry to a command.
		for *offset < len(text) && isSpace(text[*offset]) {
			*offset++
		}
		if *offset >= len(text) {
			return StopEndOfInput
		}

		interp.backupOffset = *offset
		c := text[*offset]

		if c == interp.Escape {
			// No-op in Command mode.
			*offset++
			return ContinueParsing
		}

		if interp.LongMode && isNameChar(c) {
			if lc, ok := interp.commandsL["long-mode-cmd"]; ok {
				return interp.dispatch(lc, leftOut, text, offset)
			}
		}

		parser, ok := interp.commandsS[c]
		if !ok {
			interp.errorRunes(fmt.Sprintf("Unbound short command: %q", c), text, *offset)
			return ParseError
		}
		return interp.dispatch(parser, leftOut, text, offset)
	}

	panic("unreachable parse mode")
}

func (interp *Interpreter) dispatch(parser CommandParser, leftOut *Command, text []rune, offset *int) ParseResult {
	next, res := parser.Parse(interp, *leftOut, text, offset)
	// *leftOut is updated regardless of res: a parser that recurses through
	// ParseAllRunes on the rest of the input (long-mode/short-mode) may have
	// already built several commands onto its local accumulator by the time
	// it surfaces a structural stop or StopEndOfInput, and that work must
	// reach the caller exactly the same way it would on ContinueParsing.
	*leftOut = next
	return res
}

func isNameChar(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// ParseAll calls Parse in a loop until a non-ContinueParsing result appears
// (§4.C).
func (interp *Interpreter) ParseAll(left Command, text string, offset *int, mode ParseMode) (Command, ParseResult) {
	runes := []rune(text)
	var out Command = left
	res := interp.parseAllRunes(&out, runes, offset, mode)
	return out, res
}

// ParseAllRunes is ParseAll taking shared rune storage directly, for
// CommandParser implementations (outside this package) that already hold
// the text as []rune and must not re-slice it mid-parse.
func (interp *Interpreter) ParseAllRunes(leftOut *Command, text []rune, offset *int, mode ParseMode) ParseResult {
	return interp.parseAllRunes(leftOut, text, offset, mode)
}

func (interp *Interpreter) parseAllRunes(leftOut *Command, text []rune, offset *int, mode ParseMode) ParseResult {
	for {
		res := interp.parseRunes(leftOut, text, offset, mode)
		if res != ContinueParsing {
			return res
		}
	}
}

// Backup rewinds offset to the start of the most recently parsed command,
// for a callee that consumed a look-ahead character it cannot itself
// handle and must return control to its caller.
func (interp *Interpreter) Backup(offset *int) {
	*offset = interp.backupOffset
}

/*******************************************************************************

	Evaluation

*******************************************************************************/

// Exec walks the left chain of cmd iteratively (never recursively, per the
// DESIGN NOTES on left-chain iteration), evaluating each link in insertion
// order and concatenating the results into *dst. Returns false as soon as
// any link fails.
func (interp *Interpreter) Exec(dst *string, cmd Command) bool {
	if cmd == nil {
		*dst = ""
		return true
	}

	var chain []Command
	for c := cmd; c != nil; c = c.Left() {
		chain = append(chain, c)
	}
	// chain is innermost-last; walk it in reverse (outermost-first, i.e.
	// insertion order) without recursing.
	var b strings.Builder
	for i := len(chain) - 1; i >= 0; i-- {
		var part string
		if !chain[i].Exec(&part, interp) {
			return false
		}
		b.WriteString(part)
	}
	*dst = b.String()
	return true
}

/*******************************************************************************

	Diagnostics

*******************************************************************************/

// Error produces the human-readable diagnostic described in §4.C: the
// message, a ±16-char window around offset with whitespace flattened to
// spaces, and a caret under the exact column. If LocateParseError is active
// it additionally prints offset to standard output once, then clears the
// flag.
func (interp *Interpreter) Error(why string, text string, offset int) {
	interp.errorRunes(why, []rune(text), offset)
}

func (interp *Interpreter) errorRunes(why string, text []rune, offset int) {
	const radius = 16
	lo := offset - radius
	if lo < 0 {
		lo = 0
	}
	hi := offset + radius
	if hi > len(text) {
		hi = len(text)
	}

	window := make([]rune, hi-lo)
	for i, r := range text[lo:hi] {
		if isSpace(r) {
			window[i] = ' '
		} else {
			window[i] = r
		}
	}

	caret := make([]rune, offset-lo)
	for i := range caret {
		caret[i] = ' '
	}

	fmt.Fprintf(diagOut, "%s\n%s\n%s^\n", why, string(window), string(caret))

	if interp.locateParseError {
		fmt.Println(offset)
		interp.locateParseError = false
	}
}

// SetLocateParseError arms the one-shot "print offset of next parse error"
// behavior driven by the -l/--locate-parse-error CLI flag.
func (interp *Interpreter) SetLocateParseError(v bool) {
	interp.locateParseError = v
}

// SetInitialRegister is used by the driver's -D/--register flag to preset a
// register before any input is parsed.
func (interp *Interpreter) SetInitialRegister(r rune, value string) {
	interp.registers[r] = value
}
