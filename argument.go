package tglng

/*******************************************************************************

	Argument extractor combinators

*******************************************************************************/

// matcher is the closure-pair every primitive and combinator in this file
// boils down to: match is a non-mutating-except-for-whitespace-skipping
// look-ahead, get actually consumes input (match is assumed to have
// succeeded already). This replaces the original's expression-template
// sugar (DESIGN NOTES: "an ordinary builder API is clearer and loses
// nothing").
type matcher struct {
	match func() bool
	get   func() bool
}

// Seq requires a to match; once a.get succeeds it requires b to match too
// (reporting a diagnostic if not) before running b.get.
func Seq(ap *ArgumentParser, a, b matcher) matcher {
	return matcher{
		match: a.match,
		get: func() bool {
			if !a.get() {
				return false
			}
			if !b.match() {
				ap.interp.errorRunes("Could not match next part of argument sequence.", ap.text, *ap.offset)
				return false
			}
			return b.get()
		},
	}
}

// Alt matches a or b, preferring a when both match.
func Alt(a, b matcher) matcher {
	return matcher{
		match: func() bool { return a.match() || b.match() },
		get: func() bool {
			if a.match() {
				return a.get()
			}
			return b.get()
		},
	}
}

// Opt always matches; get runs a only if a itself currently matches.
func Opt(a matcher) matcher {
	return matcher{
		match: func() bool { return true },
		get: func() bool {
			if !a.match() {
				return true
			}
			return a.get()
		},
	}
}

// Save records the current offset into *dst right before a.get runs, for
// diagnostics that need to point at exactly where an argument began.
func Save(ap *ArgumentParser, a matcher, dst *int) matcher {
	return matcher{
		match: a.match,
		get: func() bool {
			*dst = *ap.offset
			return a.get()
		},
	}
}

/*******************************************************************************

	ArgumentParser

*******************************************************************************/

// ArgumentParser bundles the interpreter/text/offset/left-accumulator
// context shared by every primitive matcher, and is the entry point
// builtins use to declare their surface syntax (§4.D).
type ArgumentParser struct {
	interp         *Interpreter
	text           []rune
	offset         *int
	left           *Command
	startingOffset int
}

// NewArgumentParser constructs a parser bound to the given parse cursor.
// left is mutated in place only by S, whose section forms (`<`, `|`) hand
// off or consume the command tree accumulated so far.
func NewArgumentParser(interp *Interpreter, text []rune, offset *int, left *Command) *ArgumentParser {
	return &ArgumentParser{interp, text, offset, left, *offset}
}

func (ap *ArgumentParser) baseMatch() bool {
	for *ap.offset < len(ap.text) && isSpace(ap.text[*ap.offset]) {
		*ap.offset++
	}
	return *ap.offset < len(ap.text)
}

// H returns a matcher that consumes one non-whitespace character, discarding
// it.
func (ap *ArgumentParser) H() matcher {
	var ignore rune
	return ap.HInto(&ignore)
}

// HInto is H but stores the consumed character into dst.
func (ap *ArgumentParser) HInto(dst *rune) matcher {
	return matcher{
		match: ap.baseMatch,
		get: func() bool {
			*dst = ap.text[*ap.offset]
			*ap.offset++
			return true
		},
	}
}

// N matches and extracts a signed integer literal into dst.
func (ap *ArgumentParser) N(dst *int) matcher {
	return matcher{
		match: func() bool {
			if !ap.baseMatch() {
				return false
			}
			c := ap.text[*ap.offset]
			return (c >= '0' && c <= '9') || c == '+' || c == '-'
		},
		get: func() bool {
			return ParseInteger(dst, ap.text, *ap.offset, ap.offset)
		},
	}
}

// C matches and recursively parses one nested command.
func (ap *ArgumentParser) C(dst *Command) matcher {
	return matcher{
		match: ap.baseMatch,
		get: func() bool {
			*dst = nil
			next, res := ap.interp.parseRunes2(*dst, ap.text, ap.offset, ParseModeCommand)
			if res != ContinueParsing {
				ap.interp.errorRunes("Invalid command.", ap.text, *ap.offset)
				return false
			}
			*dst = next
			return true
		},
	}
}

// A matches always; get tries an integer literal first (wrapped as a
// self-insert command, preserving its original textual form) and falls
// back to recursively parsing a command.
func (ap *ArgumentParser) A(dst *Command) matcher {
	return matcher{
		match: ap.baseMatch,
		get: func() bool {
			fst := ap.text[*ap.offset]
			if fst >= '0' && fst <= '9' {
				start := *ap.offset
				var discard int
				if !ParseInteger(&discard, ap.text, start, ap.offset) {
					ap.interp.errorRunes("Invalid integer.", ap.text, *ap.offset)
					return false
				}
				*dst = newSelfInsert(nil, string(ap.text[start:*ap.offset]))
				return true
			}
			*dst = nil
			next, res := ap.interp.parseRunes2(*dst, ap.text, ap.offset, ParseModeCommand)
			if res != ContinueParsing {
				return false
			}
			*dst = next
			return true
		},
	}
}

// S matches and extracts a Section.
func (ap *ArgumentParser) S(dst *Section) matcher {
	return matcher{
		match: func() bool {
			if !ap.baseMatch() {
				return false
			}
			return isSectionChar(ap.text[*ap.offset])
		},
		get: func() bool {
			*dst = Section{}
			accumulator := *ap.left
			res := ap.interp.parseSection(dst, accumulator, ap.text, ap.offset)
			if res != ContinueParsing {
				return false
			}
			if dst.left == nil && accumulator != nil {
				// The section did not consume the accumulator (forms other
				// than `<`/`|`); leave *ap.left untouched so the caller
				// still owns it.
				return true
			}
			*ap.left = nil
			return true
		},
	}
}

// To matches and extracts a string running up to (and past) sentinel.
func (ap *ArgumentParser) To(dst *string, sentinel rune) matcher {
	return matcher{
		match: func() bool {
			if !ap.baseMatch() {
				return false
			}
			if ap.text[*ap.offset] == sentinel {
				return false
			}
			for i := *ap.offset + 1; i < len(ap.text); i++ {
				if ap.text[i] == sentinel {
					return true
				}
			}
			return false
		},
		get: func() bool {
			start := *ap.offset
			for {
				*ap.offset++
				if ap.text[*ap.offset] == sentinel {
					break
				}
			}
			*dst = string(ap.text[start:*ap.offset])
			*ap.offset++
			return true
		},
	}
}

// An matches and extracts a maximal run of 7-bit alphanumeric characters.
func (ap *ArgumentParser) An(dst *string) matcher {
	return matcher{
		match: func() bool {
			if !ap.baseMatch() {
				return false
			}
			return isAscii7Alnum(ap.text[*ap.offset])
		},
		get: func() bool {
			start := *ap.offset
			for *ap.offset < len(ap.text) && isAscii7Alnum(ap.text[*ap.offset]) {
				*ap.offset++
			}
			*dst = string(ap.text[start:*ap.offset])
			return true
		},
	}
}

// Ns matches and extracts a maximal run of non-section characters
// (whitespace included).
func (ap *ArgumentParser) Ns(dst *string) matcher {
	return matcher{
		match: func() bool {
			if !ap.baseMatch() {
				return false
			}
			return !isSectionChar(ap.text[*ap.offset])
		},
		get: func() bool {
			start := *ap.offset
			for *ap.offset < len(ap.text) && !isSectionChar(ap.text[*ap.offset]) {
				*ap.offset++
			}
			*dst = string(ap.text[start:*ap.offset])
			return true
		},
	}
}

// X matches exactly one expected character, discarding the boolean result.
func (ap *ArgumentParser) X(expect rune) matcher {
	var ignore bool
	return ap.XInto(&ignore, expect)
}

// XInto is X but stores true into dst on success.
func (ap *ArgumentParser) XInto(dst *bool, expect rune) matcher {
	return matcher{
		match: func() bool {
			return ap.baseMatch() && ap.text[*ap.offset] == expect
		},
		get: func() bool {
			*dst = true
			*ap.offset++
			return true
		},
	}
}

// Require runs m (match then get), emitting the standard diagnostics on
// either kind of failure, matching ArgumentParser::operator[].
func (ap *ArgumentParser) Require(m matcher) bool {
	if !m.match() {
		ap.interp.errorRunes("Could not match initial argument.", ap.text, *ap.offset)
		return false
	}
	if !m.get() {
		ap.interp.errorRunes("Error reading argument for command.", ap.text, ap.startingOffset)
		return false
	}
	return true
}

func isAscii7Alnum(c rune) bool {
	return c < 128 && (c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z')
}

// parseRunes2 is parseRunes with a value (not out-param) accumulator
// argument, convenient for the combinators above which already hold their
// own *Command destination.
func (interp *Interpreter) parseRunes2(left Command, text []rune, offset *int, mode ParseMode) (Command, ParseResult) {
	out := left
	res := interp.parseRunes(&out, text, offset, mode)
	return out, res
}
