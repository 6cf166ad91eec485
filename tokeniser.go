package tglng

import "strings"

/*******************************************************************************

	Tokeniser protocol

*******************************************************************************/

// Tokeniser is the two-function pluggable iterator abstraction of §4.H: Init
// normalises the raw string once (lazily, on first use), and Next peels one
// token off a remainder, returning the new remainder. The sequence is
// exhausted once the returned remainder is empty.
type Tokeniser interface {
	Init(str string, options string, interp *Interpreter) (normalised string, ok bool)
	Next(remainder string, options string, interp *Interpreter) (token string, rest string, ok bool)
}

// TokeniserState adapts a Tokeniser into a lazy has-been-initialised
// protocol: Init runs on the first call to HasMore or Next rather than
// eagerly.
type TokeniserState struct {
	t          Tokeniser
	options    string
	hasInit    bool
	remainder  string
	errorFlag  bool
}

// NewTokeniserState begins iterating str with t under options.
func NewTokeniserState(t Tokeniser, str, options string) *TokeniserState {
	return &TokeniserState{t: t, options: options, remainder: str}
}

// HasMore reports whether another token is available, running Init on the
// first call.
func (s *TokeniserState) HasMore(interp *Interpreter) bool {
	if !s.hasInit {
		norm, ok := s.t.Init(s.remainder, s.options, interp)
		s.hasInit = true
		if !ok {
			s.errorFlag = true
			return false
		}
		s.remainder = norm
	}
	return s.remainder != ""
}

// Next returns the next token, advancing the internal remainder.
func (s *TokeniserState) Next(interp *Interpreter) (string, bool) {
	if !s.HasMore(interp) {
		return "", false
	}
	tok, rest, ok := s.t.Next(s.remainder, s.options, interp)
	if !ok {
		s.errorFlag = true
		return "", false
	}
	s.remainder = rest
	return tok, true
}

/*******************************************************************************

	Default tokeniser

*******************************************************************************/

// defaultTokeniserOptions holds the parsed state of the options DSL from
// §4.H, grounded on original_source/src/cmd/default_tokeniser.cxx.
type defaultTokeniserOptions struct {
	spacesAreDelims     bool
	linesAreDelims      bool
	nulsAreDelims       bool
	additionalDelims    map[rune]bool
	coalesceDelims      bool
	parentheses         map[rune]rune
	trimParentheses     map[rune]rune
	escapeSequences     bool
}

func newDefaultTokeniserOptions(spec string, interp *Interpreter) *defaultTokeniserOptions {
	o := &defaultTokeniserOptions{}
	o.setDefaults()
	o.parse(spec, interp)
	return o
}

func (o *defaultTokeniserOptions) setDefaults() {
	o.nuke()
	o.spacesAreDelims = true
	o.coalesceDelims = true
	pairs := "()[]{}"
	pr := []rune(pairs)
	for i := 0; i < len(pr); i += 2 {
		o.parentheses[pr[i]] = pr[i+1]
		o.trimParentheses[pr[i]] = pr[i+1]
	}
}

func (o *defaultTokeniserOptions) nuke() {
	o.spacesAreDelims = false
	o.linesAreDelims = false
	o.nulsAreDelims = false
	o.coalesceDelims = false
	o.escapeSequences = false
	o.additionalDelims = map[rune]bool{}
	o.parentheses = map[rune]rune{}
	o.trimParentheses = map[rune]rune{}
}

// parse implements the options DSL: a stream of directives, each an
// optional sign then a code character; some codes consume 1-2 following
// characters. `#name#` recursively executes `tokfmt-name` (a (1←0)
// function) and reparses its output.
func (o *defaultTokeniserOptions) parse(spec string, interp *Interpreter) {
	str := []rune(spec)
	positive := true
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '+':
			positive = true
			continue
		case '-':
			positive = false
			continue
		case 's':
			o.spacesAreDelims = positive
		case 'l':
			o.linesAreDelims = positive
		case 'n':
			o.nulsAreDelims = positive
		case 'c':
			o.coalesceDelims = positive
		case 'e':
			o.escapeSequences = positive
		case '_':
			o.nuke()
		case '!':
			o.setDefaults()
		case 'd':
			if i+1 < len(str) {
				i++
				if positive {
					o.additionalDelims[str[i]] = true
				} else {
					delete(o.additionalDelims, str[i])
				}
			}
		case 'S':
			o.spacesAreDelims = true
			o.linesAreDelims = false
			o.nulsAreDelims = false
			o.additionalDelims = map[rune]bool{}
			o.coalesceDelims = true
		case 'L':
			o.linesAreDelims = true
			o.spacesAreDelims = false
			o.nulsAreDelims = false
			o.additionalDelims = map[rune]bool{}
			o.coalesceDelims = false
		case '0':
			o.nuke()
			o.nulsAreDelims = true
		case 'b':
			if i+2 < len(str) {
				i += 2
				l, r := str[i-1], str[i]
				if positive {
					o.parentheses[l] = r
				} else {
					delete(o.parentheses, l)
					delete(o.trimParentheses, l)
				}
			}
		case 't':
			if i+2 < len(str) {
				i += 2
				l, r := str[i-1], str[i]
				if positive {
					o.parentheses[l] = r
					o.trimParentheses[l] = r
				} else {
					delete(o.trimParentheses, l)
				}
			}
		case '#':
			i++
			start := i
			for i < len(str) && str[i] != '#' {
				i++
			}
			name := "tokfmt-" + string(str[start:i])
			if parser, ok := interp.LookupLong(name); ok {
				if facet, ok := parser.(FunctionFacet); ok {
					if fn := facet.Function(); fn != nil && fn.Matches(1, 0) {
						out := make([]string, 1)
						if fn.Exec(out, nil, interp, fn.Parm) {
							o.parse(out[0], interp)
						}
					}
				}
			}
		}

		if i >= len(str) || str[i] != '-' {
			positive = true
		}
	}
}

func (o *defaultTokeniserOptions) isDelim(c rune) bool {
	if o.spacesAreDelims && isSpace(c) {
		return true
	}
	if o.linesAreDelims && (c == '\n' || c == '\r') {
		return true
	}
	if o.nulsAreDelims && c == 0 {
		return true
	}
	return o.additionalDelims[c]
}

// DefaultTokenise implements the default word/delimiter tokeniser (§4.H).
// It splits one token off str (scanning for a delimiter, honoring balanced
// bracket pairs and backslash-escaped characters when enabled), trims a
// wrapping balanced pair when requested, decodes backslash escapes when
// requested, and returns the token plus the unconsumed remainder.
func DefaultTokenise(str string, options string, interp *Interpreter) (token, remainder string) {
	o := newDefaultTokeniserOptions(options, interp)
	runes := []rune(str)

	off := 0
	for off < len(runes) && !o.isDelim(runes[off]) {
		if o.escapeSequences && runes[off] == '\\' {
			off += 2
			continue
		}
		if r, ok := o.parentheses[runes[off]]; ok {
			l := runes[off]
			off++
			for count := 1; count > 0 && off < len(runes); off++ {
				if runes[off] == r {
					count--
				} else if runes[off] == l {
					count++
				}
			}
			continue
		}
		off++
	}

	tok := string(runes[:off])

	if off < len(runes) {
		off++
		if o.linesAreDelims && off < len(runes) && runes[off-1] == '\r' && runes[off] == '\n' {
			off++
		}
		if o.coalesceDelims {
			for off < len(runes) && o.isDelim(runes[off]) {
				off++
			}
		}
	}

	if off < len(runes) {
		remainder = string(runes[off:])
	} else {
		remainder = ""
	}

	tok = trimBalancedPair(tok, o)
	if o.escapeSequences {
		tok = decodeEscapes(tok)
	}
	return tok, remainder
}

// DefaultTokeniserPreprocessor implements the one-shot normalisation step:
// when coalesceDelims is set, leading delimiters are dropped.
func DefaultTokeniserPreprocessor(str string, options string, interp *Interpreter) string {
	o := newDefaultTokeniserOptions(options, interp)
	runes := []rune(str)
	off := 0
	if o.coalesceDelims {
		for off < len(runes) && o.isDelim(runes[off]) {
			off++
		}
	}
	return string(runes[off:])
}

func trimBalancedPair(tok string, o *defaultTokeniserOptions) string {
	runes := []rune(tok)
	if len(runes) < 2 {
		return tok
	}
	r, ok := o.trimParentheses[runes[0]]
	if !ok {
		return tok
	}
	l := runes[0]
	count := 1
	i := 1
	for i < len(runes) && count > 0 {
		if runes[i] == r {
			count--
		} else if runes[i] == l {
			count++
		}
		i++
	}
	if count == 0 && i == len(runes) {
		return string(runes[1 : len(runes)-1])
	}
	return tok
}

// decodeEscapes implements the C-style backslash decoding table from §4.H.
func decodeEscapes(tok string) string {
	runes := []rune(tok)
	var b strings.Builder
	i := 0
	for i < len(runes) {
		if runes[i] != '\\' {
			b.WriteRune(runes[i])
			i++
			continue
		}
		i++
		if i >= len(runes) {
			break
		}
		switch runes[i] {
		case 'a':
			b.WriteRune('\a')
			i++
		case 'b':
			b.WriteRune('\b')
			i++
		case 'e':
			b.WriteRune(0x1B)
			i++
		case 'f':
			b.WriteRune('\f')
			i++
		case 'n':
			b.WriteRune('\n')
			i++
		case 'r':
			b.WriteRune('\r')
			i++
		case 't':
			b.WriteRune('\t')
			i++
		case 'v':
			b.WriteRune('\v')
			i++
		case '0', '1', '2', '3', '4', '5', '6', '7':
			var ch rune
			for i < len(runes) && runes[i] >= '0' && runes[i] <= '7' {
				ch = ch*8 + (runes[i] - '0')
				i++
			}
			b.WriteRune(ch)
		case 'x', 'X', 'u', 'U':
			fixedLen := 2
			if runes[i] == 'u' {
				fixedLen = 4
			} else if runes[i] == 'U' {
				fixedLen = 8
			}
			i++
			var ch rune
			if i < len(runes) && runes[i] == '{' {
				i++
				for i < len(runes) && isHexDigit(runes[i]) {
					ch = ch*16 + hexValue(runes[i])
					i++
				}
				if i < len(runes) && runes[i] == '}' {
					i++
				}
			} else {
				for i < len(runes) && fixedLen > 0 && isHexDigit(runes[i]) {
					ch = ch*16 + hexValue(runes[i])
					i++
					fixedLen--
				}
			}
			b.WriteRune(ch)
		default:
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	default:
		return r - 'A' + 10
	}
}
