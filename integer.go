package tglng

// ParseInteger implements TglNG's integer grammar (grounded on the original
// C++ parseInteger): optional leading whitespace, optional sign, an
// optional 0b/0o/0x base prefix, greedy digit consumption, optional
// trailing whitespace. If end is nil, trailing garbage after the number (and
// its surrounding whitespace) is rejected; if non-nil, *end receives the
// index of the first unconsumed character and trailing garbage is allowed.
func ParseInteger(dst *int, text []rune, offset int, end *int) bool {
	ix := offset
	negative := false
	base := 10

	*dst = 0

	for ix < len(text) && isSpace(text[ix]) {
		ix++
	}
	if ix >= len(text) {
		if end != nil {
			*end = ix
		}
		return false
	}

	if text[ix] == '+' {
		ix++
	} else if text[ix] == '-' {
		ix++
		negative = true
	}

	if ix >= len(text) {
		if end != nil {
			*end = ix
		}
		return false
	}

	if ix+2 < len(text) && text[ix] == '0' {
		switch text[ix+1] {
		case 'b', 'B':
			base = 2
			ix += 2
		case 'o', 'O':
			base = 8
			ix += 2
		case 'x', 'X':
			base = 16
			ix += 2
		}
	}

	consumedDigit := false
	for ix < len(text) {
		curr := text[ix]
		var value int
		switch {
		case curr >= '0' && curr <= '9':
			value = int(curr - '0')
		case curr >= 'a' && curr <= 'f':
			value = 10 + int(curr-'a')
		case curr >= 'A' && curr <= 'F':
			value = 10 + int(curr-'A')
		default:
			goto doneDigits
		}
		if value >= base {
			goto doneDigits
		}
		ix++
		*dst = *dst*base + value
		consumedDigit = true
	}
doneDigits:
	if !consumedDigit {
		if end != nil {
			*end = ix
		}
		return false
	}

	for ix < len(text) && isSpace(text[ix]) {
		ix++
	}

	if negative {
		*dst = -*dst
	}

	if end != nil {
		*end = ix
		return true
	}
	return ix == len(text)
}

// IntToStr renders n the way register-bound loop counters expect: plain
// decimal, no thousands separators, a leading '-' for negatives.
func IntToStr(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [24]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ParseBool implements the loose truthiness test used by `if`,
// `false-coalesce`, and the logical-* builtins: a string is false if it is
// empty, "0", "false", "False" or "FALSE"; everything else (including
// other capitalisations such as "fAlse") is true.
func ParseBool(s string) bool {
	switch s {
	case "", "0":
		return false
	}
	switch s {
	case "false", "False", "FALSE":
		return false
	}
	return true
}
