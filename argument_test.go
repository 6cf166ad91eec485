package tglng

import "testing"

func TestArgumentParserHInto(t *testing.T) {
	interp := New()
	var left Command
	text := []rune("xrest")
	offset := 0
	ap := NewArgumentParser(interp, text, &offset, &left)

	var c rune
	m := ap.HInto(&c)
	if !m.match() || !m.get() {
		t.Fatal("HInto failed to match/get a leading character")
	}
	if c != 'x' || offset != 1 {
		t.Errorf("HInto consumed %q at offset %d, want 'x' at 1", c, offset)
	}
}

func TestArgumentParserN(t *testing.T) {
	interp := New()
	var left Command
	text := []rune("-42 tail")
	offset := 0
	ap := NewArgumentParser(interp, text, &offset, &left)

	var n int
	m := ap.N(&n)
	if !m.match() {
		t.Fatal("N did not match a leading signed integer")
	}
	if !m.get() || n != -42 {
		t.Errorf("N extracted %d, want -42", n)
	}
}

func TestArgumentParserAnAndNs(t *testing.T) {
	interp := New()
	text := []rune("abc123 !rest")
	offset := 0
	var left Command
	ap := NewArgumentParser(interp, text, &offset, &left)

	var word string
	m := ap.An(&word)
	if !m.match() || !m.get() || word != "abc123" {
		t.Errorf("An extracted %q, want %q", word, "abc123")
	}

	var rest string
	m2 := ap.Ns(&rest)
	if !m2.match() || !m2.get() || rest != "!rest" {
		t.Errorf("Ns extracted %q, want %q", rest, "!rest")
	}
}

func TestArgumentParserTo(t *testing.T) {
	interp := New()
	text := []rune("hello/world")
	offset := 0
	var left Command
	ap := NewArgumentParser(interp, text, &offset, &left)

	var s string
	m := ap.To(&s, '/')
	if !m.match() {
		t.Fatal("To did not match when the sentinel appears later in the text")
	}
	if !m.get() || s != "hello" {
		t.Errorf("To extracted %q, want %q", s, "hello")
	}
	if offset != len("hello/") {
		t.Errorf("offset after To = %d, want %d", offset, len("hello/"))
	}
}

func TestArgumentParserToNoSentinel(t *testing.T) {
	interp := New()
	text := []rune("no sentinel here")
	offset := 0
	var left Command
	ap := NewArgumentParser(interp, text, &offset, &left)

	var s string
	if ap.To(&s, '/').match() {
		t.Error("To matched even though the sentinel never appears")
	}
}

func TestArgumentParserRequireReportsFailure(t *testing.T) {
	interp := New()
	text := []rune("")
	offset := 0
	var left Command
	ap := NewArgumentParser(interp, text, &offset, &left)

	var n int
	if ap.Require(ap.N(&n)) {
		t.Error("Require succeeded against empty input")
	}
}

func TestSeqAndOpt(t *testing.T) {
	interp := New()
	text := []rune("ab")
	offset := 0
	var left Command
	ap := NewArgumentParser(interp, text, &offset, &left)

	var a, b rune
	seq := Seq(ap, ap.HInto(&a), ap.HInto(&b))
	if !seq.match() || !seq.get() {
		t.Fatal("Seq of two H's failed against \"ab\"")
	}
	if a != 'a' || b != 'b' {
		t.Errorf("Seq extracted (%q, %q), want ('a', 'b')", a, b)
	}

	offset = 0
	opt := Opt(ap.X('z'))
	if !opt.match() || !opt.get() {
		t.Error("Opt should always match/get even when its inner matcher doesn't match")
	}
	if offset != 0 {
		t.Error("Opt's inner matcher should not have consumed anything when it didn't match")
	}
}
