package tglng

import "testing"

func TestDefaultTokeniseSpaceDelimited(t *testing.T) {
	interp := New()
	tok, rest := DefaultTokenise("hello world again", "", interp)
	if tok != "hello" {
		t.Errorf("first token = %q, want %q", tok, "hello")
	}
	tok2, rest2 := DefaultTokenise(rest, "", interp)
	if tok2 != "world" || rest2 != "again" {
		t.Errorf("second token/remainder = (%q, %q), want (%q, %q)", tok2, rest2, "world", "again")
	}
}

func TestDefaultTokeniseBalancedParens(t *testing.T) {
	interp := New()
	tok, rest := DefaultTokenise("(a b c) rest", "", interp)
	if tok != "a b c" {
		t.Errorf("parenthesised token = %q, want %q (trimmed)", tok, "a b c")
	}
	if rest != "rest" {
		t.Errorf("remainder = %q, want %q", rest, "rest")
	}
}

func TestDefaultTokeniseCustomDelimiter(t *testing.T) {
	interp := New()
	tok, rest := DefaultTokenise("a,b,c", "_d,c", interp)
	if tok != "a" || rest != "b,c" {
		t.Errorf("custom-delimiter tokenise = (%q, %q), want (%q, %q)", tok, rest, "a", "b,c")
	}
}

func TestDefaultTokeniseEscapeSequences(t *testing.T) {
	interp := New()
	tok, _ := DefaultTokenise(`a\tb`, "e", interp)
	if tok != "a\tb" {
		t.Errorf("escape-decoded token = %q, want a tab-containing string", tok)
	}
}

func TestDefaultTokeniserPreprocessorTrimsLeadingDelims(t *testing.T) {
	interp := New()
	out := DefaultTokeniserPreprocessor("   leading spaces", "", interp)
	if out != "leading spaces" {
		t.Errorf("preprocessor output = %q, want %q", out, "leading spaces")
	}
}

func TestDecodeEscapesCommonForms(t *testing.T) {
	cases := map[string]string{
		`\n`:     "\n",
		`\t`:     "\t",
		`\\`:     `\`,
		`\x41`:   "A",
		`\101`:   "A",
		`A`: "A",
	}
	for in, want := range cases {
		if got := decodeEscapes(in); got != want {
			t.Errorf("decodeEscapes(%q) = %q, want %q", in, got, want)
		}
	}
}
