package lib

import (
	"testing"

	tg "github.com/AltSysrq/tglng"
)

func TestArithmeticBasicOps(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"#num-add#(2,3)", "5"},
		{"#num-sub#(5,3)", "2"},
		{"#num-mul#(4,3)", "12"},
		{"#num-div#(9,2)", "4"},
		{"#num-mod#(9,2)", "1"},
	}
	for _, c := range cases {
		out := run(t, tg.New(), c.in)
		if out != c.want {
			t.Errorf("%s = %q, want %q", c.in, out, c.want)
		}
	}
}

func TestArithmeticComparisons(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"#num-equ#(3,3)", "1"},
		{"#num-neq#(3,3)", "0"},
		{"#num-slt#(2,3)", "1"},
		{"#num-sgt#(2,3)", "0"},
		{"#num-leq#(3,3)", "1"},
		{"#num-geq#(2,3)", "0"},
	}
	for _, c := range cases {
		out := run(t, tg.New(), c.in)
		if out != c.want {
			t.Errorf("%s = %q, want %q", c.in, out, c.want)
		}
	}
}

func TestArithmeticDivideByZeroFails(t *testing.T) {
	interp := tg.New()
	text := []rune("#num-div#(1,0)")
	offset := 0
	var tree tg.Command
	if res := interp.ParseAllRunes(&tree, text, &offset, tg.ParseModeCommand); res != tg.StopEndOfInput {
		t.Fatalf("parsing %q gave %v", string(text), res)
	}
	var out string
	if interp.Exec(&out, tree) {
		t.Fatalf("num-div by zero succeeded, want failure")
	}
}
