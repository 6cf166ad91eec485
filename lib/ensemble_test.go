package lib

import (
	"testing"

	tg "github.com/AltSysrq/tglng"
)

func TestEnsembleNewBindAndDispatch(t *testing.T) {
	interp := tg.New()
	out := run(t, interp,
		"#ensemble-new#myens##ensemble-bind#myens#read-reg#Q#write-reg#x{val}#myens#Qx")
	if out != "val" {
		t.Errorf("ensemble dispatch = %q, want %q", out, "val")
	}
}

func TestEnsembleIsScopedToItsOwnInterpreter(t *testing.T) {
	first := tg.New()
	second := tg.New()

	run(t, first, "#ensemble-new#myens#")
	run(t, second, "#ensemble-new#myens##ensemble-bind#myens#read-reg#Q#write-reg#x{second}")

	// Binding against first's "myens" must resolve to first's own ensemble
	// object, not second's, and must not fail outright either.
	text := []rune("#ensemble-bind#myens#read-reg#Q")
	offset := 0
	var tree tg.Command
	if res := first.ParseAllRunes(&tree, text, &offset, tg.ParseModeCommand); res == tg.ParseError {
		t.Fatalf("ensemble-bind against first's own ensemble failed: %v", res)
	}

	out := run(t, second, "#myens#Qx")
	if out != "second" {
		t.Errorf("second interpreter's ensemble dispatch = %q, want %q", out, "second")
	}
}

func TestEnsembleBindRejectsUnknownEnsemble(t *testing.T) {
	interp := tg.New()
	text := []rune("#ensemble-bind#no-such-ensemble#read-reg#Q")
	offset := 0
	var tree tg.Command
	if res := interp.ParseAllRunes(&tree, text, &offset, tg.ParseModeCommand); res != tg.ParseError {
		t.Fatalf("ensemble-bind against an unknown ensemble gave %v, want ParseError", res)
	}
}
