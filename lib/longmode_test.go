package lib

import (
	"testing"

	tg "github.com/AltSysrq/tglng"
)

func TestLongModeBareNameDispatchesWriteThenRead(t *testing.T) {
	interp := tg.New()
	// long-mode wraps the rest of the input: write-reg and read-reg are
	// invoked here by bare name, with no delimiters of their own; the space
	// after each name ends it and is skipped before the register name.
	out := run(t, interp, "#long-mode#write-reg x{val}read-reg x")
	if out != "val" {
		t.Errorf("long-mode bare-name dispatch = %q, want %q", out, "val")
	}
}

func TestLongModeDispatchesBareNameWithNoTrailingHash(t *testing.T) {
	interp := tg.New()
	// "num-add" is terminated by '(', not '#' — long-mode-cmd must stop at
	// the first non-name character on its own, without requiring a literal
	// '#' sentinel the way long-command's #name# grammar does.
	out := run(t, interp, "#long-mode#num-add(1,2)")
	if out != "3" {
		t.Errorf("long-mode bare-name dispatch with no trailing '#' = %q, want %q", out, "3")
	}
}

func TestShortModeRestoresHashDelimitedDispatch(t *testing.T) {
	interp := tg.New()
	interp.LongMode = true
	// The '#' after "short-mode" terminates its bare name (whose last
	// character is short-mode's trigger) and then opens ordinary #name#
	// dispatch, which resumes for the rest of the input.
	out := run(t, interp, "short-mode#write-reg#x{val}#read-reg#x")
	if out != "val" {
		t.Errorf("short-mode followed by #-delimited dispatch = %q, want %q", out, "val")
	}
}
