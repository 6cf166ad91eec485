package lib

import (
	"testing"

	tg "github.com/AltSysrq/tglng"
)

func TestIfTrueBranch(t *testing.T) {
	out := run(t, tg.New(), "#if#{1}{yes}{no}")
	if out != "yes" {
		t.Errorf("if(1) = %q, want %q", out, "yes")
	}
}

func TestIfFalseBranch(t *testing.T) {
	out := run(t, tg.New(), "#if#{0}{yes}{no}")
	if out != "no" {
		t.Errorf("if(0) = %q, want %q", out, "no")
	}
}

func TestIfFalseBranchOmitted(t *testing.T) {
	out := run(t, tg.New(), "#if#{0}{yes}")
	if out != "" {
		t.Errorf("if(0) with no else branch = %q, want %q", out, "")
	}
}

func TestFalseCoalesceFallsThrough(t *testing.T) {
	out := run(t, tg.New(), "#false-coalesce#{0}{fallback}")
	if out != "fallback" {
		t.Errorf("false-coalesce(0) = %q, want %q", out, "fallback")
	}
}

func TestFalseCoalescePassesThroughTruthy(t *testing.T) {
	out := run(t, tg.New(), "#false-coalesce#{something}{fallback}")
	if out != "something" {
		t.Errorf("false-coalesce(something) = %q, want %q", out, "something")
	}
}

func TestForIntegerDefaultsCountUpFromZero(t *testing.T) {
	out := run(t, tg.New(), "#for-integer#3:#read-reg#i")
	if out != "012" {
		t.Errorf("for-integer#3 = %q, want %q", out, "012")
	}
}

func TestForIntPrintEmitsCounterImplicitly(t *testing.T) {
	// The bare '<' section form takes the accumulator as its left half and
	// an empty right half, consuming only the '<' itself; no closing
	// character follows it.
	out := run(t, tg.New(), "#for-int-print#3<")
	if out != "012" {
		t.Errorf("for-int-print#3 = %q, want %q", out, "012")
	}
}
