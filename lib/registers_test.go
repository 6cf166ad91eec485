package lib

import (
	"testing"

	tg "github.com/AltSysrq/tglng"
)

func TestWriteReadReg(t *testing.T) {
	interp := tg.New()
	out := run(t, interp, "#write-reg#x{hello}#read-reg#x")
	if out != "hello" {
		t.Errorf("write-reg/read-reg round trip = %q, want %q", out, "hello")
	}
}

func TestUnsetReg(t *testing.T) {
	interp := tg.New()
	interp.SetRegister('x', "present")
	run(t, interp, "#unset-reg#x")
	if _, ok := interp.LookupRegister('x'); ok {
		t.Error("unset-reg did not remove the register")
	}
}
