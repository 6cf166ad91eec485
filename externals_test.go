package tglng

import "testing"

func TestUserFunctionInvokeWritesInputsAndOutputs(t *testing.T) {
	interp := New()
	interp.SetRegister('n', "outer")

	// Body reads register n and appends "!" via self-insert concatenation,
	// so the invocation result reflects the freshly written input.
	body := newSelfInsert(&registerReadCommand{base{}, 'n'}, "!")

	uf := &UserFunction{Body: body, InRegs: "n", OutRegs: "m"}
	interp.SetRegister('m', "untouched")

	out := make([]string, 2)
	in := []string{"inner"}
	if !uf.Invoke(out, in, interp) {
		t.Fatal("Invoke returned false, want true")
	}
	if out[0] != "inner!" {
		t.Errorf("out[0] = %q, want %q", out[0], "inner!")
	}
	// OutRegs names 'm', which the body never touches, so it carries
	// forward whatever was in the register at the moment the body ran
	// (the value restored for the caller afterward is the pre-Invoke one).
	if out[1] != "untouched" {
		t.Errorf("out[1] = %q, want %q", out[1], "untouched")
	}
}

func TestUserFunctionInvokeRestoresRegistersAfterReturn(t *testing.T) {
	interp := New()
	interp.SetRegister('n', "before")

	body := newSelfInsert(nil, "result")
	uf := &UserFunction{Body: body, InRegs: "n"}

	out := make([]string, 1)
	if !uf.Invoke(out, []string{"clobbered"}, interp) {
		t.Fatal("Invoke returned false, want true")
	}
	if got := interp.Register('n'); got != "before" {
		t.Errorf("register n after Invoke = %q, want %q (restored)", got, "before")
	}
}

func TestUserFunctionInvokeRestoresRegistersOnFailure(t *testing.T) {
	interp := New()
	interp.SetRegister('n', "before")

	uf := &UserFunction{Body: &failingCommand{}, InRegs: "n"}
	out := make([]string, 1)
	if uf.Invoke(out, []string{"clobbered"}, interp) {
		t.Fatal("Invoke returned true, want false")
	}
	if got := interp.Register('n'); got != "before" {
		t.Errorf("register n after failed Invoke = %q, want %q (restored)", got, "before")
	}
}

func TestUserFunctionInvokeIgnoresExcessInputsAndOutputs(t *testing.T) {
	interp := New()
	uf := &UserFunction{Body: newSelfInsert(nil, "ok"), InRegs: "a", OutRegs: "bc"}

	out := make([]string, 1) // room for out[0] only; OutRegs names 2 registers
	if !uf.Invoke(out, []string{"x", "y", "z"}, interp) {
		t.Fatal("Invoke returned false, want true")
	}
	if out[0] != "ok" {
		t.Errorf("out[0] = %q, want %q", out[0], "ok")
	}
}

func TestNewExternalRoundTripsThroughID(t *testing.T) {
	interp := New()
	uf := &UserFunction{Body: newSelfInsert(nil, "v"), InRegs: "", OutRegs: ""}

	id := interp.NewExternal(uf)
	got, ok := interp.External(id)
	if !ok {
		t.Fatal("External(id) returned ok=false immediately after NewExternal")
	}
	if got.(*UserFunction) != uf {
		t.Error("External(id) did not return the same *UserFunction that was stored")
	}
}

func TestExternalUnknownIDNotFound(t *testing.T) {
	interp := New()
	if _, ok := interp.External(9999); ok {
		t.Error("External(unregistered id) returned ok=true, want false")
	}
}

// failingCommand always reports execution failure, used to exercise
// UserFunction.Invoke's restore-on-failure path.
type failingCommand struct {
	base
}

func (c *failingCommand) Exec(dst *string, interp *Interpreter) bool { return false }
