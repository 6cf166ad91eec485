package tglng

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewSeedsFromGlobalBindings(t *testing.T) {
	RegisterGlobal("test-new-marker", echoParser{})
	defer delete(globalBindings, "test-new-marker")

	interp := New()
	if _, ok := interp.LookupLong("test-new-marker"); !ok {
		t.Fatal("New() interpreter does not see a global binding registered before construction")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := New()
	base.SetRegister('a', "one")

	clone := base.Clone()
	clone.SetRegister('a', "two")
	clone.BindLong("clone-only", echoParser{})

	if got := base.Register('a'); got != "one" {
		t.Errorf("mutating clone's register leaked into base: got %q", got)
	}
	if _, ok := base.LookupLong("clone-only"); ok {
		t.Error("binding added to clone leaked into base")
	}
}

func TestRegisterLifecycle(t *testing.T) {
	interp := New()
	if _, ok := interp.LookupRegister('z'); ok {
		t.Fatal("fresh register should be unset")
	}
	interp.SetRegister('z', "")
	if v, ok := interp.LookupRegister('z'); !ok || v != "" {
		t.Fatalf("register explicitly set to empty should read back as set: got (%q, %v)", v, ok)
	}
	interp.UnsetRegister('z')
	if _, ok := interp.LookupRegister('z'); ok {
		t.Fatal("UnsetRegister should remove the entry entirely")
	}
}

func TestExecWalksLeftChainInOrder(t *testing.T) {
	interp := New()
	var chain Command
	chain = newSelfInsert(chain, "a")
	chain = newSelfInsert(chain, "b")
	chain = newSelfInsert(chain, "c")

	var out string
	if !interp.Exec(&out, chain) {
		t.Fatal("Exec returned false on a chain of self-inserts")
	}
	if out != "abc" {
		t.Errorf("Exec produced %q, want %q", out, "abc")
	}
}

func TestExecNilCommand(t *testing.T) {
	interp := New()
	var out string
	if !interp.Exec(&out, nil) || out != "" {
		t.Errorf("Exec(nil) = (%q, ...), want empty string and true", out)
	}
}

func TestParseAllRunesLiteralMode(t *testing.T) {
	interp := New()
	text := []rune("hello")
	offset := 0
	var tree Command
	res := interp.ParseAllRunes(&tree, text, &offset, ParseModeLiteral)
	if res != StopEndOfInput {
		t.Fatalf("ParseAllRunes result = %v, want StopEndOfInput", res)
	}
	var out string
	if !interp.Exec(&out, tree) || out != "hello" {
		t.Errorf("Exec(tree) = (%q, ...), want %q", out, "hello")
	}
}

func TestParseRunesUnboundShortCommand(t *testing.T) {
	interp := New()
	text := []rune("!")
	offset := 0
	var tree Command
	res := interp.ParseAllRunes(&tree, text, &offset, ParseModeCommand)
	if res != ParseError {
		t.Fatalf("parsing an unbound short command gave %v, want ParseError", res)
	}
}

func TestRegistersSnapshotMatchesSetRegisters(t *testing.T) {
	interp := New()
	interp.SetRegister('a', "one")
	interp.SetRegister('b', "two")

	want := map[rune]string{'a': "one", 'b': "two"}
	if diff := cmp.Diff(want, interp.Registers()); diff != "" {
		t.Errorf("Registers() mismatch (-want +got):\n%s", diff)
	}

	interp.SetRegister('a', "mutated")
	interp.SetRegister('c', "new")
	interp.SetRegisters(want)

	if diff := cmp.Diff(want, interp.Registers()); diff != "" {
		t.Errorf("after SetRegisters, Registers() mismatch (-want +got):\n%s", diff)
	}
}

// echoParser is a minimal CommandParser used by tests that only need a
// resolvable name, not any particular parse behavior.
type echoParser struct{}

func (echoParser) Parse(interp *Interpreter, left Command, text []rune, offset *int) (Command, ParseResult) {
	return newSelfInsert(left, "echo"), ContinueParsing
}
