package lib

import (
	"testing"

	tg "github.com/AltSysrq/tglng"
)

// run parses in as a top-level command-mode program against interp and
// executes it, failing the test on any parse or exec error. It binds the
// conventional close-paren/-bracket/-brace short characters first, the way
// a real startup config would, since tg.New() alone only binds '#'.
func run(t *testing.T, interp *tg.Interpreter, in string) string {
	t.Helper()
	BindConventionalParens(interp)
	text := []rune(in)
	offset := 0
	var tree tg.Command
	if res := interp.ParseAllRunes(&tree, text, &offset, tg.ParseModeCommand); res != tg.StopEndOfInput {
		t.Fatalf("parsing %q gave %v, want StopEndOfInput (offset %d)", in, res, offset)
	}
	var out string
	if !interp.Exec(&out, tree) {
		t.Fatalf("executing %q failed", in)
	}
	return out
}

// runLiteral is run but starting in Literal mode, the mode the driver
// actually uses for a top-level document: plain text passes through
// unchanged, and each occurrence of interp.Escape introduces exactly one
// command before returning to plain text.
func runLiteral(t *testing.T, interp *tg.Interpreter, in string) string {
	t.Helper()
	BindConventionalParens(interp)
	text := []rune(in)
	offset := 0
	var tree tg.Command
	if res := interp.ParseAllRunes(&tree, text, &offset, tg.ParseModeLiteral); res != tg.StopEndOfInput {
		t.Fatalf("parsing %q gave %v, want StopEndOfInput (offset %d)", in, res, offset)
	}
	var out string
	if !interp.Exec(&out, tree) {
		t.Fatalf("executing %q failed", in)
	}
	return out
}
