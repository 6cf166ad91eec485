package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// whatever was written to it. run() prints directly to os.Stdout via
// fmt.Print, so tests that inspect output must swap the file descriptor.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func scriptFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.tg")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExecutesScriptAndPrintsResult(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := scriptFile(t, "`#self-insert#hi")

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"-C", "-e", in})
	})
	if code != exitSuccess {
		t.Fatalf("run exit code = %d, want %d", code, exitSuccess)
	}
	if out != "hi" {
		t.Errorf("run stdout = %q, want %q", out, "hi")
	}
}

func TestRunDryRunSkipsExecution(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := scriptFile(t, "#self-insert#hi")

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"-C", "-d", "-e", in})
	})
	if code != exitSuccess {
		t.Fatalf("run exit code = %d, want %d", code, exitSuccess)
	}
	if out != "" {
		t.Errorf("dry run stdout = %q, want empty", out)
	}
}

func TestRunReportsParseErrorInInput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := scriptFile(t, "`Q")

	code := run([]string{"-C", "-e", in})
	if code != exitParseErrorInInput {
		t.Errorf("run exit code = %d, want %d", code, exitParseErrorInInput)
	}
}

func TestRunReportsExecErrorInInput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := scriptFile(t, "`#num-div#(1,0)")

	code := run([]string{"-C", "-e", in})
	if code != exitExecErrorInInput {
		t.Errorf("run exit code = %d, want %d", code, exitExecErrorInInput)
	}
}

func TestRunAppliesDRegisterPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := scriptFile(t, "`#read-reg#x")

	var code int
	out := captureStdout(t, func() {
		code = run([]string{"-C", "-D", "x=hello", "-e", in})
	})
	if code != exitSuccess {
		t.Fatalf("run exit code = %d, want %d", code, exitSuccess)
	}
	if out != "hello" {
		t.Errorf("run stdout = %q, want %q", out, "hello")
	}
}

func TestRunRejectsMalformedRegisterAssignment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := scriptFile(t, "#self-insert#x")

	code := run([]string{"-C", "-D", "nope", "-e", in})
	if code != exitIncorrectUsage {
		t.Errorf("run exit code = %d, want %d", code, exitIncorrectUsage)
	}
}

func TestRunWritesOperationalFileInsteadOfStdout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	in := scriptFile(t, "`#self-insert#hi")
	out := filepath.Join(t.TempDir(), "out.txt")

	var code int
	captured := captureStdout(t, func() {
		code = run([]string{"-C", "-H", "-f", out, "-e", in})
	})
	if code != exitSuccess {
		t.Fatalf("run exit code = %d, want %d", code, exitSuccess)
	}
	if captured != "" {
		t.Errorf("run stdout = %q, want empty when -f is given", captured)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading operational file: %v", err)
	}
	if string(data) != "hi" {
		t.Errorf("operational file contents = %q, want %q", data, "hi")
	}
}

func TestRunRejectsExtraneousArguments(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	code := run([]string{"-C", "extra-arg"})
	if code != exitIncorrectUsage {
		t.Errorf("run exit code = %d, want %d", code, exitIncorrectUsage)
	}
}
