// Command tglng is the driver for the TglNG macro/template interpreter:
// it flag-parses (§6's CLI surface), runs startup configuration discovery
// (§6/§10), reads the primary input, and either executes the resulting
// command tree or, with -d, merely reports whether it parsed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tg "github.com/AltSysrq/tglng"
	"github.com/AltSysrq/tglng/config"
	"github.com/AltSysrq/tglng/lib"
)

const (
	exitSuccess                 = 0
	exitParseErrorInUserLibrary = 1
	exitParseErrorInInput       = 2
	exitExecErrorInUserLibrary  = 3
	exitExecErrorInInput        = 4
	exitPlatformError           = 5
	exitIncorrectUsage          = 254
	exitTheSkyIsFalling         = 255
)

// stringList accumulates repeatable flag occurrences (-c, -e), mirroring
// options.cxx's list<string> userConfigs/scriptInputs.
type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

// registerAssignment accumulates -D X=VALUE occurrences into a rune-keyed
// map, enforcing the original's "len(value) >= 2, value[1] == '='" shape.
type registerAssignment map[rune]string

func (m registerAssignment) String() string { return "" }
func (m registerAssignment) Set(v string) error {
	runes := []rune(v)
	if len(runes) < 2 || runes[1] != '=' {
		return fmt.Errorf("-D or --register must have an argument of the form X=VALUE: %w", tg.ArgError(len(runes), 2))
	}
	m[runes[0]] = string(runes[2:])
	return nil
}

func main() {
	os.Exit(guardedRun(os.Args[1:]))
}

// guardedRun wraps run with the single panic/recover boundary described in
// §7/§10: a panic here can only mean an internal invariant violation (a
// bug in the core engine, not a user-facing parse/exec failure), so it
// maps to the "sky is falling" exit code rather than propagating.
func guardedRun(args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			code = exitTheSkyIsFalling
		}
	}()
	return run(args)
}

func run(args []string) int {
	fs := flag.NewFlagSet("tglng", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var operationalFile string
	var noChdir bool
	var userConfigs stringList
	var noSystemConfig bool
	var scriptInputs stringList
	registers := registerAssignment{}
	var dryRun bool
	var locateParseError bool
	var interactive bool

	fs.StringVar(&operationalFile, "f", "", "output target; also implicit chdir to its directory")
	fs.StringVar(&operationalFile, "file", "", "output target; also implicit chdir to its directory")
	fs.BoolVar(&noChdir, "H", false, "suppress the implicit chdir")
	fs.BoolVar(&noChdir, "no-chdir", false, "suppress the implicit chdir")
	fs.Var(&userConfigs, "c", "user config replacement; repeatable")
	fs.Var(&userConfigs, "config", "user config replacement; repeatable")
	fs.BoolVar(&noSystemConfig, "C", false, "suppress system configs")
	fs.BoolVar(&noSystemConfig, "no-system-config", false, "suppress system configs")
	fs.Var(&scriptInputs, "e", "primary input file; repeatable")
	fs.Var(&scriptInputs, "script", "primary input file; repeatable")
	fs.Var(registers, "D", "preset register X to VALUE, as X=VALUE")
	fs.Var(registers, "register", "preset register X to VALUE, as X=VALUE")
	fs.BoolVar(&dryRun, "d", false, "parse only")
	fs.BoolVar(&dryRun, "dry-run", false, "parse only")
	fs.BoolVar(&locateParseError, "l", false, "additionally print the offset of the first parse error")
	fs.BoolVar(&locateParseError, "locate-parse-error", false, "additionally print the offset of the first parse error")
	fs.BoolVar(&interactive, "i", false, "run an interactive read-eval-print loop instead of reading a single input")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitSuccess
		}
		return exitIncorrectUsage
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Extraneous arguments after options")
		printUsage(fs)
		return exitIncorrectUsage
	}

	if operationalFile != "" && !noChdir {
		if dir := filepath.Dir(operationalFile); dir != "." {
			if err := os.Chdir(dir); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to chdir() to %s: %v\n", dir, err)
				return exitPlatformError
			}
		}
	}

	interp := tg.New()
	lib.BindConventionalParens(interp)
	interp.SetLocateParseError(locateParseError)
	for r, v := range registers {
		interp.SetInitialRegister(r, v)
	}

	if err := config.Discover(interp, config.Options{
		EnableSystemConfig: !noSystemConfig,
		UserConfigs:        userConfigs,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var execErr *config.ExecError
		if errors.As(err, &execErr) {
			return exitExecErrorInUserLibrary
		}
		return exitParseErrorInUserLibrary
	}

	if interactive {
		return runRepl(interp)
	}

	input, err := readPrimaryInput(scriptInputs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitPlatformError
	}

	runes := []rune(input)
	offset := 0
	var tree tg.Command
	res := interp.ParseAllRunes(&tree, runes, &offset, tg.ParseModeLiteral)
	switch res {
	case tg.ParseError:
		return exitParseErrorInInput
	case tg.StopCloseParen, tg.StopCloseBracket, tg.StopCloseBrace:
		fmt.Fprintln(os.Stderr, "unexpected closing "+closeName(res)+" at top level")
		return exitParseErrorInInput
	}

	if dryRun {
		return exitSuccess
	}

	var out string
	if !interp.Exec(&out, tree) {
		return exitExecErrorInInput
	}

	if operationalFile != "" {
		if err := os.WriteFile(operationalFile, []byte(out), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitPlatformError
		}
	} else {
		fmt.Print(out)
	}

	return exitSuccess
}

func readPrimaryInput(scriptInputs []string) (string, error) {
	if len(scriptInputs) == 0 {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}

	var b strings.Builder
	for _, path := range scriptInputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		b.Write(data)
	}
	return b.String(), nil
}

func closeName(res tg.ParseResult) string {
	switch res {
	case tg.StopCloseParen:
		return "paren"
	case tg.StopCloseBracket:
		return "bracket"
	case tg.StopCloseBrace:
		return "brace"
	default:
		return "delimiter"
	}
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "usage: tglng [options]")
	fs.PrintDefaults()
}
