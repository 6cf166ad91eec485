// Package config implements the startup configuration discovery described
// in §6/§10/§12: optional system config, a permission-gated walk of
// per-directory .tglng files from the operational file's directory up
// toward $HOME, and finally the user's own configuration, grounded on
// original_source/src/startup.cxx.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tg "github.com/AltSysrq/tglng"
	"gopkg.in/yaml.v3"
)

var systemConfigs = []string{
	"/usr/local/etc/tglngrc",
	"/usr/etc/tglngrc",
	"/etc/tglngrc",
}

// Options mirrors the subset of options.cxx's globals startup discovery
// needs; the rest (operationalFile/implicitChdir) is handled by the
// cmd/tglng driver before Discover runs.
type Options struct {
	EnableSystemConfig bool
	UserConfigs        []string
}

// Discover runs the startup sequence: system config (unless disabled),
// the permission-gated auxiliary-directory walk, then the user's own
// configuration. Each config file is read in Command parse mode and
// executed purely for side effects (register writes, defun, bind, ...);
// its own output is discarded, matching startup.cxx's readConfig.
func Discover(interp *tg.Interpreter, opts Options) error {
	if opts.EnableSystemConfig {
		for _, path := range systemConfigs {
			if err := readConfig(interp, path); err != nil {
				return err
			}
		}
	}

	known, err := loadSet(homeRel(".tglng_known"))
	if err != nil {
		return err
	}
	permitted, err := loadSet(homeRel(".tglng_permitted"))
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	newKnown, err := readAuxConfigs(interp, known, permitted, cwd)
	if err != nil {
		return err
	}
	if newKnown {
		if err := saveSet(homeRel(".tglng_known"), known); err != nil {
			return err
		}
	}

	return readUserConfiguration(interp, opts.UserConfigs)
}

// readConfig reads path (silently skipping a missing file, as
// startup.cxx's readConfig does when the ifstream fails to open), parses
// it in Command mode, and executes the resulting tree for its side
// effects only.
func readConfig(interp *tg.Interpreter, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	runes := []rune(string(data))
	offset := 0
	var tree tg.Command
	if res := interp.ParseAllRunes(&tree, runes, &offset, tg.ParseModeCommand); res == tg.ParseError {
		return &ParseError{path}
	}

	var discard string
	if !interp.Exec(&discard, tree) {
		return &ExecError{path}
	}
	return nil
}

// ParseError and ExecError distinguish the two config-file failure modes
// so the driver can map them to the right exit code (§6).
type ParseError struct{ Path string }

func (e *ParseError) Error() string { return "parse error in config file: " + e.Path }

type ExecError struct{ Path string }

func (e *ExecError) Error() string { return "execution error in config file: " + e.Path }

func homeRel(basename string) string {
	home := os.Getenv("HOME")
	return filepath.Join(home, basename)
}

// readAuxConfigs walks directory upward toward $HOME (or "/" if $HOME is
// unset), reading a `.tglng` in any directory that is already permitted,
// and otherwise recording the directory as newly known (with a one-time
// warning) so the user can later promote it. Grounded on
// startup.cxx's readAuxConfigs.
func readAuxConfigs(interp *tg.Interpreter, known, permitted map[string]bool, directory string) (bool, error) {
	home := os.Getenv("HOME")
	if home == "" {
		home = "/"
	}
	newKnown := false

	for directory != "" && directory != "/" && directory != home {
		path := filepath.Join(directory, ".tglng")
		if _, err := os.Stat(path); err == nil {
			if permitted[directory] {
				if err := readConfig(interp, path); err != nil {
					return newKnown, err
				}
			} else if !known[directory] {
				println_warning(directory, path)
				known[directory] = true
				newKnown = true
			}
		}

		parent := filepath.Dir(directory)
		if parent == directory {
			break
		}
		directory = parent
	}

	return newKnown, nil
}

func println_warning(directory, path string) {
	warn := "Note: Aux config " + path + " exists, but is not marked as permitted.\n" +
		"Add \"" + directory + "\" to ~/.tglng_permitted if you trust this script.\n"
	tg.DiagOut().WriteString(warn)
}

func readUserConfiguration(interp *tg.Interpreter, userConfigs []string) error {
	if len(userConfigs) > 0 {
		for _, path := range userConfigs {
			if err := readConfig(interp, path); err != nil {
				return err
			}
		}
		return nil
	}
	if home := os.Getenv("HOME"); home == "" {
		return fmt.Errorf("locating user configuration: %w", tg.Undefined)
	}
	return readConfig(interp, homeRel(".tglng"))
}

// loadSet reads a directory set, preferring the YAML sibling of path
// (path+".yaml") and falling back to the original newline-per-entry
// format when no YAML file exists.
func loadSet(path string) (map[string]bool, error) {
	result := make(map[string]bool)

	if data, err := os.ReadFile(path + ".yaml"); err == nil {
		var entries []string
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
		for _, e := range entries {
			result[e] = true
		}
		return result, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			result[line] = true
		}
	}
	return result, nil
}

// saveSet writes the set in YAML form to path+".yaml".
func saveSet(path string, set map[string]bool) error {
	entries := make([]string, 0, len(set))
	for e := range set {
		entries = append(entries, e)
	}
	sort.Strings(entries)

	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path+".yaml", data, 0644)
}
