package config

import (
	"os"
	"path/filepath"
	"testing"

	tg "github.com/AltSysrq/tglng"
	_ "github.com/AltSysrq/tglng/lib"
)

func TestReadConfigSkipsMissingFile(t *testing.T) {
	interp := tg.New()
	if err := readConfig(interp, filepath.Join(t.TempDir(), "does-not-exist")); err != nil {
		t.Fatalf("readConfig on missing file = %v, want nil", err)
	}
}

func TestReadConfigRunsFileForSideEffects(t *testing.T) {
	interp := tg.New()
	path := filepath.Join(t.TempDir(), "rc")
	if err := os.WriteFile(path, []byte("#write-reg#x{hi}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := readConfig(interp, path); err != nil {
		t.Fatalf("readConfig = %v, want nil", err)
	}
	if got := interp.Register('x'); got != "hi" {
		t.Errorf("register x = %q, want %q", got, "hi")
	}
}

func TestReadConfigReportsParseError(t *testing.T) {
	interp := tg.New()
	path := filepath.Join(t.TempDir(), "rc")
	if err := os.WriteFile(path, []byte("#("), 0644); err != nil {
		t.Fatal(err)
	}
	err := readConfig(interp, path)
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("readConfig error = %v (%T), want *ParseError", err, err)
	}
}

func TestReadConfigReportsExecError(t *testing.T) {
	interp := tg.New()
	path := filepath.Join(t.TempDir(), "rc")
	if err := os.WriteFile(path, []byte("#num-div#(1,0)"), 0644); err != nil {
		t.Fatal(err)
	}
	err := readConfig(interp, path)
	if _, ok := err.(*ExecError); !ok {
		t.Fatalf("readConfig error = %v (%T), want *ExecError", err, err)
	}
}

func TestReadUserConfigurationFailsWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")
	interp := tg.New()
	err := readUserConfiguration(interp, nil)
	if err == nil {
		t.Fatal("readUserConfiguration with no HOME and no explicit configs = nil, want error")
	}
}

func TestReadUserConfigurationPrefersExplicitPaths(t *testing.T) {
	interp := tg.New()
	path := filepath.Join(t.TempDir(), "rc")
	if err := os.WriteFile(path, []byte("#write-reg#y{explicit}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := readUserConfiguration(interp, []string{path}); err != nil {
		t.Fatalf("readUserConfiguration = %v, want nil", err)
	}
	if got := interp.Register('y'); got != "explicit" {
		t.Errorf("register y = %q, want %q", got, "explicit")
	}
}

func TestLoadSetFallsBackToLegacyNewlineFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "known")
	if err := os.WriteFile(path, []byte("/a\n/b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	set, err := loadSet(path)
	if err != nil {
		t.Fatalf("loadSet = %v, want nil", err)
	}
	if !set["/a"] || !set["/b"] || len(set) != 2 {
		t.Errorf("loadSet legacy = %v, want {/a, /b}", set)
	}
}

func TestSaveSetThenLoadSetYAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "known")
	original := map[string]bool{"/a": true, "/b": true}
	if err := saveSet(path, original); err != nil {
		t.Fatalf("saveSet = %v, want nil", err)
	}
	if _, err := os.Stat(path + ".yaml"); err != nil {
		t.Fatalf("expected %s.yaml to exist: %v", path, err)
	}
	got, err := loadSet(path)
	if err != nil {
		t.Fatalf("loadSet = %v, want nil", err)
	}
	if !got["/a"] || !got["/b"] || len(got) != 2 {
		t.Errorf("loadSet after saveSet = %v, want %v", got, original)
	}
}

func TestLoadSetPrefersYAMLOverLegacyWhenBothExist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "known")
	if err := os.WriteFile(path, []byte("/legacy\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := saveSet(path, map[string]bool{"/yaml": true}); err != nil {
		t.Fatal(err)
	}
	got, err := loadSet(path)
	if err != nil {
		t.Fatalf("loadSet = %v, want nil", err)
	}
	if !got["/yaml"] || got["/legacy"] {
		t.Errorf("loadSet = %v, want only {/yaml}", got)
	}
}

func TestDiscoverRunsUserConfigWithoutSystemOrAux(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, ".tglng"), []byte("#write-reg#z{loaded}"), 0644); err != nil {
		t.Fatal(err)
	}

	interp := tg.New()
	if err := Discover(interp, Options{EnableSystemConfig: false}); err != nil {
		t.Fatalf("Discover = %v, want nil", err)
	}
	if got := interp.Register('z'); got != "loaded" {
		t.Errorf("register z = %q, want %q", got, "loaded")
	}
}
