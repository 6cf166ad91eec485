package lib

import (
	"testing"

	tg "github.com/AltSysrq/tglng"
)

func magicCaseRun(t *testing.T, cmd, input, want string) {
	t.Helper()
	interp := tg.New()
	out := run(t, interp, "#write-reg#S{"+input+"}#"+cmd+"#(#read-reg#S)")
	if out != want {
		t.Errorf("%s(%q) = %q, want %q", cmd, input, out, want)
	}
}

func TestStrToLowerAndToUpper(t *testing.T) {
	magicCaseRun(t, "str-tolower", "Hello World", "hello world")
	magicCaseRun(t, "str-toupper", "Hello World", "HELLO WORLD")
}

func TestStrToTitleCapitalizesOnlyFirstLetter(t *testing.T) {
	// str-totitle never replaces separators, so without an existing case
	// transition it only capitalizes the very first letter of the string.
	magicCaseRun(t, "str-totitle", "hello world", "Hello world")
}

func TestStrToSentMatchesTitleWhenAllLowercase(t *testing.T) {
	magicCaseRun(t, "str-tosent", "hello world", "Hello world")
}

func TestStrToCamelInsertsNoDelimiterButCapitalizesWords(t *testing.T) {
	magicCaseRun(t, "str-tocamel", "hello world", "helloWorld")
}

func TestStrToPascalCapitalizesEveryWord(t *testing.T) {
	magicCaseRun(t, "str-topascal", "hello world", "HelloWorld")
}

func TestStrToScreamUppercasesWithUnderscore(t *testing.T) {
	magicCaseRun(t, "str-toscream", "hello world", "HELLO_WORLD")
}

func TestStrToCstyleLowercasesWithUnderscore(t *testing.T) {
	magicCaseRun(t, "str-tocstyle", "hello world", "hello_world")
}

func TestStrToCaspalUnderscoreSeparatedCapitalized(t *testing.T) {
	magicCaseRun(t, "str-tocaspal", "hello world", "Hello_World")
}

func TestStrToLispHyphenatedLowercase(t *testing.T) {
	magicCaseRun(t, "str-tolisp", "hello world", "hello-world")
}

func TestStrToCobolHyphenatedUppercase(t *testing.T) {
	magicCaseRun(t, "str-tocobol", "hello world", "HELLO-WORLD")
}
