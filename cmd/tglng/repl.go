package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	tg "github.com/AltSysrq/tglng"
	"github.com/bobappleyard/readline"
)

// runRepl is the interactive driver mode named in SPEC_FULL.md §10: an
// addition beyond the distilled CLI table, carried forward from the
// teacher's own Repl() (bobappleyard-ts's interpreter.go), adapted to
// complete long command names (`#name#`) instead of ts identifiers and to
// parse+execute one line of TglNG source per iteration instead of one ts
// statement.
func runRepl(interp *tg.Interpreter) int {
	readline.Completer = func(query, ctx string) []string {
		res := []string{}
		for _, name := range interp.LongNames() {
			if strings.HasPrefix(name, query) {
				res = append(res, name)
			}
		}
		return res
	}

	for {
		done := func() bool {
			defer func() {
				if e := recover(); e != nil {
					fmt.Printf("\033[1;31m%v\033[0m\n", e)
				}
			}()

			r := readline.Reader()
			if _, err := r.Read(nil); err == io.EOF {
				return true
			}

			line, err := bufio.NewReader(r).ReadString('\n')
			if err != nil && err != io.EOF {
				return true
			}
			line = strings.TrimRight(line, "\n")
			if line == "" {
				return false
			}
			readline.AddHistory(line)

			runes := []rune(line)
			offset := 0
			var tree tg.Command
			if res := interp.ParseAllRunes(&tree, runes, &offset, tg.ParseModeLiteral); res == tg.ParseError {
				return false
			}

			var out string
			if interp.Exec(&out, tree) {
				fmt.Println(out)
			}
			return false
		}()
		if done {
			break
		}
	}
	fmt.Println()
	return 0
}
