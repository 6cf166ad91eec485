package tglng

import "fmt"

/*******************************************************************************

	Function facet

*******************************************************************************/

// Function is the uniform calling convention a CommandParser may expose
// (§4.G): a pure-ish routine taking OutArity output slots and InArity input
// strings, plus an opaque Parm (typically an external ID, e.g. a
// UserFunction). FunctionInvocation writes Exec's out[1:] into the
// characters of an output-register string; out[0] is always the function's
// own "return value" and becomes the invoking command's result.
type Function struct {
	OutArity int
	InArity  int
	Parm     uint
	Exec     func(out []string, in []string, interp *Interpreter, parm uint) bool
}

// Matches reports whether the function's arities are exactly
// (outArity ← inArity).
func (f *Function) Matches(outArity, inArity int) bool {
	return f.OutArity == outArity && f.InArity == inArity
}

// Compatible reports whether the function could be called with at most
// outArity outputs and at most inArity inputs.
func (f *Function) Compatible(outArity, inArity int) bool {
	return f.OutArity <= outArity && f.InArity <= inArity
}

// GetFunction looks up name in interp's long-name map, requires it to
// expose a Function facet, and requires validator(fn) to hold, reporting a
// diagnostic pinpointing offset on any failure.
func GetFunction(interp *Interpreter, name string, text []rune, offset int, validator func(*Function) bool) *Function {
	parser, ok := interp.LookupLong(name)
	if !ok {
		interp.errorRunes(fmt.Sprintf("No such command: %s", name), text, offset)
		return nil
	}
	facet, ok := parser.(FunctionFacet)
	if !ok {
		interp.errorRunes(fmt.Sprintf("Not a function: %s", name), text, offset)
		return nil
	}
	fn := facet.Function()
	if fn == nil || !validator(fn) {
		interp.errorRunes(fmt.Sprintf("Function %s does not have a compatible signature", name), text, offset)
		return nil
	}
	return fn
}

// ExactArity returns a validator usable with GetFunction that requires an
// exact arity match.
func ExactArity(outArity, inArity int) func(*Function) bool {
	return func(f *Function) bool { return f.Matches(outArity, inArity) }
}

// CompatibleArity returns a validator usable with GetFunction that accepts
// any function whose arities are no larger than requested.
func CompatibleArity(outArity, inArity int) func(*Function) bool {
	return func(f *Function) bool { return f.Compatible(outArity, inArity) }
}

/*******************************************************************************

	FunctionInvocation

*******************************************************************************/

// FunctionInvocation is the command produced when a fixed function name is
// called with a fixed argument list: it evaluates every arg command
// left-to-right into strings, calls the function, and splices out[1:] into
// the characters of an output-register string (e.g. `num-add` writes only
// out[0], so outRegs is empty for it; a hypothetical `(2<-...)` function
// would bind out[1] into outRegs[0]).
type FunctionInvocation struct {
	base
	fn      *Function
	args    []Command
	outRegs string
}

// NewFunctionInvocation constructs a FunctionInvocation, grounded on
// function.cxx's FunctionInvocation constructor.
func NewFunctionInvocation(left Command, fn *Function, args []Command, outRegs string) *FunctionInvocation {
	return &FunctionInvocation{base{left}, fn, args, outRegs}
}

func (c *FunctionInvocation) Exec(dst *string, interp *Interpreter) bool {
	in := make([]string, len(c.args))
	for i, arg := range c.args {
		if !interp.Exec(&in[i], arg) {
			return false
		}
	}

	out := make([]string, c.fn.OutArity)
	if !c.fn.Exec(out, in, interp, c.fn.Parm) {
		return false
	}

	*dst = out[0]
	for i, r := range c.outRegs {
		if i+1 < len(out) {
			interp.SetRegister(r, out[i+1])
		}
	}
	return true
}

// DynamicFunctionInvocation implements `call`: the function itself is
// obtained by evaluating a sub-command at call time rather than being
// fixed at parse time, so arity checking happens at Exec time too.
type DynamicFunctionInvocation struct {
	base
	fnNameCmd Command
	args      []Command
	outRegs   string
}

func NewDynamicFunctionInvocation(left Command, fnNameCmd Command, args []Command, outRegs string) *DynamicFunctionInvocation {
	return &DynamicFunctionInvocation{base{left}, fnNameCmd, args, outRegs}
}

// FunctionParser is the generic surface syntax any builtin exposing a
// Function facet gets for free (§4.G, grounded on function.cxx's
// FunctionParser): one command character, an optional `[outregs]` bracket,
// then a parenthesised, comma-separated argument list: `cmd[xy](a, b, c)`.
type FunctionParser struct {
	Fn *Function
}

// NewFunctionParser wraps fn in the generic calling-convention parser.
func NewFunctionParser(fn *Function) *FunctionParser {
	return &FunctionParser{fn}
}

func (p *FunctionParser) Function() *Function { return p.Fn }

func (p *FunctionParser) Parse(interp *Interpreter, left Command, text []rune, offset *int) (Command, ParseResult) {
	ap := NewArgumentParser(interp, text, offset, &left)
	var outregs string
	var done bool

	header := Seq(ap, ap.H(),
		Seq(ap, Opt(Seq(ap, ap.X('['), ap.To(&outregs, ']'))),
			Seq(ap, ap.X('('), Opt(ap.XInto(&done, ')')))))
	if !ap.Require(header) {
		return left, ParseError
	}

	var args []Command
	for !done {
		var arg Command
		step := Seq(ap, ap.A(&arg), Alt(ap.X(','), ap.XInto(&done, ')')))
		if !ap.Require(step) {
			return left, ParseError
		}
		args = append(args, arg)
	}

	return NewFunctionInvocation(left, p.Fn, args, outregs), ContinueParsing
}

func (c *DynamicFunctionInvocation) Exec(dst *string, interp *Interpreter) bool {
	var name string
	if !interp.Exec(&name, c.fnNameCmd) {
		return false
	}

	parser, ok := interp.LookupLong(name)
	if !ok {
		fmt.Fprintf(diagOut, "No such command: %s\n", name)
		return false
	}
	facet, ok := parser.(FunctionFacet)
	if !ok {
		fmt.Fprintf(diagOut, "Not a function: %s\n", name)
		return false
	}
	fn := facet.Function()
	if fn == nil || !fn.Matches(len(c.outRegs)+1, len(c.args)) {
		fmt.Fprintf(diagOut, "Function %s is not callable with %d inputs/%d outputs\n",
			name, len(c.args), len(c.outRegs)+1)
		return false
	}

	in := make([]string, len(c.args))
	for i, arg := range c.args {
		if !interp.Exec(&in[i], arg) {
			return false
		}
	}

	out := make([]string, fn.OutArity)
	if !fn.Exec(out, in, interp, fn.Parm) {
		return false
	}

	*dst = out[0]
	for i, r := range c.outRegs {
		if i+1 < len(out) {
			interp.SetRegister(r, out[i+1])
		}
	}
	return true
}
