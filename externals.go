package tglng

// UserFunction is the external object backing `defun` and `lambda` (§4.G).
// It is stored in an Interpreter's externals table by NewExternal and
// invoked through a Function facet whose Parm is the returned ID.
//
// Where the teacher's classes.go declares the fixed set of built-in class
// variables for ts's object model (ObjectClass, StringClass, ...), TglNG has
// no object model (§1 Non-goals); the one "built-in external type" the core
// language actually needs is this one, so it lives here in its place.
type UserFunction struct {
	Body    Command
	InRegs  string
	OutRegs string
}

// Invoke implements the five-step protocol from §4.G:
//  1. save the current register map entirely;
//  2. write each input into the register named by the corresponding
//     character of InRegs;
//  3. evaluate Body (result becomes out[0]);
//  4. write each output register's current value into out[1:];
//  5. restore the register map, whether or not evaluation succeeded.
func (uf *UserFunction) Invoke(out []string, in []string, interp *Interpreter) bool {
	saved := interp.Registers()
	defer interp.SetRegisters(saved)

	for i, r := range uf.InRegs {
		if i < len(in) {
			interp.SetRegister(r, in[i])
		}
	}

	var result string
	ok := interp.Exec(&result, uf.Body)
	if !ok {
		return false
	}
	out[0] = result

	for i, r := range uf.OutRegs {
		if i+1 < len(out) {
			out[i+1] = interp.Register(r)
		}
	}
	return true
}
