/*

Package tglng implements the TglNG macro/template interpreter: a
string-oriented text-processing language where programs are written as
plain text interspersed with command invocations, and every command
reads strings in and writes a string out.

Basic Syntax

Input text is emitted literally except where a command is invoked.
A short command is a single punctuation or symbolic character bound in
the interpreter's short-command table; a long command is written
between `#` delimiters, `#name#`, and looked up in the long-command
table. In a top-level document each command is introduced by the escape
character (a backtick by default); everything else is plain text:

	Hello, `#read-reg#w!

Commands may take arguments, delimited according to the argument
grammar the command itself declares (parenthesised groups, bracketed
groups, or a single following token). A command that needs a body of
text to process, rather than a plain argument, takes a section: a run
of text bounded by matching parens, brackets or braces, within which
nested commands are parsed and executed recursively.

Registers

Registers are the language's variables: single-character-named string
cells threaded through an Interpreter. Commands read and write them
with read-reg/write-reg, or implicitly via binding forms such as
for-integer and for-each, which rebind a register to each loop value
in turn before executing their body.

Functions

Some commands are Functions: fixed-arity string-in/string-out
operations invoked either through a parenthesised
FunctionInvocation syntax or dynamically via call. User-defined
functions (defun, lambda) compile their body into a Command and wrap
it in an external UserFunction value so it can be invoked the same way
as any builtin Function.

Extending The Command Set

New commands are added by implementing CommandParser and registering
it, either globally at init() time with RegisterGlobal for commands
that ship with the interpreter (see the lib package), or against one
Interpreter instance with BindLong/BindShort for commands scoped to a
single run.

*/
package tglng
