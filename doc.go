// Package calc implements an interactive floating-point calculator.
//
// An expression is a single line of text: numbers, the constants pi, e,
// and phi, functions like sin and sqrt, the last-result reference ans,
// and variable assignment with "name = expr". Every token and AST node
// carries its rune-offset span in the input, so errors point at the
// exact substring that caused them, including for multi-byte input like
// π or √.
//
// A Session holds variables and the last result across expressions.
// Parsing and evaluation are separate; Parse an expression once and
// evaluate it against any number of sessions, or use Session.Eval to do
// the whole pipeline for one line of input.
package calc
