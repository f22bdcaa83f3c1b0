// Package pid decodes and classifies signed integer particle identifiers.
//
// An identifier is read as a fixed sequence of decimal digits, least
// significant first:
//
//	nj  nq3  nq2  nq1  nl  nr  n  n8  n9  n10
//
// nj holds 2J+1, nq1..nq3 the quark content of hadrons, nl and nr the
// orbital and radial excitation and n the fundamental/excited family.
// Anything above the seventh digit is "extra bits" and marks composite or
// exotic numbering: nuclei (±10LZZZAAAI) and Q-balls (100xxxx0).
//
// Every derived quantity is only meaningful for codes where IsValid
// reports true. Callers must check validity first.
package pid
