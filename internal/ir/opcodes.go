package ir

// This file is the instruction-tag registry: the closed tables the
// peepholes in internal/optimize consult to classify an opcode
// independent of its type/modifier bits. It plays the role the teacher
// repo gives its internal/stdlib module table and internal/builtins type
// registry — a static lookup of "known instruction semantics" rather than
// "known stdlib functions" — so that adding a new opcode is a one-line
// table edit, not a sprinkling of switch cases across every pass.

// foldableOpcodes are the base opcodes constant folding may evaluate when
// every source is a Constant (spec §4.2.a): arithmetic, bitwise,
// comparison, and conversion.
var foldableOpcodes = map[Tag]bool{
	OpAdd:       true,
	OpSub:       true,
	OpMul:       true,
	OpDiv:       true,
	OpMod:       true,
	OpAnd:       true,
	OpOr:        true,
	OpXor:       true,
	OpShl:       true,
	OpShr:       true,
	OpNeg:       true,
	OpNot:       true,
	OpCompareEQ: true,
	OpCompareNE: true,
	OpCompareLT: true,
	OpCompareLE: true,
	OpCompareGT: true,
	OpCompareGE: true,
	OpConvert:   true,
}

// IsFoldable reports whether op is in the closed set of constant-foldable
// base opcodes.
func IsFoldable(op Tag) bool { return foldableOpcodes[op] }

// IsSideEffecting reports whether op is in the closed set that is never
// removable without observed uses (spec §4.5). Exported so callers
// outside this package can use the same classification without reaching
// into node internals.
func IsSideEffecting(op Tag) bool { return isSideEffecting(op) }
