package optimize

import (
	"math"

	"shaderopt/internal/ir"
)

// simplifyAlgebraic implements spec §4.2.b's closed set of algebraic
// identities. Every rewrite either turns n into a Copy of an existing
// operand or replaces it with a freshly materialized constant; none of them
// alter observable NaN, rounding, or signed-zero behavior for floating
// point operands — the one identity that would (`x*0 -> 0`) is restricted
// to the integer type tags.
func simplifyAlgebraic(n *ir.Node) bool {
	switch n.Instr.Opcode() {
	case ir.OpAdd:
		return simplifyAdd(n)
	case ir.OpMul:
		return simplifyMul(n, n.Instr.TypeMask())
	case ir.OpAnd, ir.OpOr:
		return simplifyIdempotent(n)
	case ir.OpXor:
		return simplifySelfInverse(n)
	case ir.OpShl, ir.OpShr:
		return simplifyShiftByZero(n)
	case ir.OpLogicalAnd:
		return simplifyLogicalAnd(n)
	case ir.OpLogicalOr:
		return simplifyLogicalOr(n)
	case ir.OpSelect:
		return simplifySelect(n)
	case ir.OpCompareLT, ir.OpCompareLE, ir.OpCompareGT, ir.OpCompareGE:
		return simplifyUnsignedBoundary(n)
	}
	return false
}

func isZeroConstant(o *ir.Operand) bool { return o.IsConstant() && o.Value == 0 }

func isOneConstant(o *ir.Operand, typ ir.Tag) bool {
	if !o.IsConstant() {
		return false
	}
	if typ == ir.TypeFP32 {
		return o.Value == math.Float32bits(1.0)
	}
	return o.Value == 1
}

// simplifyAdd: x+0 -> x, 0+x -> x.
func simplifyAdd(n *ir.Node) bool {
	srcs := n.Sources()
	if len(srcs) != 2 {
		return false
	}
	switch {
	case isZeroConstant(srcs[1]):
		ir.TurnIntoCopy(n, srcs[0])
	case isZeroConstant(srcs[0]):
		ir.TurnIntoCopy(n, srcs[1])
	default:
		return false
	}
	return true
}

// simplifyMul: x*1 -> x (all types), x*0 -> 0 restricted to integer types.
func simplifyMul(n *ir.Node, typ ir.Tag) bool {
	srcs := n.Sources()
	if len(srcs) != 2 {
		return false
	}
	a, b := srcs[0], srcs[1]
	switch {
	case isOneConstant(a, typ):
		ir.TurnIntoCopy(n, b)
		return true
	case isOneConstant(b, typ):
		ir.TurnIntoCopy(n, a)
		return true
	case typ != ir.TypeFP32 && (isZeroConstant(a) || isZeroConstant(b)):
		ir.TurnIntoCopy(n, ir.NewConstant(0))
		return true
	}
	return false
}

// simplifyIdempotent: x&x -> x, x|x -> x, matched on literal operand
// identity — not ir.SameValue, since that would also unify two distinct
// loads that happen to produce equal values, which §4.3's design note
// reserves for a future, more careful treatment.
func simplifyIdempotent(n *ir.Node) bool {
	srcs := n.Sources()
	if len(srcs) != 2 || srcs[0] != srcs[1] {
		return false
	}
	ir.TurnIntoCopy(n, srcs[0])
	return true
}

// simplifySelfInverse: x^x -> 0.
func simplifySelfInverse(n *ir.Node) bool {
	srcs := n.Sources()
	if len(srcs) != 2 || srcs[0] != srcs[1] {
		return false
	}
	ir.TurnIntoCopy(n, ir.NewConstant(0))
	return true
}

// simplifyShiftByZero: x<<0 -> x, x>>0 -> x.
func simplifyShiftByZero(n *ir.Node) bool {
	srcs := n.Sources()
	if len(srcs) != 2 || !isZeroConstant(srcs[1]) {
		return false
	}
	ir.TurnIntoCopy(n, srcs[0])
	return true
}

// simplifyLogicalAnd: a&&false -> false, a&&true -> a.
func simplifyLogicalAnd(n *ir.Node) bool {
	srcs := n.Sources()
	if len(srcs) != 2 {
		return false
	}
	for i, s := range srcs {
		if !s.IsConstant() {
			continue
		}
		if s.Value == 0 {
			ir.TurnIntoCopy(n, ir.NewConstant(0))
		} else {
			ir.TurnIntoCopy(n, srcs[1-i])
		}
		return true
	}
	return false
}

// simplifyLogicalOr: a||true -> true, a||false -> a.
func simplifyLogicalOr(n *ir.Node) bool {
	srcs := n.Sources()
	if len(srcs) != 2 {
		return false
	}
	for i, s := range srcs {
		if !s.IsConstant() {
			continue
		}
		if s.Value != 0 {
			ir.TurnIntoCopy(n, ir.NewConstant(1))
		} else {
			ir.TurnIntoCopy(n, srcs[1-i])
		}
		return true
	}
	return false
}

// simplifySelect collapses Select(cond, a, b) to a or b when cond is a
// Constant. Source order is [cond, ifTrue, ifFalse].
func simplifySelect(n *ir.Node) bool {
	srcs := n.Sources()
	if len(srcs) != 3 || !srcs[0].IsConstant() {
		return false
	}
	if srcs[0].Value != 0 {
		ir.TurnIntoCopy(n, srcs[1])
	} else {
		ir.TurnIntoCopy(n, srcs[2])
	}
	return true
}

// simplifyUnsignedBoundary folds the unsigned comparisons that are
// statically decidable purely from the type: x<0u is always false, x>=0u
// is always true, and symmetrically for 0u on the left.
func simplifyUnsignedBoundary(n *ir.Node) bool {
	if n.Instr.TypeMask() != ir.TypeUint32 {
		return false
	}
	srcs := n.Sources()
	if len(srcs) != 2 {
		return false
	}
	op := n.Instr.Opcode()
	if isZeroConstant(srcs[1]) {
		switch op {
		case ir.OpCompareLT:
			ir.TurnIntoCopy(n, ir.NewConstant(0))
			return true
		case ir.OpCompareGE:
			ir.TurnIntoCopy(n, ir.NewConstant(1))
			return true
		}
	}
	if isZeroConstant(srcs[0]) {
		switch op {
		case ir.OpCompareGT:
			ir.TurnIntoCopy(n, ir.NewConstant(0))
			return true
		case ir.OpCompareLE:
			ir.TurnIntoCopy(n, ir.NewConstant(1))
			return true
		}
	}
	return false
}
