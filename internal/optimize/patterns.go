package optimize

import "shaderopt/internal/ir"

// FragCoordAttribute is the attribute index the decoder reserves for the
// fragment coordinate input; component 3 (see fragCoordW) is the
// perspective-divide term §4.6 cancels.
const FragCoordAttribute = ^uint32(0)

func fragCoordW(o *ir.Operand) bool {
	return o.Kind == ir.KindAttribute && o.Value == FragCoordAttribute && o.Slot == 3
}

// cancelFragCoordW implements spec §4.6: recognizes the perspective-cancel
// shape `(x * fragCoord.w) * (1.0 / fragCoord.w)` — in either multiplication
// order — and rewrites the outer Mul into a Copy of x. Gated by the caller
// to fragment-stage graphs only.
func cancelFragCoordW(mul *ir.Node) bool {
	srcs := mul.Sources()
	if len(srcs) != 2 {
		return false
	}
	for _, order := range [2][2]int{{0, 1}, {1, 0}} {
		a, b := srcs[order[0]], srcs[order[1]]
		xMulW, ok := defOf(a, ir.OpMul, ir.TypeFP32)
		if !ok || len(xMulW.Sources()) != 2 {
			continue
		}
		var x *ir.Operand
		switch {
		case fragCoordW(xMulW.Sources()[1]):
			x = xMulW.Sources()[0]
		case fragCoordW(xMulW.Sources()[0]):
			x = xMulW.Sources()[1]
		default:
			continue
		}

		reciprocalW, ok := defOf(b, ir.OpDiv, ir.TypeFP32)
		if !ok {
			continue
		}
		divSrcs := reciprocalW.Sources()
		if len(divSrcs) != 2 || !isOneConstant(divSrcs[0], ir.TypeFP32) || !fragCoordW(divSrcs[1]) {
			continue
		}

		ir.TurnIntoCopy(mul, x)
		return true
	}
	return false
}

// defOf returns the node assigning a local-variable operand o, provided
// that node has the given opcode and type tag.
func defOf(o *ir.Operand, op, typ ir.Tag) (*ir.Node, bool) {
	if o.Kind != ir.KindLocalVariable {
		return nil, false
	}
	def := o.AssignedBy()
	if def == nil || def.Instr.Opcode() != op || def.Instr.TypeMask() != typ {
		return nil, false
	}
	return def, true
}

// Subgroup-shuffle lane masks and swizzle-difference patterns that identify
// a quad-derivative computation (spec §4.7). These are fixed by the
// target's subgroup quad layout, not configurable.
const (
	laneMaskDDX   = 1
	laneMaskDDY   = 2
	quadClampMask = 0x1c03

	swizzlePatternDDX = 0b10011001
	swizzlePatternDDY = 0b10100101
)

// recognizeDerivative implements spec §4.7: a ShuffleXor with the quad
// clamp mask and an X or Y lane mask, whose result feeds a SwizzleAdd
// against the original operand with the matching swizzle pattern, is really
// computing a screen-space derivative. The SwizzleAdd consumer is rewritten
// into Ddx/Ddy of the original operand; the ShuffleXor itself is removed by
// the caller once it has no more uses.
func recognizeDerivative(shuffle *ir.Node) bool {
	srcs := shuffle.Sources()
	if len(srcs) != 3 {
		return false
	}
	x, laneMask, clampMask := srcs[0], srcs[1], srcs[2]
	if !laneMask.IsConstant() || !clampMask.IsConstant() || clampMask.Value != quadClampMask {
		return false
	}

	var derivOp ir.Tag
	var wantPattern uint32
	switch laneMask.Value {
	case laneMaskDDX:
		derivOp, wantPattern = ir.OpDdx, swizzlePatternDDX
	case laneMaskDDY:
		derivOp, wantPattern = ir.OpDdy, swizzlePatternDDY
	default:
		return false
	}

	dst := shuffle.Destination()
	if dst == nil {
		return false
	}
	changed := false
	for _, consumer := range dst.UsedBy() {
		if consumer.Instr.Opcode() != ir.OpSwizzleAdd {
			continue
		}
		cs := consumer.Sources()
		if len(cs) != 3 || cs[0] != dst || cs[1] != x || !cs[2].IsConstant() || cs[2].Value != wantPattern {
			continue
		}
		ir.TurnInto(consumer, derivOp|consumer.Instr.TypeMask(), x)
		changed = true
	}
	return changed
}
