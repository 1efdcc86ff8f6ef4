// Package optimize implements the pass manager, peephole kernels,
// propagation, stage-specific patterns, and one-shot lowerings described in
// spec.md §4: the hard engineering core of the translator. It is grounded
// on the teacher's internal/ir/optimizations.go — same shape (a pipeline of
// small, independently testable passes driven to a fixpoint) generalized
// from EVM gas-efficiency rewrites to GPU shader IR canonicalization.
package optimize

import (
	"shaderopt/internal/ir"
	"shaderopt/internal/telemetry"
)

var log = telemetry.Get("optimize")

// Optimize runs the complete pipeline of spec §2: the fixpoint driver, then
// the one-shot lowerings exactly once, then the fixpoint driver again to
// clean up whatever dead code the lowerings produced.
func Optimize(graph *ir.BlockGraph, config ir.ShaderConfig) {
	fragment := config.Stage() == ir.StageFragment
	RunFixpoint(graph, fragment)
	RunLowerings(graph, config)
	RunFixpoint(graph, fragment)
}

// RunFixpoint implements §4.1: repeat a full sweep over every block —
// peepholes, propagation, phi collapsing, and the fragment-only pattern —
// until an entire sweep makes no modification. Termination follows the
// monovariant of spec §9: every rewrite strictly decreases (#local defs) +
// (#non-copy instructions), or leaves the graph unchanged.
func RunFixpoint(graph *ir.BlockGraph, fragment bool) {
	for sweep := 1; ; sweep++ {
		changed := false
		for _, b := range graph.Blocks {
			if sweepBlock(b, fragment) {
				changed = true
			}
		}
		if !changed {
			log.Debugf("fixpoint reached after %d sweep(s) over %d block(s)", sweep, len(graph.Blocks))
			return
		}
	}
}

// sweepBlock walks b's nodes in the fixed order of §4.1: phis, then
// operations, then the terminator.
func sweepBlock(b *ir.BasicBlock, fragment bool) bool {
	changed := false

	for _, phi := range snapshot(b.Phis) {
		if phi.Block == nil {
			continue // removed earlier in this sweep via cascade
		}
		if common, ok := collapsiblePhi(phi); ok {
			ir.ReplaceAllUses(phi.Destination(), common)
			ir.RemoveNode(phi)
			changed = true
		} else if ir.IsUnused(phi) {
			ir.RemoveNode(phi)
			changed = true
		}
	}

	for _, n := range snapshot(b.Ops) {
		if n.Block == nil {
			continue
		}
		if ir.IsUnused(n) {
			ir.RemoveNode(n)
			changed = true
			continue
		}
		if sweepOperation(n, fragment) {
			changed = true
		}
	}

	if branchEliminate(b) {
		changed = true
	}

	return changed
}

// sweepOperation applies constant folding, then algebraic simplification,
// then — when the destination is local — the instruction-specific
// propagation/pattern steps of §4.1's numbered list.
func sweepOperation(n *ir.Node, fragment bool) bool {
	changed := false
	if foldConstant(n) {
		changed = true
	}
	if simplifyAlgebraic(n) {
		changed = true
	}

	dst := n.Destination()
	if dst == nil || dst.Kind != ir.KindLocalVariable {
		return changed
	}

	switch n.Instr.Opcode() {
	case ir.OpCopy:
		propagateCopy(n)
		ir.RemoveNode(n)
		return true
	case ir.OpPackHalf2x16:
		if propagatePack(n) {
			changed = true
		}
		if dst.UseCount() == 0 {
			ir.RemoveNode(n)
			return true
		}
	case ir.OpShuffleXor:
		if recognizeDerivative(n) {
			changed = true
		}
		if dst.UseCount() == 0 {
			ir.RemoveNode(n)
			return true
		}
	case ir.OpMul:
		if fragment && n.Instr.TypeMask() == ir.TypeFP32 && cancelFragCoordW(n) {
			changed = true
		}
	}
	return changed
}

// snapshot copies a node slice so callers may safely mutate the block's
// live slice (via ir.RemoveNode) while iterating a fixed view of it.
func snapshot(nodes []*ir.Node) []*ir.Node {
	return append([]*ir.Node(nil), nodes...)
}
