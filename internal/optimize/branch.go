package optimize

import "shaderopt/internal/ir"

// branchEliminate implements spec §4.2.c. When b's terminator is a
// conditional branch whose condition is a Constant, the branch direction is
// statically known; CFG pruning of the now-unreachable edge happens at a
// coarser level outside this package (spec §4.2.c design note), so at this
// tier the only observable action is removing the terminator node itself —
// cascading removal of its condition operand if that was its last use.
func branchEliminate(b *ir.BasicBlock) bool {
	br := b.Branch
	if br == nil {
		return false
	}
	srcs := br.Sources()
	if len(srcs) == 0 || !srcs[0].IsConstant() {
		return false
	}
	ir.RemoveNode(br)
	return true
}
