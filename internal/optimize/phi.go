package optimize

import "shaderopt/internal/ir"

// collapsiblePhi implements spec §4.3: a phi is collapsible, and its common
// operand is returned, when every incoming value is same-valued under
// ir.SameValue; the caller rewrites the phi's uses to read that operand
// and removes the phi. A single-source phi (degenerate, e.g. a block with
// one predecessor) always collapses.
func collapsiblePhi(phi *ir.Node) (*ir.Operand, bool) {
	srcs := phi.Sources()
	if len(srcs) == 0 {
		return nil, false
	}
	common := srcs[0]
	for _, s := range srcs[1:] {
		if !ir.SameValue(common, s) {
			return nil, false
		}
	}
	return common, true
}
