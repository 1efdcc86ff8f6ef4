package invariant

import (
	"fmt"

	"shaderopt/internal/ir"
)

// Violation is the panic value raised by Check when a universal invariant
// (spec §8) is broken. It implements error so callers can recognize it via
// errors.As: shaderopt.Optimize with Strict() recovers the panic and
// returns the Violation wrapped in its error result.
type Violation struct {
	Code   string
	Detail string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s (%s)", v.Code, Describe(v.Code), v.Detail)
}

func fail(code, format string, args ...interface{}) {
	panic(&Violation{Code: code, Detail: fmt.Sprintf(format, args...)})
}

// Check walks graph and panics with a *Violation the instant one of the
// universal invariants from spec §8 is broken:
//
//   - every local-variable operand reachable from any block has a non-nil
//     assignedBy, and appears among that node's destinations;
//   - for every (n, i) with n.Sources()[i] = o and o local, n is in
//     o.UsedBy();
//   - no live node has a destination that is both non-empty and not a
//     local variable;
//   - every phi's arity matches its block's predecessor count.
//
// Check is deliberately O(nodes) and allocation-light: shaderopt.Optimize
// runs it at the top and bottom of every call made with Strict(), not just
// in tests.
func Check(graph *ir.BlockGraph) {
	allNodes := map[*ir.Node]bool{}
	for _, b := range graph.Blocks {
		for _, n := range b.Phis {
			allNodes[n] = true
		}
		for _, n := range b.Ops {
			allNodes[n] = true
		}
		if b.Branch != nil {
			allNodes[b.Branch] = true
		}
	}

	for _, b := range graph.Blocks {
		checkArity(b)
		for _, n := range b.Phis {
			checkNode(n, allNodes)
		}
		for _, n := range b.Ops {
			checkNode(n, allNodes)
		}
		if b.Branch != nil {
			checkNode(b.Branch, allNodes)
		}
	}
}

func checkArity(b *ir.BasicBlock) {
	for _, phi := range b.Phis {
		if len(phi.Sources()) != len(b.Preds) {
			fail(CodePhiArityMismatch, "phi has %d sources but block has %d predecessors",
				len(phi.Sources()), len(b.Preds))
		}
	}
}

func checkNode(n *ir.Node, allNodes map[*ir.Node]bool) {
	for i, s := range n.Sources() {
		if s == nil || s.Kind != ir.KindLocalVariable {
			continue
		}
		found := false
		for _, u := range s.UsedBy() {
			if u == n {
				found = true
				break
			}
		}
		if !found {
			fail(CodeMissingBackEdge, "node source %d references an operand missing the node from its usedBy set", i)
		}
		if s.AssignedBy() == nil {
			fail(CodeUnassignedLocal, "local-variable source %d has no assignedBy node", i)
		} else if !allNodes[s.AssignedBy()] {
			fail(CodeDanglingAssignedBy, "local-variable source %d is assigned by a node not reachable from any block", i)
		} else {
			defined := false
			for _, d := range s.AssignedBy().Destinations() {
				if d == s {
					defined = true
					break
				}
			}
			if !defined {
				fail(CodeStaleBackEdge, "local-variable source %d is not among the destinations of its assignedBy node", i)
			}
		}
	}

	for _, d := range n.Destinations() {
		if d == nil {
			continue
		}
		if d.Kind != ir.KindLocalVariable {
			fail(CodeNonLocalDestination, "live node has destination kind %v", d.Kind)
		}
		if d.AssignedBy() != n {
			fail(CodeStaleBackEdge, "destination's assignedBy does not point back to its defining node")
		}
	}
}

// NoUnusedSurvive panics with CodeUnusedSurvived if any node in graph
// satisfies ir.IsUnused after Optimize has returned — the postcondition
// from spec §6 ("no unused local-variable definitions remain unless they
// have side effects").
func NoUnusedSurvive(graph *ir.BlockGraph) {
	for _, b := range graph.Blocks {
		for _, n := range b.Phis {
			if ir.IsUnused(n) {
				fail(CodeUnusedSurvived, "phi has no uses and no side effects")
			}
		}
		for _, n := range b.Ops {
			if ir.IsUnused(n) {
				fail(CodeUnusedSurvived, "node with opcode %v has no uses and no side effects", n.Instr.Opcode())
			}
		}
	}
}
