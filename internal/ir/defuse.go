package ir

// This file concentrates every mutation that touches assignedBy/usedBy
// back-edges, per the design note in spec §9: "concentrating this logic in
// two helpers is what keeps the rest of the passes short and correct."
// Everything else in this package and in internal/optimize reaches the
// graph only through these functions (or through construction in node.go,
// which calls the same primitives).

// attachSources records srcs as n's source list and, for every
// local-variable source, registers n in that operand's usedBy set.
func (n *Node) attachSources(srcs []*Operand) {
	n.sources = append([]*Operand(nil), srcs...)
	for _, s := range n.sources {
		if s != nil && s.Kind == KindLocalVariable {
			s.usedBy[n] = struct{}{}
		}
	}
}

// attachDestinations records dsts as n's destination list and, for every
// local-variable destination, sets its assignedBy back-reference.
func (n *Node) attachDestinations(dsts []*Operand) {
	n.destinations = append([]*Operand(nil), dsts...)
	for _, d := range n.destinations {
		if d != nil && d.Kind == KindLocalVariable {
			d.assignedBy = n
		}
	}
}

// unlinkSources drops n from the usedBy set of every local-variable source
// it currently holds. It is the first step of both rewrite verbs and of
// node removal.
func (n *Node) unlinkSources() {
	for _, s := range n.sources {
		if s != nil && s.Kind == KindLocalVariable {
			delete(s.usedBy, n)
		}
	}
}

// stillReferences reports whether n still holds o as one of its sources.
func (n *Node) stillReferences(o *Operand) bool {
	for _, s := range n.sources {
		if s == o {
			return true
		}
	}
	return false
}

// replaceSourceAt rewrites n's i'th source from its current value to newOp,
// maintaining usedBy on both the old and new operand. If the old operand
// still appears at some other source index of n (e.g. `x^x`), its usedBy
// membership for n is left intact.
func replaceSourceAt(n *Node, i int, newOp *Operand) {
	old := n.sources[i]
	n.sources[i] = newOp
	if newOp != nil && newOp.Kind == KindLocalVariable {
		newOp.usedBy[n] = struct{}{}
	}
	if old != nil && old.Kind == KindLocalVariable && !n.stillReferences(old) {
		delete(old.usedBy, n)
	}
}

// ReplaceAllUses substitutes newOp for old at every site in old.usedBy
// (copy propagation, §4.4; phi collapsing, §4.3). After the call,
// old.UseCount() is zero.
func ReplaceAllUses(old, newOp *Operand) {
	if old == nil || old.Kind != KindLocalVariable {
		return
	}
	for n := range old.usedBy {
		for i, s := range n.sources {
			if s == old {
				n.sources[i] = newOp
			}
		}
		if newOp != nil && newOp.Kind == KindLocalVariable {
			newOp.usedBy[n] = struct{}{}
		}
	}
	old.usedBy = map[*Node]struct{}{}
}

// TurnIntoCopy rewrites n in place into `Copy dst <- src`, preserving n's
// existing destination(s) and updating use-lists for every removed source
// (spec §9: "make the node a Copy with one source, adjusting use-lists").
func TurnIntoCopy(n *Node, src *Operand) {
	n.unlinkSources()
	n.Instr = OpCopy
	n.Lane = 0
	n.attachSources([]*Operand{src})
}

// TurnInto rewrites n in place to the given opcode and source list,
// preserving its destination(s) and updating use-lists for every removed
// and added source.
func TurnInto(n *Node, instr Tag, srcs ...*Operand) {
	n.unlinkSources()
	n.Instr = instr
	n.attachSources(srcs)
}

// IsUnused implements §4.1's definition: a node is unused iff it has no
// observable side effects, every destination is a local variable, and
// every destination has an empty usedBy set. A missing or non-local
// destination is never considered unused (§4.5.a) — this is how stores,
// barriers, and opaque side-effecting ops survive without enumerating
// every such opcode here.
func IsUnused(n *Node) bool {
	if n == nil || n.IsTerminator() {
		return false
	}
	if isSideEffecting(n.Instr.Opcode()) {
		return false
	}
	if len(n.destinations) == 0 {
		return false
	}
	for _, d := range n.destinations {
		if d == nil || d.Kind != KindLocalVariable {
			return false
		}
		if d.UseCount() > 0 {
			return false
		}
	}
	return true
}

// RemoveNode unlinks n from its block and, per §4.5, cascades: every
// local-variable source of n that loses its last use becomes a candidate,
// and is removed too if it is still unused. The cascade runs over an
// explicit worklist, never recursion through owning pointers (§9).
func RemoveNode(n *Node) {
	if n == nil {
		return
	}
	worklist := []*Node{n}
	removed := map[*Node]bool{}
	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if removed[cur] {
			continue
		}
		removed[cur] = true

		unlinkFromBlock(cur)
		for _, s := range cur.sources {
			if s == nil || s.Kind != KindLocalVariable {
				continue
			}
			delete(s.usedBy, cur)
			if s.UseCount() == 0 && s.assignedBy != nil && !removed[s.assignedBy] {
				if IsUnused(s.assignedBy) {
					worklist = append(worklist, s.assignedBy)
				}
			}
		}
	}
}

// isSideEffecting is the closed opcode set from §4.5 that is never
// removable even with zero uses: Call, ImageAtomic, and every Atomic* RMW.
func isSideEffecting(op Tag) bool {
	switch op {
	case OpCall, OpImageAtomic, OpAtomicAdd, OpAtomicExchange:
		return true
	default:
		return false
	}
}
