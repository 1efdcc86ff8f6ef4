// Package ir implements the IR primitives and def/use bookkeeping consumed
// by the optimizer in internal/optimize. It owns no textual syntax of its
// own: graphs are built by an external decoder (out of scope here) or, for
// tests and the debug CLI, by internal/asm.
package ir

// OperandKind classifies what an Operand denotes. LocalVariable is the only
// kind with SSA-like def/use bookkeeping; every other kind is externally
// rooted (a literal, a buffer slot, an input, ...) and carries no back-edges.
type OperandKind uint8

const (
	KindUndefined OperandKind = iota
	KindConstant
	KindConstantBuffer
	KindLocalVariable
	KindAttribute
	KindArgument
	KindLabel
)

func (k OperandKind) String() string {
	switch k {
	case KindConstant:
		return "const"
	case KindConstantBuffer:
		return "cbuf"
	case KindLocalVariable:
		return "local"
	case KindAttribute:
		return "attr"
	case KindArgument:
		return "arg"
	case KindLabel:
		return "label"
	default:
		return "undef"
	}
}

// Operand denotes a value consumed or produced by a Node. For
// KindLocalVariable, assignedBy and usedBy mirror the structural edges of
// the graph exactly (see package doc of internal/ir and spec §3); every
// other kind carries no back-edges and the two fields are left zero.
type Operand struct {
	Kind OperandKind

	// Value is the kind-specific 32-bit payload: constant bits, argument
	// index, attribute index, constant-buffer offset, etc.
	Value uint32

	// Slot carries a second kind-specific index: the constant-buffer
	// slot for KindConstantBuffer and the component for KindAttribute.
	// Unused otherwise.
	Slot uint32

	assignedBy *Node
	usedBy     map[*Node]struct{}
}

// NewConstant returns a Constant operand holding the given 32-bit bit
// pattern (reinterpret with math.Float32frombits / int32 as needed by the
// consuming instruction's type tag).
func NewConstant(bits uint32) *Operand {
	return &Operand{Kind: KindConstant, Value: bits}
}

// NewConstantBuffer returns an operand denoting a load of constant buffer
// slot `slot` at offset `offset`.
func NewConstantBuffer(slot, offset uint32) *Operand {
	return &Operand{Kind: KindConstantBuffer, Value: offset, Slot: slot}
}

// NewAttribute returns an operand denoting an input-attribute read at the
// given index/component pair (e.g. fragment coordinate, component 3).
func NewAttribute(index, component uint32) *Operand {
	return &Operand{Kind: KindAttribute, Value: index, Slot: component}
}

// NewArgument returns an operand denoting a function/kernel argument.
func NewArgument(index uint32) *Operand {
	return &Operand{Kind: KindArgument, Value: index}
}

// NewLabel returns an operand denoting a block label reference.
func NewLabel(id uint32) *Operand {
	return &Operand{Kind: KindLabel, Value: id}
}

// NewUndefined returns the canonical "don't care" operand.
func NewUndefined() *Operand {
	return &Operand{Kind: KindUndefined}
}

// NewLocal allocates a fresh SSA-like local-variable operand with no
// assigning node yet. Callers must attach it as a node destination (via
// NewOperation/NewPhi) before it participates in def/use bookkeeping.
func NewLocal() *Operand {
	return &Operand{Kind: KindLocalVariable, usedBy: map[*Node]struct{}{}}
}

// AssignedBy returns the unique node that defines this local-variable
// operand, or nil for every other kind.
func (o *Operand) AssignedBy() *Node {
	if o == nil {
		return nil
	}
	return o.assignedBy
}

// UsedBy returns the set of nodes that reference this operand as a source.
// The returned slice is a fresh snapshot; mutating it has no effect on the
// graph.
func (o *Operand) UsedBy() []*Node {
	if o == nil || o.usedBy == nil {
		return nil
	}
	out := make([]*Node, 0, len(o.usedBy))
	for n := range o.usedBy {
		out = append(out, n)
	}
	return out
}

// UseCount reports how many distinct nodes reference this operand as a
// source. It is the primitive "unused" checks are built on (§4.1).
func (o *Operand) UseCount() int {
	if o == nil {
		return 0
	}
	return len(o.usedBy)
}

// IsConstant reports whether the operand is a Constant.
func (o *Operand) IsConstant() bool {
	return o != nil && o.Kind == KindConstant
}

// SameValue implements the phi-collapsing equivalence of §4.3: two operands
// are same-valued iff they are the literal same local-variable operand, or
// both constants with an identical bit pattern, or both loads of the same
// constant-buffer slot/offset pair. Loads, atomics, and other opaque
// definitions are never unified here; see the open question in spec §9.
func SameValue(a, b *Operand) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindConstant:
		return a.Value == b.Value
	case KindConstantBuffer:
		return a.Value == b.Value && a.Slot == b.Slot
	default:
		return false
	}
}
