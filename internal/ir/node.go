package ir

// Tag is the packed 32-bit instruction tag: a base opcode in the low 16
// bits plus a type/modifier mask in the high bits (spec §6, "Instruction
// tag encoding"). Classification by opcode alone must mask with OpcodeMask.
type Tag uint32

// OpcodeMask isolates the base-opcode bits of a Tag; callers compare
// tag&OpcodeMask when classifying independent of the type/modifier bits.
const OpcodeMask Tag = 0x0000FFFF

// Opcode returns the base opcode, independent of type/modifier bits.
func (t Tag) Opcode() Tag { return t & OpcodeMask }

// TypeMask returns the type/modifier bits, independent of the base opcode.
func (t Tag) TypeMask() Tag { return t &^ OpcodeMask }

// Base opcodes. Values below opBaseCount are reserved for this table; a
// decoder-assigned opcode outside this range is simply unrecognized (§7:
// "not an error - a no-op-for-this-pass signal").
const (
	OpNop Tag = iota
	OpCopy

	// Arithmetic / bitwise, foldable when all sources are Constant.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpNeg
	OpNot

	// Comparisons, foldable.
	OpCompareEQ
	OpCompareNE
	OpCompareLT
	OpCompareLE
	OpCompareGT
	OpCompareGE

	// Conversion, foldable.
	OpConvert

	// Control-flow-adjacent value ops.
	OpSelect
	OpLogicalAnd
	OpLogicalOr

	// GPU-specific pattern targets (§4.4, §4.6, §4.7).
	OpPackHalf2x16
	OpUnpackHalf2x16
	OpShuffleXor
	OpSwizzleAdd
	OpDdx
	OpDdy

	// Memory / resource access, rewritten by the one-shot lowerings (§4.8).
	OpLoadGlobal
	OpStoreGlobal
	OpLoadStorageBuffer
	OpStoreStorageBuffer
	OpTextureSampleBindless
	OpTextureSampleIndexed
	OpLoadAttribute

	// Opaque / side-effecting (never removable without uses, §4.5).
	OpCall
	OpImageAtomic
	OpAtomicAdd
	OpAtomicExchange

	opBaseCount
)

// Type/modifier bits, packed above OpcodeMask.
const (
	TypeFP32 Tag = 1 << (16 + iota)
	TypeInt32
	TypeUint32
	TypeBool
)

// NodeKind distinguishes the two concrete INode variants (spec §3).
type NodeKind uint8

const (
	NodeOperation NodeKind = iota
	NodePhi
)

// Node is the tagged variant Operation | Phi with the shared header
// (sources, destinations, parent block) described in spec §9. Peepholes
// downcast via Kind()/Instr; the bookkeeping layer only needs Sources,
// Destinations, and Block.
//
// sources and destinations are unexported: every mutation after
// construction must go through the two rewrite verbs (TurnIntoCopy,
// TurnInto), ReplaceAllUses, or RemoveNode, which are the only places
// usedBy/assignedBy back-edges are updated after construction (spec §9, §5: "direct field assignment to
// source/destination arrays is prohibited").
type Node struct {
	kind  NodeKind
	Instr Tag
	Block *BasicBlock

	sources      []*Operand
	destinations []*Operand

	// Lane selects which half of a packed dword an UnpackHalf2x16
	// consumes (0 or 1); unused by every other instruction.
	Lane int
}

// Kind reports whether this is an Operation or a Phi.
func (n *Node) Kind() NodeKind { return n.kind }

// Sources returns the node's ordered source operands. For a Phi, Sources()[i]
// is the incoming value from Block.Preds[i].
func (n *Node) Sources() []*Operand { return n.sources }

// Destinations returns the node's ordered destination operands (usually 0
// or 1).
func (n *Node) Destinations() []*Operand { return n.destinations }

// Destination returns the node's sole destination, or nil if it has none.
func (n *Node) Destination() *Operand {
	if len(n.destinations) == 0 {
		return nil
	}
	return n.destinations[0]
}

// IsTerminator reports whether this node is a block's branch terminator.
// Terminators live in BasicBlock.Branch, never in Phis/Ops.
func (n *Node) IsTerminator() bool { return n != nil && n.Instr.Opcode() == OpBranch }

// OpBranch is the pseudo-opcode for a block terminator; it is never
// foldable/side-effect-free and is only ever found at BasicBlock.Branch.
const OpBranch Tag = opBaseCount

// NewOperation constructs an Operation node with the given instruction tag,
// destination (nil for none), and ordered sources, wiring up def/use
// bookkeeping. It does not attach the node to a block; callers use
// BasicBlock.AddOp/AddPhi/SetBranch.
func NewOperation(instr Tag, dst *Operand, srcs ...*Operand) *Node {
	n := &Node{kind: NodeOperation, Instr: instr}
	n.attachSources(srcs)
	if dst != nil {
		n.attachDestinations([]*Operand{dst})
	}
	return n
}

// NewPhi constructs a Phi node whose i'th source is the incoming value from
// predecessor i. Arity must match the eventual block's predecessor count
// (spec §6 precondition); the caller attaches the node to its block
// afterwards. Neither NewPhi nor BasicBlock.AddPhi checks the arity;
// invariant.Check reports a mismatch.
func NewPhi(dst *Operand, incoming ...*Operand) *Node {
	n := &Node{kind: NodePhi}
	n.attachSources(incoming)
	n.attachDestinations([]*Operand{dst})
	return n
}

// NewBranch constructs a conditional branch terminator node (cond != nil)
// or an unconditional one (cond == nil, no sources).
func NewBranch(cond *Operand) *Node {
	n := &Node{kind: NodeOperation, Instr: OpBranch}
	if cond != nil {
		n.attachSources([]*Operand{cond})
	}
	return n
}
