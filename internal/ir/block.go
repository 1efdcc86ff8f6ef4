package ir

// BasicBlock is an ordered list of nodes — phis first, then operations,
// then an optional terminating branch — plus predecessor/successor edges
// (spec §3). The three node groups are modeled as separate slices rather
// than one position-tagged list; the pass manager walks them in that fixed
// order (§4.1).
type BasicBlock struct {
	Phis   []*Node
	Ops    []*Node
	Branch *Node // nil: falls through / returns; non-nil: terminator (conditional or not)

	Preds []*BasicBlock
	Succs []*BasicBlock
}

// BlockGraph is the array of blocks the optimizer rewrites in place (spec
// §3). Block order is not load-bearing beyond "each block is visited".
type BlockGraph struct {
	Blocks []*BasicBlock
}

// NewBasicBlock returns an empty, unlinked block.
func NewBasicBlock() *BasicBlock {
	return &BasicBlock{}
}

// AddPhi appends n to the block's phi list and sets n.Block.
func (b *BasicBlock) AddPhi(n *Node) {
	n.Block = b
	b.Phis = append(b.Phis, n)
}

// AddOp appends n to the block's operation list and sets n.Block.
func (b *BasicBlock) AddOp(n *Node) {
	n.Block = b
	b.Ops = append(b.Ops, n)
}

// SetBranch installs n as the block's terminator.
func (b *BasicBlock) SetBranch(n *Node) {
	if n != nil {
		n.Block = b
	}
	b.Branch = n
}

// Link records a predecessor/successor edge between from and to.
func Link(from, to *BasicBlock) {
	from.Succs = append(from.Succs, to)
	to.Preds = append(to.Preds, from)
}

// unlinkFromBlock removes n from whichever list of its parent block holds
// it (Phis, Ops, or Branch). It does not touch predecessor/successor edges
// — CFG pruning on branch removal is the caller's responsibility at a
// coarser level (spec §4.2.c).
func unlinkFromBlock(n *Node) {
	b := n.Block
	if b == nil {
		return
	}
	if b.Branch == n {
		b.Branch = nil
		return
	}
	switch n.kind {
	case NodePhi:
		b.Phis = removeNode(b.Phis, n)
	default:
		b.Ops = removeNode(b.Ops, n)
	}
}

func removeNode(list []*Node, n *Node) []*Node {
	for i, x := range list {
		if x == n {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
