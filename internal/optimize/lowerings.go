package optimize

import "shaderopt/internal/ir"

// RunLowerings implements spec §4.8: a single pass over every block applying
// the three one-shot lowerings, accumulating the storage-buffer and
// bindless-elimination usage masks as it goes, then publishing them to
// config exactly once via SetAccessibleBufferMasks — the config-sink
// contract of spec §6.
func RunLowerings(graph *ir.BlockGraph, config ir.ShaderConfig) {
	var storageBufferMask, bindlessEliminationMask uint32
	for _, b := range graph.Blocks {
		for _, n := range snapshot(b.Ops) {
			if n.Block == nil {
				continue
			}
			switch n.Instr.Opcode() {
			case ir.OpLoadGlobal, ir.OpStoreGlobal:
				if bit, ok := globalToStorage(n, config); ok {
					storageBufferMask |= maskBit(bit)
				}
			case ir.OpTextureSampleBindless:
				if bindlessToIndexed(n, config) {
					continue
				}
				if bit, ok := bindlessElimination(n, config); ok {
					bindlessEliminationMask |= maskBit(bit)
				}
			}
		}
	}
	log.Debugf("publishing buffer usage masks: storage=%#x bindless-elimination=%#x", storageBufferMask, bindlessEliminationMask)
	config.SetAccessibleBufferMasks(storageBufferMask, bindlessEliminationMask)
}

func maskBit(index uint32) uint32 {
	if index >= 32 {
		return 0
	}
	return 1 << index
}

// globalToStorage implements the GlobalToStorage lowering: a LoadGlobal or
// StoreGlobal whose address resolves, via resolveAddress, to a known base
// register plus a static offset is rewritten into the corresponding
// storage-buffer op. The binding index it resolved to is returned so the
// caller can fold it into the storage-buffer usage mask.
func globalToStorage(n *ir.Node, config ir.ShaderConfig) (uint32, bool) {
	srcs := n.Sources()
	if len(srcs) == 0 {
		return 0, false
	}
	base, offset, ok := resolveAddress(srcs[0])
	if !ok {
		return 0, false
	}
	binding, ok := config.ResolveStorageBuffer(base, offset)
	if !ok {
		return 0, false
	}

	newSrcs := append([]*ir.Operand{ir.NewConstant(binding.Index), ir.NewConstant(uint32(offset))}, srcs[1:]...)
	typ := n.Instr.TypeMask()
	switch n.Instr.Opcode() {
	case ir.OpLoadGlobal:
		ir.TurnInto(n, ir.OpLoadStorageBuffer|typ, newSrcs...)
	case ir.OpStoreGlobal:
		ir.TurnInto(n, ir.OpStoreStorageBuffer|typ, newSrcs...)
	default:
		return 0, false
	}
	return binding.Index, true
}

// resolveAddress peels back a chain of Add-by-constant definitions to find
// the address's base register and accumulated static offset. Any
// constant-by-constant multiply has already been folded to a single
// Constant by the preceding fixpoint pass by the time lowering runs. Only
// Add chains are peeled: an address defined by any other operation,
// including a multiply with a non-constant operand (e.g. a runtime index
// times a constant stride), is declined.
func resolveAddress(o *ir.Operand) (base *ir.Operand, offset int64, ok bool) {
	return resolveAddressDepth(o, 0, 8)
}

func resolveAddressDepth(o *ir.Operand, offset int64, depth int) (*ir.Operand, int64, bool) {
	if depth <= 0 {
		return nil, 0, false
	}
	if o.Kind != ir.KindLocalVariable {
		return o, offset, true
	}
	def := o.AssignedBy()
	if def == nil || def.Instr.Opcode() != ir.OpAdd {
		return nil, 0, false
	}
	srcs := def.Sources()
	if len(srcs) != 2 {
		return nil, 0, false
	}
	switch {
	case srcs[1].IsConstant():
		return resolveAddressDepth(srcs[0], offset+int64(int32(srcs[1].Value)), depth-1)
	case srcs[0].IsConstant():
		return resolveAddressDepth(srcs[1], offset+int64(int32(srcs[0].Value)), depth-1)
	default:
		return nil, 0, false
	}
}

// bindlessToIndexed implements the BindlessToIndexed lowering: a bindless
// texture sample whose handle is a uniform-array-indexed argument resolves,
// purely locally, to a binding-table slot. It does not contribute to either
// usage mask (spec §4.8: only GlobalToStorage and BindlessElimination do).
func bindlessToIndexed(n *ir.Node, config ir.ShaderConfig) bool {
	srcs := n.Sources()
	if len(srcs) == 0 || srcs[0].Kind != ir.KindArgument {
		return false
	}
	binding, ok := config.ResolveBindlessIndexed(srcs[0])
	if !ok {
		return false
	}
	rewriteToIndexed(n, binding, srcs)
	return true
}

// bindlessElimination implements the BindlessElimination lowering: a
// bindless texture sample whose handle is a direct constant-buffer load
// resolves to a fixed descriptor, eliminating the bindless indirection
// entirely. The resolved binding index is folded into the
// bindless-elimination usage mask by the caller.
func bindlessElimination(n *ir.Node, config ir.ShaderConfig) (uint32, bool) {
	srcs := n.Sources()
	if len(srcs) == 0 || srcs[0].Kind != ir.KindConstantBuffer {
		return 0, false
	}
	binding, ok := config.ResolveBindlessConstant(srcs[0])
	if !ok {
		return 0, false
	}
	rewriteToIndexed(n, binding, srcs)
	return binding.Index, true
}

func rewriteToIndexed(n *ir.Node, binding ir.BufferBinding, srcs []*ir.Operand) {
	newSrcs := append([]*ir.Operand{ir.NewConstant(binding.Index)}, srcs[1:]...)
	ir.TurnInto(n, ir.OpTextureSampleIndexed|n.Instr.TypeMask(), newSrcs...)
}
