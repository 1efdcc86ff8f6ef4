package optimize

import "shaderopt/internal/ir"

// propagateCopy implements the copy half of spec §4.4: substitute a Copy's
// source for its destination at every use site. The caller removes the
// now-unused Copy itself.
func propagateCopy(cp *ir.Node) {
	ir.ReplaceAllUses(cp.Destination(), cp.Sources()[0])
}

// propagatePack implements the pack half of spec §4.4: a PackHalf2x16
// producing d is forward-propagated into every UnpackHalf2x16 consumer that
// reads d back, rewriting the consumer into a Copy of the corresponding
// packed lane. Consumers that are not a matching Unpack are left alone —
// the Pack itself is only removed by the caller once it has no more uses.
func propagatePack(pack *ir.Node) bool {
	dst := pack.Destination()
	srcs := pack.Sources()
	if dst == nil || len(srcs) != 2 {
		return false
	}
	changed := false
	for _, consumer := range dst.UsedBy() {
		if consumer.Instr.Opcode() != ir.OpUnpackHalf2x16 {
			continue
		}
		consumerSrcs := consumer.Sources()
		if len(consumerSrcs) != 1 || consumerSrcs[0] != dst {
			continue
		}
		if consumer.Lane != 0 && consumer.Lane != 1 {
			continue
		}
		ir.TurnIntoCopy(consumer, srcs[consumer.Lane])
		changed = true
	}
	return changed
}
