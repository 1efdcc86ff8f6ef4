package optimize

import (
	"testing"

	"shaderopt/internal/ir"
)

func TestBindlessToIndexedDoesNotTouchMasks(t *testing.T) {
	b := ir.NewBasicBlock()
	argIndex := ir.NewArgument(2)
	coord := ir.NewArgument(3)
	sample := ir.NewOperation(ir.OpTextureSampleBindless|ir.TypeFP32, ir.NewLocal(), argIndex, coord)
	b.AddOp(sample)

	cfg := &fakeConfig{stage: ir.StageFragment, bindlessArgIndex: argIndex, bindlessArgBinding: 5}
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{b}}
	RunLowerings(graph, cfg)

	if sample.Instr.Opcode() != ir.OpTextureSampleIndexed {
		t.Fatalf("opcode = %v, want OpTextureSampleIndexed", sample.Instr.Opcode())
	}
	if sample.Sources()[0].Value != 5 {
		t.Fatalf("binding = %v, want 5", sample.Sources()[0].Value)
	}
	if sample.Sources()[1] != coord {
		t.Fatalf("remaining sources = %v, want coord preserved", sample.Sources())
	}
	if cfg.publishedStorageMask != 0 || cfg.publishedBindlessMask != 0 {
		t.Fatal("BindlessToIndexed must not contribute to either usage mask")
	}
}

func TestBindlessEliminationSetsMask(t *testing.T) {
	b := ir.NewBasicBlock()
	handle := ir.NewConstantBuffer(1, 0)
	sample := ir.NewOperation(ir.OpTextureSampleBindless|ir.TypeFP32, ir.NewLocal(), handle)
	b.AddOp(sample)

	cfg := &fakeConfig{stage: ir.StageFragment, bindlessCbufBinding: 7}
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{b}}
	RunLowerings(graph, cfg)

	if sample.Instr.Opcode() != ir.OpTextureSampleIndexed || sample.Sources()[0].Value != 7 {
		t.Fatalf("sample = opcode %v sources %v, want indexed to binding 7", sample.Instr.Opcode(), sample.Sources())
	}
	if cfg.publishedBindlessMask != 1<<7 {
		t.Fatalf("publishedBindlessMask = %#x, want %#x", cfg.publishedBindlessMask, 1<<7)
	}
}

func TestGlobalToStorageDeclinesOnUnresolvedAddress(t *testing.T) {
	b := ir.NewBasicBlock()
	unknown := ir.NewArgument(9)
	load := ir.NewOperation(ir.OpLoadGlobal|ir.TypeFP32, ir.NewLocal(), unknown)
	b.AddOp(load)

	cfg := &fakeConfig{stage: ir.StageCompute, storageBase: ir.NewArgument(0)}
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{b}}
	RunLowerings(graph, cfg)

	if load.Instr.Opcode() != ir.OpLoadGlobal {
		t.Fatal("load must be left unchanged when its base cannot be resolved")
	}
}

func TestRunLoweringsPublishesMasksExactlyOnce(t *testing.T) {
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{ir.NewBasicBlock()}}
	cfg := &fakeConfig{stage: ir.StageFragment}
	RunLowerings(graph, cfg)
	RunLowerings(graph, cfg)
	if cfg.publishCount != 2 {
		t.Fatalf("publishCount = %d, want 2 (once per RunLowerings call)", cfg.publishCount)
	}
}
