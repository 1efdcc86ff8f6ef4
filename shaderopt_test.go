package shaderopt

import (
	"testing"

	"shaderopt/internal/ir"
)

type noopConfig struct{ stage ir.ShaderStage }

func (c *noopConfig) Stage() ir.ShaderStage { return c.stage }
func (c *noopConfig) ResolveStorageBuffer(*ir.Operand, int64) (ir.BufferBinding, bool) {
	return ir.BufferBinding{}, false
}
func (c *noopConfig) ResolveBindlessIndexed(*ir.Operand) (ir.BufferBinding, bool) {
	return ir.BufferBinding{}, false
}
func (c *noopConfig) ResolveBindlessConstant(*ir.Operand) (ir.BufferBinding, bool) {
	return ir.BufferBinding{}, false
}
func (c *noopConfig) SetAccessibleBufferMasks(uint32, uint32) {}

func TestOptimizeEliminatesDeadChain(t *testing.T) {
	b := ir.NewBasicBlock()
	a := ir.NewArgument(0)
	t1 := ir.NewLocal()
	b.AddOp(ir.NewOperation(ir.OpAdd|ir.TypeInt32, t1, a, ir.NewConstant(1)))
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{b}}

	if err := Optimize(graph, &noopConfig{stage: ir.StageCompute}); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
	if len(b.Ops) != 0 {
		t.Fatalf("b.Ops = %v, want empty", b.Ops)
	}
}

func TestOptimizeStrictAcceptsWellFormedGraph(t *testing.T) {
	b := ir.NewBasicBlock()
	a := ir.NewArgument(0)
	dst := ir.NewLocal()
	out := ir.NewLocal()
	b.AddOp(ir.NewOperation(ir.OpAdd|ir.TypeInt32, dst, a, ir.NewConstant(1)))
	b.AddOp(ir.NewOperation(ir.OpCall, out, dst))
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{b}}

	if err := Optimize(graph, &noopConfig{stage: ir.StageCompute}, Strict()); err != nil {
		t.Fatalf("Optimize() error = %v", err)
	}
}
