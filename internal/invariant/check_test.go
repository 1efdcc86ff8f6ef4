package invariant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shaderopt/internal/ir"
)

func wellFormedGraph() *ir.BlockGraph {
	b := ir.NewBasicBlock()
	x := ir.NewLocal()
	def := ir.NewOperation(ir.OpAdd, x, ir.NewConstant(1), ir.NewConstant(2))
	b.AddOp(def)
	y := ir.NewLocal()
	use := ir.NewOperation(ir.OpCall, y, x)
	b.AddOp(use)
	return &ir.BlockGraph{Blocks: []*ir.BasicBlock{b}}
}

func TestCheckAcceptsWellFormedGraph(t *testing.T) {
	assert.NotPanics(t, func() { Check(wellFormedGraph()) })
}

func TestCheckCatchesPhiArityMismatch(t *testing.T) {
	pred := ir.NewBasicBlock()
	succ := ir.NewBasicBlock()
	ir.Link(pred, succ)

	phi := ir.NewPhi(ir.NewLocal(), ir.NewConstant(1), ir.NewConstant(2)) // 2 sources, 1 pred
	succ.AddPhi(phi)

	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{pred, succ}}

	require.Panics(t, func() { Check(graph) })
	assertViolation(t, func() { Check(graph) }, CodePhiArityMismatch)
}

func TestNoUnusedSurviveCatchesDeadNode(t *testing.T) {
	b := ir.NewBasicBlock()
	dead := ir.NewOperation(ir.OpAdd, ir.NewLocal(), ir.NewConstant(1), ir.NewConstant(2))
	b.AddOp(dead)
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{b}}

	assertViolation(t, func() { NoUnusedSurvive(graph) }, CodeUnusedSurvived)
}

func TestNoUnusedSurviveCatchesDeadPhi(t *testing.T) {
	pred, succ := ir.NewBasicBlock(), ir.NewBasicBlock()
	ir.Link(pred, succ)
	phi := ir.NewPhi(ir.NewLocal(), ir.NewConstant(1), ir.NewConstant(2))
	succ.AddPhi(phi)
	graph := &ir.BlockGraph{Blocks: []*ir.BasicBlock{pred, succ}}

	assertViolation(t, func() { NoUnusedSurvive(graph) }, CodeUnusedSurvived)
}

func assertViolation(t *testing.T, fn func(), code string) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		v, ok := r.(*Violation)
		require.True(t, ok, "panic value should be *invariant.Violation, got %T", r)
		assert.Equal(t, code, v.Code)
	}()
	fn()
}
