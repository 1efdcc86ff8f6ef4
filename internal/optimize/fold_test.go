package optimize

import (
	"math"
	"testing"

	"shaderopt/internal/ir"
)

func TestFoldConstantInt(t *testing.T) {
	n := ir.NewOperation(ir.OpAdd|ir.TypeInt32, ir.NewLocal(), ir.NewConstant(uint32(2)), ir.NewConstant(uint32(3)))
	if !foldConstant(n) {
		t.Fatal("expected fold to fire on two int constants")
	}
	if n.Instr.Opcode() != ir.OpCopy || n.Sources()[0].Value != 5 {
		t.Fatalf("folded to %v, want Copy of constant 5", n.Sources())
	}
}

func TestFoldConstantFloatDivByZero(t *testing.T) {
	n := ir.NewOperation(ir.OpDiv|ir.TypeFP32, ir.NewLocal(), floatConst(1), floatConst(0))
	if !foldConstant(n) {
		t.Fatal("float division by zero folds to +Inf under IEEE-754, not a decline")
	}
	got := math.Float32frombits(n.Sources()[0].Value)
	if !math.IsInf(float64(got), 1) {
		t.Fatalf("got %v, want +Inf", got)
	}
}

func TestFoldConstantIntDivByZeroDeclines(t *testing.T) {
	n := ir.NewOperation(ir.OpDiv|ir.TypeInt32, ir.NewLocal(), ir.NewConstant(1), ir.NewConstant(0))
	if foldConstant(n) {
		t.Fatal("integer division by zero must decline rather than fold")
	}
	if n.Instr.Opcode() != ir.OpDiv {
		t.Fatal("node must be left unchanged when folding declines")
	}
}

func TestFoldDeclinesOnNonConstantSource(t *testing.T) {
	n := ir.NewOperation(ir.OpAdd|ir.TypeInt32, ir.NewLocal(), ir.NewArgument(0), ir.NewConstant(1))
	if foldConstant(n) {
		t.Fatal("fold must decline when any source is not a Constant")
	}
}

func TestFoldUintLogicalShiftDiffersFromIntArithmeticShift(t *testing.T) {
	negOne := uint32(0xFFFFFFFF)
	uintShift := ir.NewOperation(ir.OpShr|ir.TypeUint32, ir.NewLocal(), ir.NewConstant(negOne), ir.NewConstant(1))
	if !foldConstant(uintShift) {
		t.Fatal("expected uint shift to fold")
	}
	if uintShift.Sources()[0].Value != 0x7FFFFFFF {
		t.Fatalf("uint shift result = %#x, want 0x7fffffff (logical shift)", uintShift.Sources()[0].Value)
	}

	intShift := ir.NewOperation(ir.OpShr|ir.TypeInt32, ir.NewLocal(), ir.NewConstant(negOne), ir.NewConstant(1))
	if !foldConstant(intShift) {
		t.Fatal("expected int shift to fold")
	}
	if intShift.Sources()[0].Value != negOne {
		t.Fatalf("int shift result = %#x, want 0xffffffff (sign-extending shift of -1)", intShift.Sources()[0].Value)
	}
}
