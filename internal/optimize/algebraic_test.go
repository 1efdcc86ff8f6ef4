package optimize

import (
	"testing"

	"shaderopt/internal/ir"
)

func TestSimplifyAddIdentity(t *testing.T) {
	x := ir.NewArgument(0)
	n := ir.NewOperation(ir.OpAdd|ir.TypeInt32, ir.NewLocal(), x, ir.NewConstant(0))
	if !simplifyAlgebraic(n) {
		t.Fatal("x+0 should simplify")
	}
	if n.Sources()[0] != x {
		t.Fatalf("got %v, want Copy of x", n.Sources())
	}
}

func TestSimplifyMulByZeroIntegerOnly(t *testing.T) {
	x := ir.NewArgument(0)
	intMul := ir.NewOperation(ir.OpMul|ir.TypeInt32, ir.NewLocal(), x, ir.NewConstant(0))
	if !simplifyAlgebraic(intMul) || intMul.Sources()[0].Value != 0 {
		t.Fatal("int x*0 should fold to constant 0")
	}

	floatMul := ir.NewOperation(ir.OpMul|ir.TypeFP32, ir.NewLocal(), x, floatConst(0))
	if simplifyAlgebraic(floatMul) {
		t.Fatal("FP x*0 must never be rewritten (NaN/signed-zero hazard)")
	}
}

func TestSimplifyMulByOneAnyType(t *testing.T) {
	x := ir.NewArgument(0)
	n := ir.NewOperation(ir.OpMul|ir.TypeFP32, ir.NewLocal(), x, floatConst(1))
	if !simplifyAlgebraic(n) || n.Sources()[0] != x {
		t.Fatal("x*1.0 should simplify to Copy of x for floats too")
	}
}

func TestSimplifyXorSelfInverse(t *testing.T) {
	x := ir.NewArgument(0)
	n := ir.NewOperation(ir.OpXor|ir.TypeUint32, ir.NewLocal(), x, x)
	if !simplifyAlgebraic(n) || n.Sources()[0].Value != 0 {
		t.Fatal("x^x should simplify to constant 0")
	}
}

func TestSimplifyUnsignedLessThanZeroAlwaysFalse(t *testing.T) {
	x := ir.NewArgument(0)
	n := ir.NewOperation(ir.OpCompareLT|ir.TypeUint32, ir.NewLocal(), x, ir.NewConstant(0))
	if !simplifyAlgebraic(n) || n.Sources()[0].Value != 0 {
		t.Fatal("x < 0u should fold to constant false")
	}
}

func TestSimplifySelectConstantCondition(t *testing.T) {
	a, b := ir.NewArgument(0), ir.NewArgument(1)
	n := ir.NewOperation(ir.OpSelect, ir.NewLocal(), ir.NewConstant(0), a, b)
	if !simplifyAlgebraic(n) || n.Sources()[0] != b {
		t.Fatal("Select(false, a, b) should simplify to Copy of b")
	}
}
