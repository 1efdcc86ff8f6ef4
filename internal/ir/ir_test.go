package ir

import "testing"

func TestNewOperationWiresDefUse(t *testing.T) {
	a := NewLocal()
	b := NewConstant(0)
	def := NewOperation(OpAdd, a, b, b)

	if a.AssignedBy() != def {
		t.Fatalf("a.AssignedBy() = %v, want %v", a.AssignedBy(), def)
	}
	if got := b.UseCount(); got != 0 {
		t.Fatalf("constant operand should carry no usedBy bookkeeping, got %d", got)
	}

	block := NewBasicBlock()
	block.AddOp(def)

	c := NewLocal()
	use := NewOperation(OpCopy, c, a)
	block.AddOp(use)

	if got := a.UseCount(); got != 1 {
		t.Fatalf("a.UseCount() = %d, want 1", got)
	}
	uses := a.UsedBy()
	if len(uses) != 1 || uses[0] != use {
		t.Fatalf("a.UsedBy() = %v, want [%v]", uses, use)
	}
}

func TestDuplicateSourceCountsOnce(t *testing.T) {
	a := NewLocal()
	NewOperation(OpAdd, a) // define a

	block := NewBasicBlock()
	dst := NewLocal()
	xor := NewOperation(OpXor, dst, a, a) // x^x: a referenced twice
	block.AddOp(xor)

	if got := a.UseCount(); got != 1 {
		t.Fatalf("a.UseCount() = %d, want 1 (membership, not refcount)", got)
	}

	RemoveNode(xor)
	if got := a.UseCount(); got != 0 {
		t.Fatalf("after removing the sole user of both slots, a.UseCount() = %d, want 0", got)
	}
}

func TestReplaceAllUsesCopyPropagation(t *testing.T) {
	block := NewBasicBlock()

	s := NewLocal()
	NewOperation(OpConvert, s) // arbitrary def, block-less is fine for this test

	d := NewLocal()
	cp := NewOperation(OpCopy, d, s)
	block.AddOp(cp)

	e := NewLocal()
	use := NewOperation(OpAdd, e, d, d)
	block.AddOp(use)

	ReplaceAllUses(d, s)

	if d.UseCount() != 0 {
		t.Fatalf("d.UseCount() = %d, want 0 after ReplaceAllUses", d.UseCount())
	}
	if use.Sources()[0] != s || use.Sources()[1] != s {
		t.Fatalf("use.Sources() = %v, want [%v %v]", use.Sources(), s, s)
	}
	if s.UseCount() != 2 {
		t.Fatalf("s.UseCount() = %d, want 2 (cp and use; use appears twice but counts as one node)", s.UseCount())
	}
}

func TestTurnIntoCopyUpdatesUseLists(t *testing.T) {
	block := NewBasicBlock()
	x := NewLocal()
	y := NewLocal()
	NewOperation(OpAdd, x)
	NewOperation(OpAdd, y)

	dst := NewLocal()
	add := NewOperation(OpAdd, dst, x, y)
	block.AddOp(add)

	TurnIntoCopy(add, x)

	if x.UseCount() != 1 {
		t.Fatalf("x.UseCount() = %d, want 1", x.UseCount())
	}
	if y.UseCount() != 0 {
		t.Fatalf("y.UseCount() = %d, want 0 after TurnIntoCopy dropped it", y.UseCount())
	}
	if add.Instr != OpCopy {
		t.Fatalf("add.Instr = %v, want OpCopy", add.Instr)
	}
}

func TestIsUnusedRespectsSideEffectsAndDestinationKind(t *testing.T) {
	block := NewBasicBlock()

	pure := NewOperation(OpAdd, NewLocal(), NewConstant(1), NewConstant(2))
	block.AddOp(pure)
	if !IsUnused(pure) {
		t.Fatal("pure op with unused local destination should be unused")
	}

	call := NewOperation(OpCall, NewLocal())
	block.AddOp(call)
	if IsUnused(call) {
		t.Fatal("Call must never be considered unused")
	}

	noDst := NewOperation(OpStoreGlobal, nil, NewConstant(0), NewConstant(1))
	block.AddOp(noDst)
	if IsUnused(noDst) {
		t.Fatal("a node with no destination must never be considered unused (§4.5.a)")
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	block := NewBasicBlock()

	a := NewArgument(0)
	t1dst := NewLocal()
	t1 := NewOperation(OpAdd, t1dst, a, NewConstant(1))
	block.AddOp(t1)

	t2dst := NewLocal()
	t2 := NewOperation(OpAdd, t2dst, t1dst, NewConstant(2))
	block.AddOp(t2)

	t3dst := NewLocal()
	t3 := NewOperation(OpAdd, t3dst, t2dst, NewConstant(3))
	block.AddOp(t3)

	if !IsUnused(t3) {
		t.Fatal("t3 should be unused: nothing consumes t3dst")
	}
	RemoveNode(t3)

	if len(block.Ops) != 0 {
		t.Fatalf("block.Ops = %v, want empty after cascading removal", block.Ops)
	}
}

func TestOpcodeTagMasking(t *testing.T) {
	tag := OpAdd | TypeFP32
	if tag.Opcode() != OpAdd {
		t.Fatalf("tag.Opcode() = %v, want OpAdd", tag.Opcode())
	}
	if tag.TypeMask() != TypeFP32 {
		t.Fatalf("tag.TypeMask() = %v, want TypeFP32", tag.TypeMask())
	}
}

func TestSameValue(t *testing.T) {
	c1 := NewConstant(5)
	c2 := NewConstant(5)
	if !SameValue(c1, c2) {
		t.Fatal("constants with identical bit patterns should be same-valued")
	}
	cb1 := NewConstantBuffer(0, 4)
	cb2 := NewConstantBuffer(0, 4)
	if !SameValue(cb1, cb2) {
		t.Fatal("identical constant-buffer slot/offset pairs should be same-valued")
	}
	l1, l2 := NewLocal(), NewLocal()
	if SameValue(l1, l2) {
		t.Fatal("distinct local variables are never same-valued without a literal pointer match")
	}
}
