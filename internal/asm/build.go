package asm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"shaderopt/internal/ir"
)

// fragCoordAttribute mirrors internal/optimize.FragCoordAttribute's
// reserved sentinel index; duplicated here (rather than imported) to keep
// this test-tooling package from depending on the optimizer it helps test.
const fragCoordAttribute = ^uint32(0)

var opcodeNames = map[string]ir.Tag{
	"nop": ir.OpNop, "copy": ir.OpCopy,
	"add": ir.OpAdd, "sub": ir.OpSub, "mul": ir.OpMul, "div": ir.OpDiv, "mod": ir.OpMod,
	"and": ir.OpAnd, "or": ir.OpOr, "xor": ir.OpXor, "shl": ir.OpShl, "shr": ir.OpShr,
	"neg": ir.OpNeg, "not": ir.OpNot,
	"eq": ir.OpCompareEQ, "ne": ir.OpCompareNE, "lt": ir.OpCompareLT,
	"le": ir.OpCompareLE, "gt": ir.OpCompareGT, "ge": ir.OpCompareGE,
	"convert": ir.OpConvert, "select": ir.OpSelect, "land": ir.OpLogicalAnd, "lor": ir.OpLogicalOr,
	"pack": ir.OpPackHalf2x16, "unpack": ir.OpUnpackHalf2x16,
	"shufflexor": ir.OpShuffleXor, "swizzleadd": ir.OpSwizzleAdd, "ddx": ir.OpDdx, "ddy": ir.OpDdy,
	"loadglobal": ir.OpLoadGlobal, "storeglobal": ir.OpStoreGlobal,
	"loadstorage": ir.OpLoadStorageBuffer, "storestorage": ir.OpStoreStorageBuffer,
	"samplebindless": ir.OpTextureSampleBindless, "sampleindexed": ir.OpTextureSampleIndexed,
	"loadattr": ir.OpLoadAttribute,
	"call":     ir.OpCall, "imageatomic": ir.OpImageAtomic,
	"atomicadd": ir.OpAtomicAdd, "atomicexchange": ir.OpAtomicExchange,
}

var typeSuffixes = map[string]ir.Tag{
	"i32": ir.TypeInt32, "u32": ir.TypeUint32, "f32": ir.TypeFP32, "bool": ir.TypeBool,
}

func parseInstr(spelling string) (ir.Tag, error) {
	name, typ := spelling, ir.Tag(0)
	if i := strings.LastIndex(spelling, "."); i >= 0 {
		name = spelling[:i]
		suffix, ok := typeSuffixes[spelling[i+1:]]
		if !ok {
			return 0, fmt.Errorf("unknown type suffix in %q", spelling)
		}
		typ = suffix
	}
	op, ok := opcodeNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown opcode %q", name)
	}
	return op | typ, nil
}

// Build converts a parsed Program into an ir.BlockGraph. It allocates one
// ir.Operand per distinct %name across the whole program (so a phi can
// reference a local defined in any block) and wires def/use bookkeeping
// purely by calling the ir package's own constructors, the same as any
// other caller would.
//
// A block's declared "preds" list drives ir.Link (which updates both sides
// of the edge); a "succs" list is accepted as documentation for the reader
// and is not relinked separately.
func Build(prog *Program) (*ir.BlockGraph, error) {
	blocksByName := map[string]*ir.BasicBlock{}
	order := make([]*ir.BasicBlock, len(prog.Blocks))
	for i, bd := range prog.Blocks {
		if _, dup := blocksByName[bd.Name]; dup {
			return nil, fmt.Errorf("duplicate block name %q", bd.Name)
		}
		b := ir.NewBasicBlock()
		blocksByName[bd.Name] = b
		order[i] = b
	}

	for i, bd := range prog.Blocks {
		for _, predName := range bd.PredNames {
			pred, ok := blocksByName[predName]
			if !ok {
				return nil, fmt.Errorf("block %q: unknown predecessor %q", bd.Name, predName)
			}
			ir.Link(pred, order[i])
		}
	}

	locals := map[string]*ir.Operand{}
	localOf := func(name string) *ir.Operand {
		if op, ok := locals[name]; ok {
			return op
		}
		op := ir.NewLocal()
		locals[name] = op
		return op
	}

	for i, bd := range prog.Blocks {
		b := order[i]
		for _, st := range bd.Statements {
			if err := buildStatement(b, st, localOf); err != nil {
				return nil, fmt.Errorf("block %q: %w", bd.Name, err)
			}
		}
	}

	return &ir.BlockGraph{Blocks: order}, nil
}

func buildStatement(b *ir.BasicBlock, st *Statement, localOf func(string) *ir.Operand) error {
	switch {
	case st.Phi != nil:
		incoming := make([]*ir.Operand, len(st.Phi.Incoming))
		for j, o := range st.Phi.Incoming {
			op, err := resolveOperand(o, localOf)
			if err != nil {
				return err
			}
			incoming[j] = op
		}
		b.AddPhi(ir.NewPhi(localOf(st.Phi.Dest), incoming...))
	case st.Branch != nil:
		var cond *ir.Operand
		if st.Branch.Cond != nil {
			op, err := resolveOperand(st.Branch.Cond, localOf)
			if err != nil {
				return err
			}
			cond = op
		}
		b.SetBranch(ir.NewBranch(cond))
	case st.Op != nil:
		node, err := buildOp(st.Op, localOf)
		if err != nil {
			return err
		}
		b.AddOp(node)
	}
	return nil
}

func buildOp(decl *OpDecl, localOf func(string) *ir.Operand) (*ir.Node, error) {
	tag, err := parseInstr(decl.Instr)
	if err != nil {
		return nil, err
	}
	srcs := make([]*ir.Operand, len(decl.Args))
	for i, a := range decl.Args {
		op, err := resolveOperand(a, localOf)
		if err != nil {
			return nil, err
		}
		srcs[i] = op
	}
	var dst *ir.Operand
	if decl.Dest != "" {
		dst = localOf(decl.Dest)
	}
	node := ir.NewOperation(tag, dst, srcs...)
	if decl.Lane != nil {
		node.Lane = int(*decl.Lane)
	}
	return node, nil
}

func resolveOperand(o *Operand, localOf func(string) *ir.Operand) (*ir.Operand, error) {
	switch {
	case o.Const != nil:
		return resolveConst(o.Const)
	case o.Arg != nil:
		return ir.NewArgument(uint32(*o.Arg)), nil
	case o.Attr != nil:
		return ir.NewAttribute(o.Attr.Index, o.Attr.Comp), nil
	case o.Cbuf != nil:
		return ir.NewConstantBuffer(o.Cbuf.Index, o.Cbuf.Comp), nil
	case o.FragW:
		return ir.NewAttribute(fragCoordAttribute, 3), nil
	case o.Undef:
		return ir.NewUndefined(), nil
	case o.Local != nil:
		return localOf(*o.Local), nil
	default:
		return nil, fmt.Errorf("empty operand")
	}
}

func resolveConst(c *ConstValue) (*ir.Operand, error) {
	switch {
	case c.Float != nil:
		return ir.NewConstant(math.Float32bits(float32(*c.Float))), nil
	case c.Hex != nil:
		v, err := strconv.ParseUint(strings.TrimPrefix(*c.Hex, "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid hex constant %q: %w", *c.Hex, err)
		}
		return ir.NewConstant(uint32(v)), nil
	case c.Int != nil:
		return ir.NewConstant(uint32(int32(*c.Int))), nil
	default:
		return nil, fmt.Errorf("empty constant")
	}
}
