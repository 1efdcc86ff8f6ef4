package asm

import (
	"fmt"
	"strings"

	"shaderopt/internal/ir"
)

// Printer renders an ir.BlockGraph back into the textual notation, for the
// debug dump CLI. Grounded on the teacher's internal/ir.Printer: a
// strings.Builder accumulator with a fixed two-space statement indent, one
// writeLine call per output line.
type Printer struct {
	output strings.Builder

	blockNames map[*ir.BasicBlock]string
	localNames map[*ir.Operand]string
}

// Print returns the textual-notation rendering of graph. Block and local
// names are synthesized ("b0", "b1", ... and "%t0", "%t1", ...) in the
// order they are first encountered; the original decoder-assigned names, if
// any, are not preserved since ir.BasicBlock/ir.Operand carry none.
func Print(graph *ir.BlockGraph) string {
	p := &Printer{
		blockNames: map[*ir.BasicBlock]string{},
		localNames: map[*ir.Operand]string{},
	}
	for i, b := range graph.Blocks {
		p.blockNames[b] = fmt.Sprintf("b%d", i)
	}
	for _, b := range graph.Blocks {
		p.printBlock(b)
	}
	return p.output.String()
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) printBlock(b *ir.BasicBlock) {
	p.writeLine("block %s {", p.blockNames[b])
	if len(b.Preds) > 0 {
		p.writeLine("  preds %s", strings.Join(p.blockRefs(b.Preds), " "))
	}
	if len(b.Succs) > 0 {
		p.writeLine("  succs %s", strings.Join(p.blockRefs(b.Succs), " "))
	}
	for _, phi := range b.Phis {
		incoming := make([]string, len(phi.Sources()))
		for i, s := range phi.Sources() {
			incoming[i] = p.operand(s)
		}
		p.writeLine("  phi %s = [%s]", p.local(phi.Destination()), strings.Join(incoming, ", "))
	}
	for _, op := range b.Ops {
		p.printOp(op)
	}
	if b.Branch != nil {
		if srcs := b.Branch.Sources(); len(srcs) > 0 {
			p.writeLine("  br %s", p.operand(srcs[0]))
		} else {
			p.writeLine("  br")
		}
	}
	p.writeLine("}")
}

func (p *Printer) printOp(n *ir.Node) {
	args := make([]string, len(n.Sources()))
	for i, s := range n.Sources() {
		args[i] = p.operand(s)
	}
	instr := instrName(n.Instr)
	lane := ""
	if n.Instr.Opcode() == ir.OpUnpackHalf2x16 {
		lane = fmt.Sprintf(" lane %d", n.Lane)
	}
	if dst := n.Destination(); dst != nil {
		p.writeLine("  %s = %s%s %s", p.local(dst), instr, lane, strings.Join(args, ", "))
	} else {
		p.writeLine("  %s%s %s", instr, lane, strings.Join(args, ", "))
	}
}

func (p *Printer) blockRefs(blocks []*ir.BasicBlock) []string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = p.blockNames[b]
	}
	return names
}

func (p *Printer) local(o *ir.Operand) string {
	if name, ok := p.localNames[o]; ok {
		return name
	}
	name := fmt.Sprintf("%%t%d", len(p.localNames))
	p.localNames[o] = name
	return name
}

func (p *Printer) operand(o *ir.Operand) string {
	switch o.Kind {
	case ir.KindConstant:
		return fmt.Sprintf("const 0x%08x", o.Value)
	case ir.KindConstantBuffer:
		return fmt.Sprintf("cbuf %d:%d", o.Slot, o.Value)
	case ir.KindLocalVariable:
		return p.local(o)
	case ir.KindAttribute:
		if o.Value == fragCoordAttribute && o.Slot == 3 {
			return "fragw"
		}
		return fmt.Sprintf("attr %d:%d", o.Value, o.Slot)
	case ir.KindArgument:
		return fmt.Sprintf("arg %d", o.Value)
	case ir.KindLabel:
		return fmt.Sprintf("label %d", o.Value)
	default:
		return "undef"
	}
}

var instrNames = func() map[ir.Tag]string {
	m := make(map[ir.Tag]string, len(opcodeNames))
	for name, op := range opcodeNames {
		m[op] = name
	}
	return m
}()

var typeSuffixNames = map[ir.Tag]string{
	ir.TypeInt32: "i32", ir.TypeUint32: "u32", ir.TypeFP32: "f32", ir.TypeBool: "bool",
}

func instrName(tag ir.Tag) string {
	name, ok := instrNames[tag.Opcode()]
	if !ok {
		name = fmt.Sprintf("op%d", tag.Opcode())
	}
	if suffix, ok := typeSuffixNames[tag.TypeMask()]; ok {
		return name + "." + suffix
	}
	return name
}
