package asm

// Program is the root of the textual IR notation: an ordered list of
// blocks. Block order is preserved into the resulting ir.BlockGraph.
type Program struct {
	Blocks []*BlockDecl `@@*`
}

// BlockDecl is one `block <name> { ... }` section. Preds/Succs name other
// blocks in this Program by their declared Name; Build resolves PredNames
// into ir.Link calls after every block has been materialized and does not
// read SuccNames.
type BlockDecl struct {
	Name       string       `"block" @Ident "{"`
	PredNames  []string     `[ "preds" @Ident* ]`
	SuccNames  []string     `[ "succs" @Ident* ]`
	Statements []*Statement `@@*`
	Close      string       `"}"`
}

// Statement is one line inside a block: a phi, a terminator, or an
// ordinary operation. Order here mirrors §3's three node groups.
type Statement struct {
	Phi    *PhiDecl    `  @@`
	Branch *BranchDecl `| @@`
	Op     *OpDecl     `| @@`
}

// PhiDecl is `phi %dest = [incoming, incoming, ...]`, one incoming operand
// per predecessor in the order BlockDecl.PredNames lists them.
type PhiDecl struct {
	Dest     string     `"phi" @Local "=" "["`
	Incoming []*Operand `@@ { "," @@ } "]"`
}

// BranchDecl is `br` (unconditional) or `br <operand>` (conditional).
type BranchDecl struct {
	Cond *Operand `"br" [ @@ ]`
}

// OpDecl is `[%dest =] opcode.type [operand, operand, ...]`. Instr carries
// the dotted opcode+type spelling (e.g. "add.i32", "copy", "call") that
// build.go splits and resolves against the opcode/type name tables.
type OpDecl struct {
	Dest  string     `[ @Local "=" ]`
	Instr string     `@Ident`
	Lane  *int64     `[ "lane" @Int ]`
	Args  []*Operand `[ @@ { "," @@ } ]`
}

// Operand is one textual operand form; exactly one field is set.
type Operand struct {
	Const *ConstValue `  "const" @@`
	Arg   *int64      `| "arg" @Int`
	Attr  *IndexPair  `| "attr" @@`
	Cbuf  *IndexPair  `| "cbuf" @@`
	FragW bool        `| @"fragw"`
	Undef bool        `| @"undef"`
	Local *string     `| @Local`
}

// ConstValue is a Constant operand's literal payload, in whichever of the
// three numeric forms the source used. build.go turns it into a 32-bit bit
// pattern by literal form alone (float32 bits for Float, two's-complement
// bits for Int, raw bits for Hex); the consuming instruction's type tag
// is not consulted.
type ConstValue struct {
	Float *float64 `  @Float`
	Hex   *string  `| @Hex`
	Int   *int64   `| @Int`
}

// IndexPair is the `<index>:<component>` shape shared by attr and cbuf
// operands (attribute index/component, constant-buffer slot/offset).
type IndexPair struct {
	Index uint32 `@Int`
	Comp  uint32 `":" @Int`
}
