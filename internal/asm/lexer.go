// Package asm is a small textual notation for internal/ir graphs, used to
// build test fixtures and to render debug dumps (spec §4.9, an expansion
// beyond the distilled spec: the translator proper never parses text, but
// this package's tests and cmd/shaderopt-dump need a terse way to stand up
// a graph; the internal/optimize tests build theirs with the ir
// constructors directly).
// It is grounded on the teacher's grammar/ package: a participle/v2
// stateful lexer plus struct-tag grammar, scaled down from a full language
// front end to one flat instruction-per-line notation.
package asm

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes the textual IR notation:
//
//	block b0 {
//	  preds
//	  succs b1
//	  %t1 = add.i32 arg 0, const 1
//	  br %t1
//	}
//	block b1 {
//	  preds b0
//	  phi %t2 = [%t1]
//	  call %t2
//	}
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"Float", `[0-9]+\.[0-9]+`, nil},
		{"Hex", `0x[0-9a-fA-F]+`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.]*`, nil},
		{"Local", `%[a-zA-Z0-9_]+`, nil},
		{"Punct", `[{}\[\]=,:]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
