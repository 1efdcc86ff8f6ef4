// SPDX-License-Identifier: Apache-2.0

// Command shaderopt-dump parses a graph in the internal/asm textual
// notation, runs it through shaderopt.Optimize, and prints the rewritten
// graph back out. It is a debug aid, not a shader compiler front end: real
// buffer/bindless binding resolution lives in the caller's ShaderConfig,
// which this tool stands in for with one that never resolves anything.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"shaderopt"
	"shaderopt/internal/asm"
	"shaderopt/internal/ir"
	"shaderopt/internal/telemetry"
)

// noopConfig never resolves a buffer or bindless binding, so every one-shot
// lowering declines and the dump shows only the fixpoint pass's effect.
// SetAccessibleBufferMasks just records what would have been published.
type noopConfig struct {
	stage        ir.ShaderStage
	storageMask  uint32
	bindlessMask uint32
}

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
func (c *noopConfig) SetAccessibleBufferMasks(storageMask, bindlessMask uint32) {
	c.storageMask, c.bindlessMask = storageMask, bindlessMask
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: shaderopt-dump [-fragment] [-v] <file.sasm>")
		os.Exit(1)
	}

	fragment := false
	verbose := false
	var path string
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-fragment":
			fragment = true
		case "-v":
			verbose = true
		default:
			path = arg
		}
	}
	if path == "" {
		color.Red("missing input file")
		os.Exit(1)
	}

	if verbose {
		telemetry.Configure(1, "")
	}

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("reading %s: %s", path, err)
		os.Exit(1)
	}

	prog, err := asm.Parse(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		os.Exit(1)
	}

	graph, err := asm.Build(prog)
	if err != nil {
		color.Red("building graph from %s: %s", path, err)
		os.Exit(1)
	}

	stage := ir.StageCompute
	if fragment {
		stage = ir.StageFragment
	}
	cfg := &noopConfig{stage: stage}

	if err := shaderopt.Optimize(graph, cfg, shaderopt.Strict()); err != nil {
		color.Red("optimize: %s", err)
		os.Exit(1)
	}

	fmt.Print(asm.Print(graph))
	color.Green("storage-buffer mask: %#x, bindless-elimination mask: %#x", cfg.storageMask, cfg.bindlessMask)
}

// reportParseError mirrors the caret-style diagnostic the teacher's own
// CLI prints for a malformed source file.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
