// SPDX-License-Identifier: Apache-2.0

// Package shaderopt is the optimization driver of a GPU shader translator's
// middle end: it takes a control-flow graph of basic blocks over a
// three-address IR and rewrites it in place to a fixpoint, then applies a
// handful of one-shot, order-sensitive lowerings. See internal/optimize for
// the pass implementations and internal/ir for the data model.
package shaderopt

import (
	"fmt"

	"shaderopt/internal/invariant"
	"shaderopt/internal/ir"
	"shaderopt/internal/optimize"
)

// Option configures a single Optimize call.
type Option func(*options)

type options struct {
	strict bool
}

// Strict enables the invariant checks of internal/invariant before and
// after the pipeline runs. It is off by default: the checks are O(nodes)
// and allocation-light, but still unnecessary overhead for a translator
// that has already validated its own IR construction in other ways.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Optimize rewrites graph in place: the fixpoint pass manager, then the
// one-shot lowerings (GlobalToStorage, BindlessToIndexed,
// BindlessElimination), then the fixpoint pass manager again. config
// supplies the stage and binding-resolution hooks the lowerings need, and
// receives the accumulated buffer-usage masks exactly once.
//
// Optimize returns a non-nil error only when Strict() is set and an
// invariant from spec §8 is violated; that is a defect in the caller's IR
// construction, not a condition Optimize can recover from on its own.
func Optimize(graph *ir.BlockGraph, config ir.ShaderConfig, opts ...Option) (err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.strict {
		defer func() {
			if r := recover(); r != nil {
				if v, ok := r.(*invariant.Violation); ok {
					err = fmt.Errorf("shaderopt: precondition violated: %w", v)
					return
				}
				panic(r)
			}
		}()
		invariant.Check(graph)
	}

	optimize.Optimize(graph, config)

	if o.strict {
		invariant.Check(graph)
		invariant.NoUnusedSurvive(graph)
	}
	return nil
}
