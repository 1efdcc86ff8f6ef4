// Package invariant implements the "fail loudly" half of spec §7: checking
// the universal invariants of spec §8 and panicking with a coded,
// formatted diagnostic the moment a programmer-error precondition is
// violated. It is the Go analogue of the teacher's internal/errors package
// — codes.go mirrors its E00xx range table and GetErrorDescription, but
// repointed from "bad Kanso source" diagnostics to "bad IR" diagnostics.
// There is no recoverable error path in this package: Violation is only
// ever raised via panic (see check.go), never returned by it.
package invariant

// Violation codes. Unlike the teacher's compiler diagnostics these never
// reach an end user — they are assertion failures meant for the translator
// engineer wiring up IR construction, so the ranges are flat rather than
// categorized by compiler phase.
const (
	// CodeDanglingAssignedBy: a local-variable operand's assignedBy
	// points to a node that is not reachable from any block.
	CodeDanglingAssignedBy = "V001"

	// CodeMissingBackEdge: a node references an operand as a source but
	// the operand's usedBy set does not contain that node.
	CodeMissingBackEdge = "V002"

	// CodeStaleBackEdge: a local-variable operand's assignedBy does not
	// match the node that lists it as a destination.
	CodeStaleBackEdge = "V003"

	// CodeNonLocalDestination: a live node's destination is neither
	// empty nor KindLocalVariable.
	CodeNonLocalDestination = "V004"

	// CodePhiArityMismatch: a phi's source count does not match its
	// block's predecessor count.
	CodePhiArityMismatch = "V005"

	// CodeUnassignedLocal: a local-variable operand reachable from the
	// graph has no assigning node.
	CodeUnassignedLocal = "V006"

	// CodeUnusedSurvived: a node satisfying §4.1's "unused" predicate
	// is still present after Optimize returned.
	CodeUnusedSurvived = "V007"
)

var descriptions = map[string]string{
	CodeDanglingAssignedBy:  "local-variable operand's assignedBy node is not reachable from any block",
	CodeMissingBackEdge:     "node references an operand as a source that does not list the node in usedBy",
	CodeStaleBackEdge:       "local-variable operand's assignedBy does not match the node listing it as a destination",
	CodeNonLocalDestination: "live node has a non-empty, non-local-variable destination",
	CodePhiArityMismatch:    "phi source count does not match block predecessor count",
	CodeUnassignedLocal:     "local-variable operand reachable from the graph has no assigning node",
	CodeUnusedSurvived:      "unused node survived the optimizer",
}

// Describe returns a human-readable description of a violation code, or
// "unknown violation" if code is not recognized.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "unknown violation"
}
