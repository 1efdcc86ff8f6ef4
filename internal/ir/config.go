package ir

// ShaderStage identifies which pipeline stage a shader occupies. Only the
// fragment stage currently gates a pass (§4.6).
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageGeometry
	StageTessControl
	StageTessEvaluation
	StageCompute
)

// BufferBinding is a resolved storage-buffer or bindless-descriptor
// binding, as returned by a ShaderConfig introspection hook.
type BufferBinding struct {
	Index uint32
}

// ShaderConfig is the opaque translator collaborator described in spec §3
// and §6: read-only stage/introspection queries plus a single write of the
// accumulated buffer-usage masks. The optimizer never mutates it beyond
// that one call. Each hook returns ok=false for "unknown", in which case
// the calling lowering leaves the node unchanged (spec §7).
type ShaderConfig interface {
	// Stage reports which pipeline stage is being optimized.
	Stage() ShaderStage

	// ResolveStorageBuffer attempts to prove that the address `base +
	// offset` lies within a known storage buffer's region.
	ResolveStorageBuffer(base *Operand, offset int64) (binding BufferBinding, ok bool)

	// ResolveBindlessIndexed resolves a uniform-array-indexed bindless
	// texture handle to a binding-table slot.
	ResolveBindlessIndexed(arrayIndex *Operand) (binding BufferBinding, ok bool)

	// ResolveBindlessConstant resolves a constant-buffer-loaded bindless
	// texture handle directly to a descriptor.
	ResolveBindlessConstant(cbuf *Operand) (binding BufferBinding, ok bool)

	// SetAccessibleBufferMasks publishes the storage-buffer and
	// bindless-elimination usage masks accumulated by the one-shot
	// lowerings. Called exactly once per Optimize invocation.
	SetAccessibleBufferMasks(storageBufferMask, bindlessEliminationMask uint32)
}
