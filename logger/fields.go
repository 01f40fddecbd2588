// SPDX-License-Identifier: MIT

package logger

// Standard field names for structured logging across lvltrace.
// Use these constants instead of raw strings.
const (
	// Identity
	FieldRunID     = "run_id"
	FieldDataset   = "dataset"
	FieldTechnique = "technique"
	FieldTraceID   = "trace_id"

	// Technique tree
	FieldKind       = "kind"
	FieldStage      = "stage"
	FieldComponents = "components"

	// Synthesis
	FieldPaths  = "paths"
	FieldRound  = "round"
	FieldMethod = "method"

	// Cache
	FieldCacheKey = "cache_key"
	FieldBackend  = "backend"
	FieldRemoved  = "removed"

	// Shapes and timing
	FieldRows       = "rows"
	FieldCols       = "cols"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"

	// Files
	FieldFile = "file"
)
