package cache

import (
	"fmt"
	"time"

	"github.com/atlas-quant/zoneengine/pkg/zonetypes"
	"github.com/google/uuid"
)

// PayloadMetadata carries the bookkeeping fields spec.md §4.7's payload
// shape names.
type PayloadMetadata struct {
	CreatedAt   time.Time `json:"created_at"`
	Schema      string    `json:"schema"`
	ToolVersion string    `json:"tool_version"`
}

// Payload is the versioned wrapper every cache entry is stored as
// (spec.md §4.7 "Payload").
type Payload struct {
	CacheVersion int                        `json:"cache_version"`
	Result       *zonetypes.ZoneAnalysisResult `json:"result"`
	Metadata     PayloadMetadata            `json:"metadata"`
}

// ToolVersion is stamped into every payload's metadata; overridable by
// main packages that know their own build version.
var ToolVersion = "dev"

// NewPayload wraps result at the current schema version.
func NewPayload(result *zonetypes.ZoneAnalysisResult, now time.Time) Payload {
	return Payload{
		CacheVersion: CurrentVersion,
		Result:       result,
		Metadata: PayloadMetadata{
			CreatedAt:   now,
			Schema:      schemaName(CurrentVersion),
			ToolVersion: ToolVersion,
		},
	}
}

func schemaName(version int) string {
	return fmt.Sprintf("ZoneAnalysisResult_v%d", version)
}

// NewRunID generates a run-correlation ID for result metadata, using
// the teacher pack's google/uuid dependency.
func NewRunID() string {
	return uuid.NewString()
}
