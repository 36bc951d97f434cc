package sim

import "github.com/google/uuid"

// newRunID produces a SimulationResult.RunID. The teacher generates run
// IDs from a timestamp plus a random suffix (pkg/runtime/engine.go
// GenerateRunID); SDL has no filesystem run directory to name, so a UUIDv4
// is the more idiomatic identifier here. seed is accepted but unused —
// kept in the signature so a future deterministic-ID mode has a natural
// place to read it from.
func newRunID(seed int64) string {
	return uuid.NewString()
}
