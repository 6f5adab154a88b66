// internal/status/snapshot.go
package status

// Snapshot is one decoded controller block.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Battery   int
	Connected bool
	Charging  bool
}
