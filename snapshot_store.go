package escrutinio

import "errors"

// ErrNoSnapshot is returned by SnapshotStore.Load when nothing has been
// stored yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotStore persists the engine state as a single unit.
type SnapshotStore interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
	Clear() error
}
