package rental

import (
	"context"
	"time"
)

// Source abstracts where a dataset is loaded from (HTTP, local file).
type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}

// Snapshot is one loaded dataset plus the metadata of its load.
type Snapshot struct {
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
	Dataset  *Dataset  `json:"-"`
}

// Store is the contract the in-memory snapshot store must satisfy.
type Store interface {
	Save(snapshot Snapshot)
	Latest() (Snapshot, error)
	History() []Snapshot
}
