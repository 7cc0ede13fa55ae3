// Package snapshot persists the shape of event trees.
//
// A Snapshot records labels and child order only. Listeners and events are
// never stored; restoring a snapshot yields a tree with no listeners.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one node in a snapshot.
type Entry struct {
	Label    string  `json:"label,omitempty"`
	Children []Entry `json:"children,omitempty"`
}

// Count returns the number of entries in the subtree rooted at e.
func (e Entry) Count() int {
	n := 1
	for _, c := range e.Children {
		n += c.Count()
	}
	return n
}

// Snapshot is a named, timestamped copy of a tree's shape.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Root      Entry     `json:"root"`
}

// New creates a snapshot of root with a fresh ID.
func New(name string, root Entry) *Snapshot {
	return &Snapshot{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Root:      root,
	}
}

// Encode serializes the snapshot to JSON.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot produced by Encode.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// Store persists snapshots by name.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot, replacing any previous snapshot with the same name.
	Save(s *Snapshot) error

	// Load retrieves the snapshot with the given name.
	// Returns ErrNotFound if it doesn't exist.
	Load(name string) (*Snapshot, error)

	// List returns metadata for all snapshots, oldest first.
	List() ([]Info, error)

	// Delete removes a snapshot.
	// Returns nil if it doesn't exist.
	Delete(name string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info provides metadata without loading the tree.
type Info struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Nodes     int
}

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")
)
