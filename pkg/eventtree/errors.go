package eventtree

import (
	"errors"
	"fmt"
)

// ErrDuplicateChild indicates AddChild was called with a label that an
// existing child already uses.
var ErrDuplicateChild = errors.New("duplicate child label")

// ErrInvalidLabel indicates a child label containing the tree's delimiter.
// Such a node could not be reached again with Lookup.
var ErrInvalidLabel = errors.New("label contains delimiter")

// ErrMaxDepth indicates AddChild would exceed the tree's WithMaxDepth limit.
var ErrMaxDepth = errors.New("maximum tree depth exceeded")

// DuplicateChildError provides context for a rejected AddChild.
// The tree is left unchanged.
type DuplicateChildError struct {
	// Parent is the path of the node AddChild was called on.
	Parent string
	// Label is the label that was already taken.
	Label string
}

// Error implements the error interface.
func (e *DuplicateChildError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("node already has a child named %q", e.Label)
	}
	return fmt.Sprintf("node %s already has a child named %q", e.Parent, e.Label)
}

// Unwrap returns ErrDuplicateChild for errors.Is support.
func (e *DuplicateChildError) Unwrap() error {
	return ErrDuplicateChild
}
