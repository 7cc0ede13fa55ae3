package eventtree

import (
	"fmt"
	"io"

	"github.com/randalmurphal/eventtree/pkg/eventtree/config"
	"github.com/randalmurphal/eventtree/pkg/eventtree/snapshot"
)

// Build constructs a tree from a definition. Children are added in the
// order they are listed.
//
// Returns an error wrapping ErrDuplicateChild if two siblings share a label.
func Build(def config.TreeDef, opts ...Option) (*Node, error) {
	root := New(def.Label, opts...)
	if err := addDefs(root, def.Children); err != nil {
		return nil, err
	}
	return root, nil
}

func addDefs(parent *Node, defs []config.TreeDef) error {
	for _, d := range defs {
		child, err := parent.AddChild(d.Label)
		if err != nil {
			return fmt.Errorf("build tree: %w", err)
		}
		if err := addDefs(child, d.Children); err != nil {
			return err
		}
	}
	return nil
}

// BuildFromSettings builds the tree described by s.Tree with options from
// OptionsFromSettings. A nil s.Tree yields an unlabeled root.
func BuildFromSettings(s config.Settings, w io.Writer) (*Node, error) {
	opts := OptionsFromSettings(s, w)
	if s.Tree == nil {
		return New("", opts...), nil
	}
	return Build(*s.Tree, opts...)
}

// BuildFromFile loads settings with config.LoadSettingsFile and builds the
// tree they describe.
func BuildFromFile(path string, w io.Writer) (*Node, error) {
	s, err := config.LoadSettingsFile(path)
	if err != nil {
		return nil, err
	}
	return BuildFromSettings(s, w)
}

// Snapshot captures the shape of the subtree rooted at n.
func (n *Node) Snapshot(name string) *snapshot.Snapshot {
	return snapshot.New(name, n.entry())
}

func (n *Node) entry() snapshot.Entry {
	e := snapshot.Entry{Label: n.label}
	if len(n.children) > 0 {
		e.Children = make([]snapshot.Entry, len(n.children))
		for i, c := range n.children {
			e.Children[i] = c.entry()
		}
	}
	return e
}

// Restore rebuilds a tree from a snapshot. The new tree has no listeners.
func Restore(s *snapshot.Snapshot, opts ...Option) (*Node, error) {
	if s == nil {
		return nil, fmt.Errorf("restore: %w", snapshot.ErrNotFound)
	}
	root := New(s.Root.Label, opts...)
	if err := addEntries(root, s.Root.Children); err != nil {
		return nil, fmt.Errorf("restore %s: %w", s.Name, err)
	}
	return root, nil
}

func addEntries(parent *Node, entries []snapshot.Entry) error {
	for _, e := range entries {
		child, err := parent.AddChild(e.Label)
		if err != nil {
			return err
		}
		if err := addEntries(child, e.Children); err != nil {
			return err
		}
	}
	return nil
}
