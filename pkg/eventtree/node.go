package eventtree

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/randalmurphal/eventtree/pkg/eventtree/emitter"
	"github.com/randalmurphal/eventtree/pkg/eventtree/observability"
	"github.com/randalmurphal/eventtree/pkg/eventtree/topic"
)

// Kind classifies a node by its position in the tree.
type Kind int

const (
	// KindRoot is a node without a parent, whether or not it has children.
	KindRoot Kind = iota
	// KindBranch is a non-root node with children.
	KindBranch
	// KindLeaf is a non-root node without children.
	KindLeaf
)

// String returns "root", "branch" or "leaf".
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is an element of an event tree.
//
// A node owns its ordered children and keeps a non-owning reference to its
// parent; AddChild and RemoveChild keep both sides in sync. Each node has
// its own listener registry.
//
// Node is NOT safe for concurrent use. Build and drive a tree from a single
// goroutine.
type Node struct {
	id        string
	label     string
	parent    *Node
	children  []*Node
	listeners *emitter.Emitter
	cfg       *nodeConfig
}

// New creates a parentless node. The label may be empty. A root label is
// only used as the first segment of Path; Lookup is relative to a node and
// never reads it.
//
// Example:
//
//	root := eventtree.New("app", eventtree.WithLogger(logger))
//	toolbar := root.MustAddChild("toolbar")
func New(label string, opts ...Option) *Node {
	cfg := defaultNodeConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newNode(label, cfg)
}

func newNode(label string, cfg *nodeConfig) *Node {
	return &Node{
		id:        uuid.New().String(),
		label:     label,
		listeners: emitter.New(),
		cfg:       cfg,
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() string {
	return n.id
}

// Label returns the node's label, which may be empty.
func (n *Node) Label() string {
	return n.label
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.children)
}

// Namespace returns the namespace used for this tree's paths and EmitPath.
func (n *Node) Namespace() topic.Namespace {
	return n.cfg.ns
}

// AddChild creates a child with the given label and appends it.
// The tree is not modified on error:
//   - a *DuplicateChildError if a child already uses a non-empty label;
//     unlabeled children never collide
//   - ErrInvalidLabel if label contains the tree's delimiter
//   - ErrMaxDepth if the child would sit deeper than WithMaxDepth allows
func (n *Node) AddChild(label string) (*Node, error) {
	if d := n.cfg.ns.Delimiter(); strings.Contains(label, d) {
		return nil, fmt.Errorf("%w: %q contains %q", ErrInvalidLabel, label, d)
	}
	if label != "" && n.Get(label) != nil {
		parent := n.Path()
		observability.LogDuplicateChild(n.cfg.logger, parent, label)
		return nil, &DuplicateChildError{Parent: parent, Label: label}
	}
	if limit := n.cfg.maxDepth; limit > 0 && n.Depth() >= limit {
		return nil, fmt.Errorf("%w: %q would be at depth %d, limit is %d",
			ErrMaxDepth, label, n.Depth()+1, limit)
	}

	child := newNode(label, n.cfg)
	child.parent = n
	n.children = append(n.children, child)

	if n.cfg.logger != nil {
		observability.LogChildAdded(n.cfg.logger, n.Path(), label)
	}
	return child, nil
}

// MustAddChild is AddChild for construction code that treats a rejected
// label as a programming error.
//
// Panics if AddChild returns an error.
func (n *Node) MustAddChild(label string) *Node {
	child, err := n.AddChild(label)
	if err != nil {
		panic("eventtree: " + err.Error())
	}
	return child
}

// RemoveChild detaches the first child with the given label and returns it.
// Returns nil if no child has that label. The removed child keeps its own
// subtree and listeners, and its parent is cleared.
func (n *Node) RemoveChild(label string) *Node {
	return n.RemoveChildAt(n.indexOfLabel(label))
}

// RemoveChildAt detaches the child at index i and returns it.
// Returns nil if i is out of range. The order of the remaining children is
// preserved.
func (n *Node) RemoveChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}

	child := n.children[i]
	// Full slice expression forces a fresh backing array so slices handed
	// out by Children stay intact.
	n.children = append(n.children[:i:i], n.children[i+1:]...)
	child.parent = nil

	if n.cfg.logger != nil {
		observability.LogChildRemoved(n.cfg.logger, n.Path(), child.label)
	}
	return child
}

// Get returns the first child with the given label, or nil.
func (n *Node) Get(label string) *Node {
	if i := n.indexOfLabel(label); i >= 0 {
		return n.children[i]
	}
	return nil
}

// At returns the child at index i, or nil if i is out of range.
func (n *Node) At(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) indexOfLabel(label string) int {
	for i, c := range n.children {
		if c.label == label {
			return i
		}
	}
	return -1
}

// indexInParent returns n's position among its siblings, or -1.
func (n *Node) indexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the sibling after n, or nil if n is last or has no parent.
func (n *Node) NextSibling() *Node {
	i := n.indexInParent()
	if i < 0 || i >= len(n.parent.children)-1 {
		return nil
	}
	return n.parent.children[i+1]
}

// PrevSibling returns the sibling before n, or nil if n is first or has no parent.
func (n *Node) PrevSibling() *Node {
	i := n.indexInParent()
	if i <= 0 {
		return nil
	}
	return n.parent.children[i-1]
}

// Kind classifies the node. A parentless node is always KindRoot.
func (n *Node) Kind() Kind {
	switch {
	case n.parent == nil:
		return KindRoot
	case len(n.children) > 0:
		return KindBranch
	default:
		return KindLeaf
	}
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Root returns the topmost ancestor of n, or n itself.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Path returns the labels from the root down to n joined with the tree's
// delimiter. Unlabeled nodes contribute no segment. Path walks to the root
// on every call.
func (n *Node) Path() string {
	labels := make([]string, n.Depth()+1)
	i := len(labels) - 1
	for p := n; p != nil; p = p.parent {
		labels[i] = p.label
		i--
	}
	return n.cfg.ns.Join(labels...)
}

// Lookup resolves a delimiter-separated label path relative to n.
// An empty path returns n; any missing segment returns nil.
//
// Example:
//
//	save := root.Lookup("toolbar/save")
func (n *Node) Lookup(path string) *Node {
	cur := n
	for _, seg := range n.cfg.ns.Split(path) {
		if cur = cur.Get(seg); cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits n and its descendants in pre-order until fn returns false.
// Returns false if the walk was cut short. Children are read before they
// are visited, so fn may restructure the subtree it is given.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children() {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// String returns the node's path, or "<root>" for an unlabeled root.
func (n *Node) String() string {
	if p := n.Path(); p != "" {
		return p
	}
	return "<root>"
}
