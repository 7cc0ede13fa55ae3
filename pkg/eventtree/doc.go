/*
Package eventtree provides hierarchical event dispatch with bubbling.

# Overview

Nodes are arranged in a tree. Each node has its own listener registry and
can emit named events. An event emitted at a node is dispatched to that
node's listeners, then to its parent's, and so on up to the root, the way
DOM events bubble through an element tree.

Every dispatch level sees the same Event. A listener can end the walk:

  - StopPropagation lets the remaining listeners on the current node run,
    then stops before the parent.
  - StopImmediatePropagation also skips the remaining listeners on the
    current node.

# Basic Usage

	root := eventtree.New("app")
	toolbar := root.MustAddChild("toolbar")
	save := toolbar.MustAddChild("save")

	root.On("click", func(evt *eventtree.Event, args ...any) {
	    fmt.Println("clicked", evt.Origin().Path(), args)
	})
	toolbar.On("click", func(evt *eventtree.Event, _ ...any) {
	    if evt.Origin() == save {
	        evt.StopPropagation() // root never sees save clicks
	    }
	})

	save.Emit("click", 10, 20)

# Tree Management

AddChild rejects a label that a sibling already uses with a
*DuplicateChildError. Get, At, RemoveChild, RemoveChildAt, NextSibling and
PrevSibling return nil when nothing matches. A removed child keeps its
subtree and listeners but has no parent.

# Namespaced Event Names

Paths and EmitPath join segments with the tree's delimiter. The delimiter
comes from WithDelimiter or WithNamespace, or from the process default in
package topic at the time the root was created:

	topic.SetDefaultDelimiter(".") // once, at startup
	button.EmitPath([]string{"widget", "click"}) // emits "widget.click"

# Configuration

Trees can be described in a YAML or JSON file and built with BuildFromFile:

	root, err := eventtree.BuildFromFile("tree.yaml", os.Stderr)

Labels may not contain the delimiter. WithMaxDepth (max_depth in a file) caps
how deep AddChild will go.

Node.Snapshot and Restore copy a tree's shape (not its listeners) through a
snapshot.Store.

# Observability

Logging, metrics and tracing are opt-in:

	root := eventtree.New("app",
	    eventtree.WithLogger(logger),
	    eventtree.WithMetrics(observability.NewMetricsRecorder()),
	    eventtree.WithSpanManager(observability.NewSpanManager()),
	)

# Concurrency

Dispatch is synchronous. Listeners may emit, register listeners and
restructure the tree re-entrantly; a node detached mid-walk ends the walk.
A tree must not be mutated from several goroutines at once.
*/
package eventtree
