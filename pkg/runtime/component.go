package runtime

import (
	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/vdom"
)

// Component is anything that can render to a tree.
type Component interface {
	Render() *vdom.VNode
}

// FuncComponent wraps a render function as a Component.
type FuncComponent func() *vdom.VNode

// Render calls the wrapped function.
func (f FuncComponent) Render() *vdom.VNode { return f() }

// MarkupFunc adapts a markup-producing render function. The markup is
// parsed on every render; a parse failure panics and is recovered at
// the runtime's render boundary like any other render error.
type MarkupFunc func() string

// Render implements Component.
func (f MarkupFunc) Render() *vdom.VNode {
	node, err := vdom.Parse(f())
	if err != nil {
		panic(err)
	}
	return node
}

// Handler is a component event handler, the resolution target of a
// declarative event binding.
type Handler func(host.Event)

// Props is a component's input snapshot. Instances keep props frozen:
// SetProps replaces the snapshot wholesale, callers never see shared
// mutable state.
type Props map[string]any

// Stateful components declare the initial contents of their reactive
// state node.
type Stateful interface {
	InitialState() map[string]any
}

// HandlerTable components expose named handlers for declarative event
// bindings.
type HandlerTable interface {
	Handlers() map[string]Handler
}

// InstanceBinder components receive their Instance at construction, so
// struct components can read state and props during Render.
type InstanceBinder interface {
	Bind(*Instance)
}

// MountHook components are notified after the first DOM attach.
type MountHook interface {
	Mounted()
}

// UpdateHook components are notified after each committed re-render.
type UpdateHook interface {
	Updated()
}

// DestroyHook components are notified once on teardown.
type DestroyHook interface {
	Destroyed()
}
