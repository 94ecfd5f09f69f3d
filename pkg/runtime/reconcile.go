package runtime

import (
	"fmt"

	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/vdom"
)

// renderTree runs the component's render function behind the render
// boundary: a panic is recovered and returned as an error, so a bad
// render aborts only its own update and never leaves the component
// half-mounted.
func (i *Instance) renderTree() (tree *vdom.VNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &RenderError{Component: i.id, Cause: cause}
			tree = nil
		}
	}()

	tree = i.comp.Render()
	if tree == nil {
		return nil, ErrNilRender
	}
	if tree.Kind != vdom.KindElement {
		return nil, ErrRootNotElement
	}
	return tree, nil
}

// commit materializes tree into host elements, resolves refs and event
// bindings, and swaps the new root in for the old one in a single
// parent operation, carrying the scroll offset across.
func (i *Instance) commit(tree *vdom.VNode) {
	refs := make(map[string]host.Element)
	root := i.build(tree, refs)

	i.mu.Lock()
	old := i.root
	container := i.container
	i.root = root
	i.refs = refs
	i.lastTree = tree
	i.mu.Unlock()

	if old != nil {
		if parent := old.Parent(); parent != nil {
			parent.ReplaceChild(root, old)
		} else {
			container.AppendChild(root)
		}
		root.SetScrollTop(old.ScrollTop())
	} else {
		container.AppendChild(root)
	}

	i.bindInteraction(root)
}

// build creates the host subtree for v. Ref markers are indexed into
// refs and bindings are attached as real listeners; neither marker is
// ever written into the committed DOM.
func (i *Instance) build(v *vdom.VNode, refs map[string]host.Element) host.Element {
	if v.Kind == vdom.KindText {
		return i.doc.CreateText(v.Text)
	}

	el := i.doc.CreateElement(v.Tag)
	for k, val := range v.Attrs {
		el.SetAttr(k, val)
	}

	if v.RefName != "" {
		refs[v.RefName] = el
	}

	for _, b := range v.Bindings {
		handler, ok := i.lookupHandler(b.Handler)
		if !ok {
			// Non-fatal: the binding is skipped, everything else works.
			i.ctx.logger.Warn("event binding skipped, handler not found",
				"scope", "runtime",
				"component", i.id,
				"event", b.Event,
				"handler", b.Handler)
			i.ctx.observer.BindingSkipped(i.id, b.Handler)
			continue
		}
		el.AddEventListener(b.Event, false, i.guardHandler(b.Handler, handler))
	}

	for _, c := range v.Children {
		el.AppendChild(i.build(c, refs))
	}
	return el
}

func (i *Instance) lookupHandler(name string) (Handler, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	h, ok := i.handlers[name]
	return h, ok
}

// guardHandler isolates handler panics the same way the store isolates
// listener panics.
func (i *Instance) guardHandler(name string, h Handler) func(host.Event) {
	return func(ev host.Event) {
		defer func() {
			if r := recover(); r != nil {
				i.ctx.logger.Error("event handler panicked",
					"scope", "runtime",
					"component", i.id,
					"handler", name,
					"panic", r)
			}
		}()
		h(ev)
	}
}
