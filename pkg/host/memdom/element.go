package memdom

import (
	"strings"
	"sync"

	"github.com/glint-ui/glint/pkg/host"
)

// Element is an in-memory host element.
type Element struct {
	mu sync.Mutex

	tag      string
	text     string // text nodes only
	attrs    map[string]string
	parent   *Element
	children []*Element

	listeners  map[string][]*listener
	listenerID int

	scrollTop int
}

type listener struct {
	id      int
	capture bool
	fn      func(host.Event)
}

var _ host.Element = (*Element)(nil)

// Tag returns the tag name, or "" for text nodes.
func (e *Element) Tag() string { return e.tag }

// IsText reports whether this is a text node.
func (e *Element) IsText() bool { return e.tag == "" }

// SetAttr implements host.Element.
func (e *Element) SetAttr(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
}

// Attr implements host.Element.
func (e *Element) Attr(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.attrs[key]
	return v, ok
}

// RemoveAttr implements host.Element.
func (e *Element) RemoveAttr(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.attrs, key)
}

// Attrs implements host.Element.
func (e *Element) Attrs() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// AppendChild implements host.Element.
func (e *Element) AppendChild(child host.Element) {
	c := child.(*Element)
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	e.mu.Lock()
	e.children = append(e.children, c)
	e.mu.Unlock()
	c.parent = e
}

// RemoveChild implements host.Element.
func (e *Element) RemoveChild(child host.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, cur := range e.children {
		if cur == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

// ReplaceChild implements host.Element. The new child takes the old
// child's position in a single operation.
func (e *Element) ReplaceChild(newChild, oldChild host.Element) {
	nc, ok1 := newChild.(*Element)
	oc, ok2 := oldChild.(*Element)
	if !ok1 || !ok2 {
		return
	}
	if nc.parent != nil {
		nc.parent.RemoveChild(nc)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, cur := range e.children {
		if cur == oc {
			e.children[i] = nc
			nc.parent = e
			oc.parent = nil
			return
		}
	}
}

// Parent implements host.Element.
func (e *Element) Parent() host.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Children implements host.Element.
func (e *Element) Children() []host.Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]host.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// SetText implements host.Element. For elements it replaces all children
// with a single text node.
func (e *Element) SetText(text string) {
	if e.IsText() {
		e.mu.Lock()
		e.text = text
		e.mu.Unlock()
		return
	}
	e.mu.Lock()
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.mu.Unlock()
	t := &Element{text: text}
	e.AppendChild(t)
}

// Text implements host.Element.
func (e *Element) Text() string {
	if e.IsText() {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.text
	}
	var sb strings.Builder
	for _, c := range e.Children() {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// AddEventListener implements host.Element.
func (e *Element) AddEventListener(event string, capture bool, fn func(host.Event)) func() {
	e.mu.Lock()
	if e.listeners == nil {
		e.listeners = make(map[string][]*listener)
	}
	e.listenerID++
	l := &listener{id: e.listenerID, capture: capture, fn: fn}
	e.listeners[event] = append(e.listeners[event], l)
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		ls := e.listeners[event]
		for i, cur := range ls {
			if cur == l {
				e.listeners[event] = append(ls[:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Dispatch implements host.Element: capture-phase listeners run from the
// root down to the target, then target and bubbling listeners run back up.
func (e *Element) Dispatch(ev host.Event) {
	if ev.Target == nil {
		ev.Target = e
	}

	// Ancestor path, target first.
	var path []*Element
	for cur := e; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}

	// Capture phase: root towards target.
	for i := len(path) - 1; i >= 0; i-- {
		path[i].invoke(ev, true)
	}
	// Target + bubble phase: target back up to root.
	for _, el := range path {
		el.invoke(ev, false)
	}
}

func (e *Element) invoke(ev host.Event, capture bool) {
	e.mu.Lock()
	ls := append([]*listener(nil), e.listeners[ev.Type]...)
	e.mu.Unlock()
	for _, l := range ls {
		if l.capture == capture {
			l.fn(ev)
		}
	}
}

// ScrollTop implements host.Element.
func (e *Element) ScrollTop() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollTop
}

// SetScrollTop implements host.Element.
func (e *Element) SetScrollTop(px int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scrollTop = px
}

// Find returns the first element in the subtree (including e) whose
// attribute key equals value, or nil.
func (e *Element) Find(key, value string) *Element {
	if v, ok := e.Attr(key); ok && v == value {
		return e
	}
	for _, c := range e.Children() {
		if found := c.(*Element).Find(key, value); found != nil {
			return found
		}
	}
	return nil
}
