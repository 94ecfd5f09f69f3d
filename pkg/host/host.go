package host

import "time"

// Document creates elements and text nodes for a host tree.
type Document interface {
	// CreateElement creates a detached element with the given tag.
	CreateElement(tag string) Element

	// CreateText creates a detached text node.
	CreateText(text string) Element
}

// Element is a single node in the host tree. Text nodes report an empty
// tag and carry their content in Text.
type Element interface {
	// Tag returns the element's tag name, or "" for text nodes.
	Tag() string

	// SetAttr sets an attribute value.
	SetAttr(key, value string)

	// Attr returns an attribute value and whether it is present.
	Attr(key string) (string, bool)

	// RemoveAttr removes an attribute. Removing a missing attribute is a no-op.
	RemoveAttr(key string)

	// Attrs returns a copy of all attributes.
	Attrs() map[string]string

	// AppendChild appends a child, detaching it from any previous parent.
	AppendChild(child Element)

	// RemoveChild removes a direct child. Unknown children are ignored.
	RemoveChild(child Element)

	// ReplaceChild swaps oldChild for newChild in a single operation,
	// preserving the child's position.
	ReplaceChild(newChild, oldChild Element)

	// Parent returns the parent element, or nil if detached.
	Parent() Element

	// Children returns the current children in order.
	Children() []Element

	// SetText sets the text content. For elements this replaces all
	// children with a single text node.
	SetText(text string)

	// Text returns the concatenated text content of the subtree.
	Text() string

	// AddEventListener registers a listener for the given event type.
	// Capture-phase listeners run before the target's own listeners as the
	// event propagates down the tree. The returned func removes the listener.
	AddEventListener(event string, capture bool, fn func(Event)) (remove func())

	// Dispatch delivers an event to this element: capture-phase listeners
	// from the root down, then target listeners, then bubbling back up.
	Dispatch(ev Event)

	// ScrollTop returns the vertical scroll offset.
	ScrollTop() int

	// SetScrollTop sets the vertical scroll offset.
	SetScrollTop(px int)
}

// Event is a host event delivered to listeners.
type Event struct {
	// Type is the event name, e.g. "click", "pointerdown", "input".
	Type string

	// Target is the element the event was dispatched on.
	Target Element

	// Value carries event payload data such as an input's current text.
	Value string
}

// Timer is a cancelable pending callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from firing.
	Stop() bool
}

// Clock is the timer primitive the scheduler debounces with.
type Clock interface {
	// AfterFunc schedules fn to run after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock backed by real wall-clock timers.
type SystemClock struct{}

// AfterFunc implements Clock using time.AfterFunc.
func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool { return s.t.Stop() }

// Contains reports whether ancestor contains el (or is el itself).
// It walks parent links, so it works for any Element implementation.
func Contains(ancestor, el Element) bool {
	for e := el; e != nil; e = e.Parent() {
		if e == ancestor {
			return true
		}
	}
	return false
}
