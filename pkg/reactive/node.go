package reactive

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

// ListenerFunc is notified after a key's value changed.
// Deletes are delivered with newValue == nil.
type ListenerFunc func(key string, newValue, oldValue any)

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the logger used to report panicking listeners.
// Nested nodes created by lazy wrapping inherit it.
func WithLogger(l *slog.Logger) Option {
	return func(n *Node) {
		if l != nil {
			n.logger = l
		}
	}
}

// Node is an observable wrapper over one plain map.
type Node struct {
	mu sync.Mutex

	// values holds the wrapped map. Nested plain maps are replaced by
	// their *Node wrapper on first read.
	values map[string]any

	subs      []subscription
	nextSubID uint64

	logger *slog.Logger
}

type subscription struct {
	id uint64
	fn ListenerFunc
}

// Wrap returns an observable Node over m. The map is wrapped by
// reference: writes through the Node are visible to holders of m.
// Passing nil starts from an empty map.
//
// Each plain map must be wrapped once; nested maps reached through Get
// are wrapped lazily and cached, which keeps one wrapper per underlying
// reference for the whole graph.
func Wrap(m map[string]any, opts ...Option) *Node {
	if m == nil {
		m = make(map[string]any)
	}
	n := &Node{
		values: m,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Get returns the current value for key. A plain nested map is wrapped
// lazily and the wrapper stored back in place, so future reads return
// the same *Node identity.
func (n *Node) Get(key string) any {
	n.mu.Lock()
	defer n.mu.Unlock()

	v, ok := n.values[key]
	if !ok {
		return nil
	}
	if child, ok := v.(map[string]any); ok {
		wrapped := Wrap(child, WithLogger(n.logger))
		n.values[key] = wrapped
		return wrapped
	}
	return v
}

// Set stores value under key and notifies listeners if it changed.
// Change detection is strict identity: scalars compare by ==, wrapped
// nodes by pointer, and non-comparable values always count as changed.
// An unchanged write is a no-op and notifies nobody.
func (n *Node) Set(key string, value any) {
	n.mu.Lock()
	old, existed := n.values[key]
	if existed && sameValue(old, value) {
		n.mu.Unlock()
		return
	}
	// Store first, then notify.
	n.values[key] = value
	subs := n.copySubs()
	n.mu.Unlock()

	n.notify(subs, key, value, old)
}

// Delete removes key and notifies listeners with newValue == nil.
// Deleting a missing key fires nothing.
func (n *Node) Delete(key string) {
	n.mu.Lock()
	old, existed := n.values[key]
	if !existed {
		n.mu.Unlock()
		return
	}
	delete(n.values, key)
	subs := n.copySubs()
	n.mu.Unlock()

	n.notify(subs, key, nil, old)
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.values[key]
	return ok
}

// Keys returns the present keys in sorted order.
func (n *Node) Keys() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	keys := make([]string, 0, len(n.values))
	for k := range n.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys.
func (n *Node) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.values)
}

// Subscribe registers fn for change notifications. Listeners fire in
// subscription order. The returned func removes the listener; calling
// it more than once is safe.
func (n *Node) Subscribe(fn ListenerFunc) (unsubscribe func()) {
	n.mu.Lock()
	n.nextSubID++
	id := n.nextSubID
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount returns the number of live listeners.
func (n *Node) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Snapshot returns a deep plain-map copy of the current state, with
// nested nodes unwrapped.
func (n *Node) Snapshot() map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make(map[string]any, len(n.values))
	for k, v := range n.values {
		switch val := v.(type) {
		case *Node:
			out[k] = val.Snapshot()
		case map[string]any:
			out[k] = Wrap(val, WithLogger(n.logger)).Snapshot()
		default:
			out[k] = v
		}
	}
	return out
}

// Replace overwrites the node's state with the keys of m, key by key,
// funneling each assignment through Set so listeners observe the changes.
func (n *Node) Replace(m map[string]any) {
	for k, v := range m {
		n.Set(k, v)
	}
}

func (n *Node) copySubs() []subscription {
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	return subs
}

// notify invokes each listener, isolating panics so one bad listener
// cannot starve its siblings or fail the mutation.
func (n *Node) notify(subs []subscription, key string, newValue, oldValue any) {
	for _, s := range subs {
		n.safeInvoke(s.fn, key, newValue, oldValue)
	}
}

func (n *Node) safeInvoke(fn ListenerFunc, key string, newValue, oldValue any) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("listener panicked",
				"scope", "reactive",
				"key", key,
				"panic", r)
		}
	}()
	fn(key, newValue, oldValue)
}

// sameValue implements the strict-identity change gate. Values of
// different types are always different; non-comparable values (plain
// maps, slices) always count as changed, matching reference identity
// semantics without panicking on ==.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, ok := a.(*Node); ok {
		bn, ok := b.(*Node)
		return ok && an == bn
	}
	ta := reflect.TypeOf(a)
	tb := reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
