package runtime

import (
	"fmt"
	"sync"

	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/reactive"
	"github.com/glint-ui/glint/pkg/vdom"
)

// Phase is an instance's lifecycle state.
type Phase int32

const (
	PhaseUnmounted Phase = iota
	PhaseMounted
	PhaseDebouncing
	PhaseRendering
	PhaseDestroyed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUnmounted:
		return "Unmounted"
	case PhaseMounted:
		return "Mounted"
	case PhaseDebouncing:
		return "Debouncing"
	case PhaseRendering:
		return "Rendering"
	case PhaseDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Instance is a mounted component with its state, refs, children, and
// scheduling bookkeeping.
type Instance struct {
	id   string
	ctx  *Context
	comp Component

	mu    sync.Mutex
	phase Phase

	props Props
	state *reactive.Node

	doc       host.Document
	container host.Element
	root      host.Element
	lastTree  *vdom.VNode

	refs     map[string]host.Element
	handlers map[string]Handler

	parent   *Instance
	children []*Instance

	unsubState func()

	// Scheduling bookkeeping; see scheduler.go.
	debounce host.Timer
	cooldown host.Timer
	recovery host.Timer

	interacting       bool
	deferred          bool
	rendering         bool
	armedDuringRender bool
	stormCount        int
	holds             map[string]bool
	removeInteraction []func()

	renderCount uint64
}

// InstanceOption configures a new Instance.
type InstanceOption func(*Instance)

// WithProps sets the initial props snapshot.
func WithProps(p Props) InstanceOption {
	return func(i *Instance) {
		i.props = freezeProps(p)
	}
}

// WithState seeds the reactive state node. Stateful components'
// InitialState is merged in on top.
func WithState(state map[string]any) InstanceOption {
	return func(i *Instance) {
		for k, v := range state {
			i.state.Set(k, v)
		}
	}
}

// New creates an unmounted Instance for comp within ctx. The instance
// subscribes to its own state node immediately: any mutation from here
// on arms the scheduler (a no-op until mounted).
func New(ctx *Context, comp Component, opts ...InstanceOption) *Instance {
	i := &Instance{
		id:       fmt.Sprintf("c%d", ctx.nextID()),
		ctx:      ctx,
		comp:     comp,
		props:    Props{},
		refs:     make(map[string]host.Element),
		handlers: make(map[string]Handler),
		holds:    make(map[string]bool),
	}
	i.state = reactive.Wrap(initialState(comp), reactive.WithLogger(ctx.logger))

	for _, opt := range opts {
		opt(i)
	}

	if ht, ok := comp.(HandlerTable); ok {
		for name, h := range ht.Handlers() {
			i.handlers[name] = h
		}
	}
	if b, ok := comp.(InstanceBinder); ok {
		b.Bind(i)
	}

	// One change handler per instance; every property mutation funnels
	// through the scheduler.
	i.unsubState = i.state.Subscribe(func(string, any, any) {
		i.schedule()
	})

	ctx.registry.add(i)
	return i
}

func initialState(comp Component) map[string]any {
	if s, ok := comp.(Stateful); ok {
		if init := s.InitialState(); init != nil {
			return init
		}
	}
	return map[string]any{}
}

// NewChild creates an instance owned by i. Children are destroyed
// transitively with their parent.
func (i *Instance) NewChild(comp Component, opts ...InstanceOption) *Instance {
	child := New(i.ctx, comp, opts...)
	child.parent = i
	i.mu.Lock()
	i.children = append(i.children, child)
	i.mu.Unlock()
	return child
}

// ID returns the instance's registry ID.
func (i *Instance) ID() string { return i.id }

// Phase returns the current lifecycle phase.
func (i *Instance) Phase() Phase {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.phase
}

// State returns the instance's reactive state node.
func (i *Instance) State() *reactive.Node { return i.state }

// Prop returns one prop from the frozen snapshot.
func (i *Instance) Prop(key string) any {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.props[key]
}

// Props returns a copy of the frozen props snapshot.
func (i *Instance) Props() Props {
	i.mu.Lock()
	defer i.mu.Unlock()
	return freezeProps(i.props)
}

// SetProps merges p into a new frozen snapshot and funnels through the
// same scheduling path as a state change.
func (i *Instance) SetProps(p Props) {
	i.mu.Lock()
	next := freezeProps(i.props)
	for k, v := range p {
		next[k] = v
	}
	i.props = next
	i.mu.Unlock()

	i.schedule()
}

// Ref returns the element committed for the named ref marker, or nil.
func (i *Instance) Ref(name string) host.Element {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.refs[name]
}

// Root returns the committed root element, nil before mount.
func (i *Instance) Root() host.Element {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.root
}

// Children returns the current child instances.
func (i *Instance) Children() []*Instance {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]*Instance(nil), i.children...)
}

// Tree returns the last committed render tree, nil before mount.
func (i *Instance) Tree() *vdom.VNode {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.lastTree
}

// RenderCount returns the number of committed renders.
func (i *Instance) RenderCount() uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.renderCount
}

// SetHandler registers (or replaces) a named handler after construction.
func (i *Instance) SetHandler(name string, h Handler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handlers[name] = h
}

// Mount renders the component and attaches it under container within
// doc. A nil container aborts the mount: the error is logged, the
// instance stays unmounted, and the caller detects the failure through
// the returned error.
func (i *Instance) Mount(doc host.Document, container host.Element) error {
	i.mu.Lock()
	switch i.phase {
	case PhaseDestroyed:
		i.mu.Unlock()
		return ErrDestroyed
	case PhaseUnmounted:
	default:
		i.mu.Unlock()
		return ErrAlreadyMounted
	}
	if container == nil {
		i.mu.Unlock()
		i.ctx.logger.Error("mount aborted",
			"scope", "runtime",
			"component", i.id,
			"error", ErrNilContainer)
		return ErrNilContainer
	}
	i.doc = doc
	i.container = container
	i.mu.Unlock()

	tree, err := i.renderTree()
	if err != nil {
		i.ctx.logger.Error("mount render failed",
			"scope", "runtime",
			"component", i.id,
			"error", err)
		return err
	}

	i.commit(tree)

	i.mu.Lock()
	i.phase = PhaseMounted
	i.renderCount++
	i.mu.Unlock()

	i.ctx.observer.ComponentMounted(i.id)
	if h, ok := i.comp.(MountHook); ok {
		h.Mounted()
	}
	return nil
}

// Destroy tears the instance down exactly once: timers are canceled
// first so they cannot fire afterwards, the state subscription is
// released, children are destroyed transitively, the root element is
// detached, and the registry entry removed. Late scheduling calls on a
// destroyed instance are safe no-ops.
func (i *Instance) Destroy() {
	i.mu.Lock()
	if i.phase == PhaseDestroyed {
		i.mu.Unlock()
		return
	}
	i.phase = PhaseDestroyed

	// Timers first: Stop, not flags.
	for _, t := range []host.Timer{i.debounce, i.cooldown, i.recovery} {
		if t != nil {
			t.Stop()
		}
	}
	i.debounce, i.cooldown, i.recovery = nil, nil, nil

	unsub := i.unsubState
	i.unsubState = nil
	children := i.children
	i.children = nil
	removers := i.removeInteraction
	i.removeInteraction = nil
	root := i.root
	i.root = nil
	i.refs = map[string]host.Element{}
	i.lastTree = nil
	i.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	for _, remove := range removers {
		remove()
	}

	// Reverse order, mirroring creation.
	for idx := len(children) - 1; idx >= 0; idx-- {
		children[idx].Destroy()
	}

	if root != nil {
		if parent := root.Parent(); parent != nil {
			parent.RemoveChild(root)
		}
	}

	if i.parent != nil {
		i.parent.removeChild(i)
	}

	i.ctx.registry.remove(i)
	i.ctx.observer.ComponentDestroyed(i.id)
	if h, ok := i.comp.(DestroyHook); ok {
		h.Destroyed()
	}
}

func (i *Instance) removeChild(child *Instance) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for idx, c := range i.children {
		if c == child {
			i.children = append(i.children[:idx], i.children[idx+1:]...)
			return
		}
	}
}

func freezeProps(p Props) Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
