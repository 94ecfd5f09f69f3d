package runtime

import (
	"sync"
	"time"

	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/host/memdom"
	"github.com/glint-ui/glint/pkg/vdom"
)

// fixture bundles the deterministic pieces every runtime test needs.
type fixture struct {
	ctx       *Context
	clock     *memdom.Clock
	doc       *memdom.Document
	container *memdom.Element
	obs       *recordingObserver
}

func newFixture(opts ...ContextOption) *fixture {
	clock := memdom.NewClock()
	obs := &recordingObserver{}
	doc := memdom.NewDocument()

	base := []ContextOption{
		WithClock(clock),
		WithObserver(obs),
	}
	ctx := NewContext(append(base, opts...)...)

	return &fixture{
		ctx:       ctx,
		clock:     clock,
		doc:       doc,
		container: doc.Body(),
		obs:       obs,
	}
}

// settle advances past one debounce window.
func (f *fixture) settle() {
	f.clock.Advance(f.ctx.debounce + time.Millisecond)
}

// recordingObserver counts every lifecycle notification.
type recordingObserver struct {
	mu sync.Mutex

	mounted   int
	destroyed int
	started   int
	committed int
	skipped   int
	failed    int
	dropped   int
	bindings  []string
}

func (o *recordingObserver) ComponentMounted(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mounted++
}

func (o *recordingObserver) ComponentDestroyed(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.destroyed++
}

func (o *recordingObserver) RenderStarted(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *recordingObserver) RenderCommitted(string, time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.committed++
}

func (o *recordingObserver) RenderSkipped(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped++
}

func (o *recordingObserver) RenderFailed(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed++
}

func (o *recordingObserver) UpdateDropped(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dropped++
}

func (o *recordingObserver) BindingSkipped(_, handler string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.bindings = append(o.bindings, handler)
}

func (o *recordingObserver) counts() (mounted, destroyed, committed, skipped, failed, dropped int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mounted, o.destroyed, o.committed, o.skipped, o.failed, o.dropped
}

// labelComponent renders its state's "label" key into a span.
type labelComponent struct {
	inst *Instance
}

func (c *labelComponent) InitialState() map[string]any {
	return map[string]any{"label": "start"}
}

func (c *labelComponent) Bind(inst *Instance) { c.inst = inst }

func (c *labelComponent) Render() *vdom.VNode {
	label, _ := c.inst.State().Get("label").(string)
	return vdom.Div(vdom.Span(vdom.Text(label)))
}

// clickComponent counts clicks through a declarative binding and exposes
// the count via a ref'd paragraph.
type clickComponent struct {
	inst *Instance
}

func (c *clickComponent) InitialState() map[string]any {
	return map[string]any{"count": 0}
}

func (c *clickComponent) Bind(inst *Instance) { c.inst = inst }

func (c *clickComponent) Handlers() map[string]Handler {
	return map[string]Handler{
		"increment": func(host.Event) {
			count, _ := c.inst.State().Get("count").(int)
			c.inst.State().Set("count", count+1)
		},
	}
}

func (c *clickComponent) Render() *vdom.VNode {
	count, _ := c.inst.State().Get("count").(int)
	return vdom.Div(
		vdom.P(vdom.Ref("display"), vdom.Textf("%d", count)),
		vdom.Button(vdom.On("click", "increment"), "+"),
	)
}

// findButton returns the first button in the committed subtree.
func findButton(root host.Element) *memdom.Element {
	el := root.(*memdom.Element)
	if el.Tag() == "button" {
		return el
	}
	for _, c := range el.Children() {
		if found := findButton(c); found != nil {
			return found
		}
	}
	return nil
}
