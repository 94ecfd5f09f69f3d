// Package widgets holds small demo components used by the preview
// server and the integration tests.
package widgets

import (
	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/runtime"
	"github.com/glint-ui/glint/pkg/vdom"
)

// Counter is a click counter with increment, decrement, and reset.
type Counter struct {
	inst *runtime.Instance
}

var (
	_ runtime.Component      = (*Counter)(nil)
	_ runtime.Stateful       = (*Counter)(nil)
	_ runtime.HandlerTable   = (*Counter)(nil)
	_ runtime.InstanceBinder = (*Counter)(nil)
)

// NewCounter returns a counter starting at zero.
func NewCounter() *Counter { return &Counter{} }

// InitialState implements runtime.Stateful.
func (c *Counter) InitialState() map[string]any {
	return map[string]any{"count": 0}
}

// Bind implements runtime.InstanceBinder.
func (c *Counter) Bind(inst *runtime.Instance) { c.inst = inst }

// Handlers implements runtime.HandlerTable.
func (c *Counter) Handlers() map[string]runtime.Handler {
	return map[string]runtime.Handler{
		"increment": func(host.Event) { c.add(1) },
		"decrement": func(host.Event) { c.add(-1) },
		"reset":     func(host.Event) { c.inst.State().Set("count", 0) },
	}
}

func (c *Counter) add(delta int) {
	count, _ := c.inst.State().Get("count").(int)
	c.inst.State().Set("count", count+delta)
}

// Count returns the current count.
func (c *Counter) Count() int {
	count, _ := c.inst.State().Get("count").(int)
	return count
}

// Render implements runtime.Component.
func (c *Counter) Render() *vdom.VNode {
	return vdom.Div(
		vdom.Class("counter"),
		vdom.H1("Counter"),
		vdom.P(
			vdom.Ref("display"),
			vdom.Textf("Count: %d", c.Count()),
		),
		vdom.Div(
			vdom.Class("controls"),
			vdom.Button(vdom.On("click", "decrement"), "-"),
			vdom.Button(vdom.On("click", "increment"), "+"),
			vdom.Button(vdom.On("click", "reset"), "Reset"),
		),
	)
}
