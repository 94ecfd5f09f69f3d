package widgets

import (
	"time"

	"github.com/glint-ui/glint/pkg/runtime"
	"github.com/glint-ui/glint/pkg/vdom"
)

// Ticker updates its state on a wall-clock interval, exercising renders
// that originate outside any user event.
type Ticker struct {
	inst     *runtime.Instance
	interval time.Duration
	stop     chan struct{}
}

var (
	_ runtime.Component      = (*Ticker)(nil)
	_ runtime.Stateful       = (*Ticker)(nil)
	_ runtime.InstanceBinder = (*Ticker)(nil)
	_ runtime.MountHook      = (*Ticker)(nil)
	_ runtime.DestroyHook    = (*Ticker)(nil)
)

// NewTicker returns a ticker that fires every interval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval, stop: make(chan struct{})}
}

// InitialState implements runtime.Stateful.
func (t *Ticker) InitialState() map[string]any {
	return map[string]any{"ticks": 0}
}

// Bind implements runtime.InstanceBinder.
func (t *Ticker) Bind(inst *runtime.Instance) { t.inst = inst }

// Mounted implements runtime.MountHook.
func (t *Ticker) Mounted() {
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				ticks, _ := t.inst.State().Get("ticks").(int)
				t.inst.State().Set("ticks", ticks+1)
			}
		}
	}()
}

// Destroyed implements runtime.DestroyHook.
func (t *Ticker) Destroyed() { close(t.stop) }

// Render implements runtime.Component.
func (t *Ticker) Render() *vdom.VNode {
	ticks, _ := t.inst.State().Get("ticks").(int)
	return vdom.Div(
		vdom.Class("ticker"),
		vdom.Span(vdom.Textf("ticks: %d", ticks)),
	)
}
