package runtime

import "time"

// Observer receives component lifecycle notifications. Implementations
// live outside the core (telemetry package); the runtime treats them as
// fire-and-forget and they must not call back into it.
type Observer interface {
	// ComponentMounted fires after a successful first mount.
	ComponentMounted(component string)

	// ComponentDestroyed fires once per destroyed instance.
	ComponentDestroyed(component string)

	// RenderStarted fires when a scheduled render begins.
	RenderStarted(component string)

	// RenderCommitted fires after the DOM was updated.
	RenderCommitted(component string, took time.Duration)

	// RenderSkipped fires when a fresh render equaled the mounted tree.
	RenderSkipped(component string)

	// RenderFailed fires when a render panicked and was aborted.
	RenderFailed(component string)

	// UpdateDropped fires when the storm ceiling dropped an update.
	UpdateDropped(component string)

	// BindingSkipped fires when an event binding named a missing handler.
	BindingSkipped(component, handler string)
}

type nopObserver struct{}

func (nopObserver) ComponentMounted(string)                 {}
func (nopObserver) ComponentDestroyed(string)               {}
func (nopObserver) RenderStarted(string)                    {}
func (nopObserver) RenderCommitted(string, time.Duration)   {}
func (nopObserver) RenderSkipped(string)                    {}
func (nopObserver) RenderFailed(string)                     {}
func (nopObserver) UpdateDropped(string)                    {}
func (nopObserver) BindingSkipped(string, string)           {}

// MultiObserver fans notifications out to several observers.
func MultiObserver(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

func (m multiObserver) ComponentMounted(c string) {
	for _, o := range m {
		o.ComponentMounted(c)
	}
}

func (m multiObserver) ComponentDestroyed(c string) {
	for _, o := range m {
		o.ComponentDestroyed(c)
	}
}

func (m multiObserver) RenderStarted(c string) {
	for _, o := range m {
		o.RenderStarted(c)
	}
}

func (m multiObserver) RenderCommitted(c string, took time.Duration) {
	for _, o := range m {
		o.RenderCommitted(c, took)
	}
}

func (m multiObserver) RenderSkipped(c string) {
	for _, o := range m {
		o.RenderSkipped(c)
	}
}

func (m multiObserver) RenderFailed(c string) {
	for _, o := range m {
		o.RenderFailed(c)
	}
}

func (m multiObserver) UpdateDropped(c string) {
	for _, o := range m {
		o.UpdateDropped(c)
	}
}

func (m multiObserver) BindingSkipped(c, handler string) {
	for _, o := range m {
		o.BindingSkipped(c, handler)
	}
}
