package runtime

import (
	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/vdom"
)

// Interaction events observed on the mounted subtree, capture phase.
// Hold events keep the interacting flag up until their end event fires;
// pulse events (no natural end) just restart the cooldown.
var interactionHolds = map[string]string{
	"pointerdown": "pointer",
	"keydown":     "key",
	"focusin":     "focus",
}

var interactionEnds = map[string]string{
	"pointerup": "pointer",
	"keyup":     "key",
	"focusout":  "focus",
}

var interactionPulses = []string{"input", "change"}

// schedule arms (or re-arms) the debounced render. It is the single
// funnel for state changes and SetProps. On an unmounted or destroyed
// instance it is a safe no-op.
func (i *Instance) schedule() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.scheduleLocked()
}

func (i *Instance) scheduleLocked() {
	switch i.phase {
	case PhaseUnmounted, PhaseDestroyed:
		return
	}

	// Deferred, not dropped: re-armed when the cooldown elapses.
	if i.interacting {
		i.deferred = true
		return
	}

	// A mutation arriving while a render is in flight means a listener
	// mutated state from inside the render cycle. Count those; past the
	// ceiling, drop the update and schedule one trailing render so the
	// final state still lands.
	if i.rendering {
		i.armedDuringRender = true
		i.stormCount++
		if i.stormCount > i.ctx.stormLimit {
			i.ctx.logger.Warn("update dropped, storm ceiling exceeded",
				"scope", "runtime",
				"component", i.id,
				"ceiling", i.ctx.stormLimit)
			i.ctx.observer.UpdateDropped(i.id)
			i.armRecoveryLocked()
			return
		}
	}

	// Restart, never stack: at most one pending render per component.
	if i.debounce != nil {
		i.debounce.Stop()
	}
	if i.phase == PhaseMounted {
		i.phase = PhaseDebouncing
	}
	i.debounce = i.ctx.clock.AfterFunc(i.ctx.debounce, i.flush)
}

// armRecoveryLocked schedules the trailing render after a drop.
func (i *Instance) armRecoveryLocked() {
	if i.recovery != nil {
		return
	}
	i.recovery = i.ctx.clock.AfterFunc(i.ctx.recovery, func() {
		i.mu.Lock()
		i.recovery = nil
		i.stormCount = 0
		i.scheduleLocked()
		i.mu.Unlock()
	})
}

// flush runs when the debounce window closes. The render happens
// strictly here, never synchronously inside the mutating call.
func (i *Instance) flush() {
	i.mu.Lock()
	switch i.phase {
	case PhaseUnmounted, PhaseDestroyed:
		i.mu.Unlock()
		return
	}
	if i.interacting {
		i.deferred = true
		i.phase = PhaseMounted
		i.mu.Unlock()
		return
	}
	i.phase = PhaseRendering
	i.rendering = true
	i.armedDuringRender = false
	i.debounce = nil
	i.mu.Unlock()

	i.ctx.observer.RenderStarted(i.id)
	start := i.ctx.clock.Now()

	tree, err := i.renderTree()
	if err != nil {
		// The previous DOM stays untouched; only this update aborts.
		i.ctx.logger.Error("render failed",
			"scope", "runtime",
			"component", i.id,
			"error", err)
		i.ctx.observer.RenderFailed(i.id)
		i.finishRender()
		return
	}

	i.mu.Lock()
	last := i.lastTree
	i.mu.Unlock()

	if vdom.Equal(last, tree) {
		if i.ctx.debug {
			i.ctx.logger.Debug("render skipped, tree unchanged",
				"scope", "runtime",
				"component", i.id)
		}
		i.ctx.observer.RenderSkipped(i.id)
		i.finishRender()
		return
	}

	i.commit(tree)

	i.mu.Lock()
	i.renderCount++
	i.mu.Unlock()

	i.ctx.observer.RenderCommitted(i.id, i.ctx.clock.Now().Sub(start))
	i.finishRender()

	if h, ok := i.comp.(UpdateHook); ok {
		h.Updated()
	}
}

func (i *Instance) finishRender() {
	i.mu.Lock()
	i.rendering = false
	if i.phase == PhaseRendering {
		i.phase = PhaseMounted
	}
	if !i.armedDuringRender {
		i.stormCount = 0
	}
	i.mu.Unlock()
}

// bindInteraction attaches the capture-phase interaction listeners to
// the committed root. Called on every commit since the root changes.
func (i *Instance) bindInteraction(root host.Element) {
	var removers []func()

	for event, hold := range interactionHolds {
		hold := hold
		removers = append(removers, root.AddEventListener(event, true, func(host.Event) {
			i.interactionStart(hold)
		}))
	}
	for event, hold := range interactionEnds {
		hold := hold
		removers = append(removers, root.AddEventListener(event, true, func(host.Event) {
			i.interactionEnd(hold)
		}))
	}
	for _, event := range interactionPulses {
		removers = append(removers, root.AddEventListener(event, true, func(host.Event) {
			i.interactionPulse()
		}))
	}

	i.mu.Lock()
	old := i.removeInteraction
	i.removeInteraction = removers
	i.mu.Unlock()

	for _, remove := range old {
		remove()
	}
}

func (i *Instance) interactionStart(hold string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.phase == PhaseDestroyed {
		return
	}
	i.interacting = true
	i.holds[hold] = true
	// The gesture is live; no cooldown until its end event.
	if i.cooldown != nil {
		i.cooldown.Stop()
		i.cooldown = nil
	}
}

func (i *Instance) interactionEnd(hold string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.phase == PhaseDestroyed {
		return
	}
	delete(i.holds, hold)
	if len(i.holds) == 0 {
		i.restartCooldownLocked()
	}
}

func (i *Instance) interactionPulse() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.phase == PhaseDestroyed {
		return
	}
	i.interacting = true
	if len(i.holds) == 0 {
		i.restartCooldownLocked()
	}
}

func (i *Instance) restartCooldownLocked() {
	if i.cooldown != nil {
		i.cooldown.Stop()
	}
	i.cooldown = i.ctx.clock.AfterFunc(i.ctx.cooldown, func() {
		i.mu.Lock()
		i.cooldown = nil
		if i.phase == PhaseDestroyed {
			i.mu.Unlock()
			return
		}
		i.interacting = false
		rearm := i.deferred
		i.deferred = false
		if rearm {
			i.scheduleLocked()
		}
		i.mu.Unlock()
	})
}
