package widgets

import (
	"testing"
	"time"

	"github.com/glint-ui/glint/pkg/host"
	"github.com/glint-ui/glint/pkg/host/memdom"
	"github.com/glint-ui/glint/pkg/runtime"
)

func mountCounter(t *testing.T) (*Counter, *runtime.Instance, *memdom.Clock, *memdom.Document) {
	t.Helper()
	clock := memdom.NewClock()
	ctx := runtime.NewContext(runtime.WithClock(clock))
	doc := memdom.NewDocument()

	c := NewCounter()
	inst := runtime.New(ctx, c)
	if err := inst.Mount(doc, doc.Body()); err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	return c, inst, clock, doc
}

func TestCounterClicks(t *testing.T) {
	c, inst, clock, doc := mountCounter(t)

	buttons := findTag(doc.Body(), "button")
	if len(buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(buttons))
	}

	settle := func() { clock.Advance(200 * time.Millisecond) }

	buttons[1].Dispatch(host.Event{Type: "click"}) // +
	settle()
	if c.Count() != 1 {
		t.Errorf("expected 1, got %d", c.Count())
	}

	buttons = findTag(doc.Body(), "button")
	buttons[0].Dispatch(host.Event{Type: "click"}) // -
	settle()
	if c.Count() != 0 {
		t.Errorf("expected 0, got %d", c.Count())
	}

	buttons = findTag(doc.Body(), "button")
	buttons[1].Dispatch(host.Event{Type: "click"})
	settle()
	buttons = findTag(doc.Body(), "button")
	buttons[2].Dispatch(host.Event{Type: "click"}) // reset
	settle()
	if c.Count() != 0 {
		t.Errorf("expected 0 after reset, got %d", c.Count())
	}

	if display := inst.Ref("display"); display == nil || display.Text() != "Count: 0" {
		t.Error("display ref should show the current count")
	}
}

func TestTickerLifecycle(t *testing.T) {
	ctx := runtime.NewContext()
	doc := memdom.NewDocument()

	tick := NewTicker(5 * time.Millisecond)
	inst := runtime.New(ctx, tick)
	if err := inst.Mount(doc, doc.Body()); err != nil {
		t.Fatalf("mount failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if n, _ := inst.State().Get("ticks").(int); n > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if n, _ := inst.State().Get("ticks").(int); n == 0 {
		t.Fatal("ticker never ticked")
	}

	inst.Destroy()
	time.Sleep(20 * time.Millisecond)

	// The tick goroutine must stop mutating after destroy.
	n1, _ := inst.State().Get("ticks").(int)
	time.Sleep(50 * time.Millisecond)
	n2, _ := inst.State().Get("ticks").(int)
	if n1 != n2 {
		t.Errorf("ticker kept running after destroy: %d -> %d", n1, n2)
	}
}

// findTag collects elements with the given tag, in document order.
func findTag(root host.Element, tag string) []*memdom.Element {
	var out []*memdom.Element
	el := root.(*memdom.Element)
	if el.Tag() == tag {
		out = append(out, el)
	}
	for _, c := range el.Children() {
		out = append(out, findTag(c, tag)...)
	}
	return out
}
