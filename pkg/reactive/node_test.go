package reactive

import (
	"log/slog"
	"reflect"
	"testing"
)

type recordedChange struct {
	key      string
	newValue any
	oldValue any
}

// changeRecorder collects notifications for assertions.
type changeRecorder struct {
	changes []recordedChange
}

func (r *changeRecorder) listener(key string, newValue, oldValue any) {
	r.changes = append(r.changes, recordedChange{key, newValue, oldValue})
}

func TestNodeBasic(t *testing.T) {
	n := Wrap(map[string]any{"count": 1})

	if got := n.Get("count"); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	if n.Get("missing") != nil {
		t.Error("missing key should read as nil")
	}

	n.Set("count", 2)
	if got := n.Get("count"); got != 2 {
		t.Errorf("expected 2 after Set, got %v", got)
	}

	if !n.Has("count") || n.Has("missing") {
		t.Error("Has mismatch")
	}
	if n.Len() != 1 {
		t.Errorf("expected 1 key, got %d", n.Len())
	}
}

func TestWrapNilStartsEmpty(t *testing.T) {
	n := Wrap(nil)
	if n.Len() != 0 {
		t.Errorf("expected empty node, got %d keys", n.Len())
	}
	n.Set("a", 1)
	if got := n.Get("a"); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestWrapSharesUnderlyingMap(t *testing.T) {
	m := map[string]any{"a": 1}
	n := Wrap(m)

	n.Set("b", 2)
	if m["b"] != 2 {
		t.Error("write through Node should be visible in the wrapped map")
	}
}

func TestSetNotifiesOnce(t *testing.T) {
	n := Wrap(map[string]any{"count": 0})
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)

	n.Set("count", 5)

	if len(rec.changes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.changes))
	}
	c := rec.changes[0]
	if c.key != "count" || c.newValue != 5 || c.oldValue != 0 {
		t.Errorf("unexpected change %+v", c)
	}
}

func TestSetEqualValueIsNoOp(t *testing.T) {
	n := Wrap(map[string]any{"count": 5, "name": "a"})
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)

	n.Set("count", 5)
	n.Set("name", "a")

	if len(rec.changes) != 0 {
		t.Errorf("equal writes should notify nobody, got %d", len(rec.changes))
	}
}

func TestSetDifferentTypeNotifies(t *testing.T) {
	n := Wrap(map[string]any{"v": 1})
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)

	// Same literal, different dynamic type.
	n.Set("v", int64(1))

	if len(rec.changes) != 1 {
		t.Errorf("type change should notify, got %d", len(rec.changes))
	}
}

func TestSetNonComparableAlwaysNotifies(t *testing.T) {
	n := Wrap(nil)
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)

	items := []string{"a"}
	n.Set("items", items)
	n.Set("items", items)

	if len(rec.changes) != 2 {
		t.Errorf("slice writes always count as changed, got %d notifications", len(rec.changes))
	}
}

func TestNestedMapWrappedLazily(t *testing.T) {
	n := Wrap(map[string]any{
		"user": map[string]any{"name": "ada"},
	})

	child, ok := n.Get("user").(*Node)
	if !ok {
		t.Fatal("nested map should read back as *Node")
	}
	if child.Get("name") != "ada" {
		t.Error("nested value lost in wrapping")
	}

	// Same identity on every read.
	if again := n.Get("user"); again != child {
		t.Error("repeated Get should return the same wrapper")
	}

	// Writing the same wrapper back is a no-op.
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)
	n.Set("user", child)
	if len(rec.changes) != 0 {
		t.Errorf("rewriting the same *Node should notify nobody, got %d", len(rec.changes))
	}
}

func TestNestedChangeDoesNotNotifyParent(t *testing.T) {
	n := Wrap(map[string]any{
		"user": map[string]any{"name": "ada"},
	})
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)

	child := n.Get("user").(*Node)
	childRec := &changeRecorder{}
	child.Subscribe(childRec.listener)

	child.Set("name", "grace")

	if len(rec.changes) != 0 {
		t.Errorf("parent should not hear nested changes, got %d", len(rec.changes))
	}
	if len(childRec.changes) != 1 {
		t.Errorf("child listener should fire once, got %d", len(childRec.changes))
	}
}

func TestDelete(t *testing.T) {
	n := Wrap(map[string]any{"a": 1})
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)

	n.Delete("a")
	if n.Has("a") {
		t.Error("key should be gone")
	}
	if len(rec.changes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.changes))
	}
	if c := rec.changes[0]; c.newValue != nil || c.oldValue != 1 {
		t.Errorf("delete should deliver newValue nil, got %+v", c)
	}

	// Deleting a missing key fires nothing.
	n.Delete("a")
	if len(rec.changes) != 1 {
		t.Errorf("missing-key delete should notify nobody, got %d", len(rec.changes))
	}
}

func TestUnsubscribe(t *testing.T) {
	n := Wrap(nil)
	rec := &changeRecorder{}
	unsub := n.Subscribe(rec.listener)

	n.Set("a", 1)
	unsub()
	n.Set("a", 2)
	unsub() // safe to call twice

	if len(rec.changes) != 1 {
		t.Errorf("expected 1 notification before unsubscribe, got %d", len(rec.changes))
	}
	if n.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", n.SubscriberCount())
	}
}

func TestListenerOrder(t *testing.T) {
	n := Wrap(nil)
	var order []int
	n.Subscribe(func(string, any, any) { order = append(order, 1) })
	n.Subscribe(func(string, any, any) { order = append(order, 2) })
	n.Subscribe(func(string, any, any) { order = append(order, 3) })

	n.Set("a", 1)

	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("listeners should fire in subscription order, got %v", order)
	}
}

func TestListenerPanicIsolated(t *testing.T) {
	n := Wrap(nil, WithLogger(slog.Default()))
	var survived bool
	n.Subscribe(func(string, any, any) { panic("boom") })
	n.Subscribe(func(string, any, any) { survived = true })

	n.Set("a", 1)

	if !survived {
		t.Error("a panicking listener must not starve its siblings")
	}
	// The mutation itself must survive too.
	if n.Get("a") != 1 {
		t.Error("mutation lost to listener panic")
	}
}

func TestListenerSeesStoredValue(t *testing.T) {
	n := Wrap(nil)
	var read any
	n.Subscribe(func(key string, _, _ any) { read = n.Get(key) })

	n.Set("a", 7)

	if read != 7 {
		t.Errorf("store must happen before notify, listener read %v", read)
	}
}

func TestSnapshotUnwrapsNested(t *testing.T) {
	n := Wrap(map[string]any{
		"user": map[string]any{"name": "ada"},
		"n":    1,
	})
	// Force the nested wrapper into place.
	n.Get("user").(*Node).Set("name", "grace")

	snap := n.Snapshot()
	want := map[string]any{
		"user": map[string]any{"name": "grace"},
		"n":    1,
	}
	if !reflect.DeepEqual(snap, want) {
		t.Errorf("snapshot mismatch: got %v, want %v", snap, want)
	}
	if _, ok := snap["user"].(*Node); ok {
		t.Error("snapshot must unwrap nested nodes")
	}
}

func TestReplaceNotifiesPerKey(t *testing.T) {
	n := Wrap(map[string]any{"a": 1, "b": 2})
	rec := &changeRecorder{}
	n.Subscribe(rec.listener)

	n.Replace(map[string]any{"a": 1, "b": 3, "c": 4})

	// "a" unchanged, "b" and "c" changed.
	if len(rec.changes) != 2 {
		t.Errorf("expected 2 notifications, got %d", len(rec.changes))
	}
}

func TestKeysSorted(t *testing.T) {
	n := Wrap(map[string]any{"b": 1, "a": 2, "c": 3})
	if got := n.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("expected sorted keys, got %v", got)
	}
}
