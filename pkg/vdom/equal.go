package vdom

// transientAttrs hold user-driven state that a re-render must not count
// as a semantic difference. Keeping a node whose only difference is a
// transient attribute preserves focus, selection, and in-progress input.
var transientAttrs = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"open":     true,
}

// Equal reports whether two trees are semantically identical: same
// kind, tag, class, non-transient attributes, bindings, ref name, child
// count, and (for leaves) text content, recursively. The runtime skips
// DOM replacement when the fresh render is Equal to the mounted tree.
func Equal(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}

	if a.Kind == KindText {
		return a.Text == b.Text
	}

	if a.Tag != b.Tag || a.RefName != b.RefName {
		return false
	}
	if !attrsEqual(a.Attrs, b.Attrs) {
		return false
	}
	if !bindingsEqual(a.Bindings, b.Bindings) {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	if a.IsLeaf() {
		return a.TextContent() == b.TextContent()
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func attrsEqual(a, b map[string]string) bool {
	if countStable(a) != countStable(b) {
		return false
	}
	for k, av := range a {
		if transientAttrs[k] {
			continue
		}
		bv, ok := b[k]
		if !ok || av != bv {
			return false
		}
	}
	return true
}

// countStable counts the non-transient attributes.
func countStable(attrs map[string]string) int {
	n := 0
	for k := range attrs {
		if !transientAttrs[k] {
			n++
		}
	}
	return n
}

func bindingsEqual(a, b []Binding) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
