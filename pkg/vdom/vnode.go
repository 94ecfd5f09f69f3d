package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Marker attributes carried by markup. Parse lifts them into the typed
// Bindings/RefName fields; the reconciler never writes them into the
// committed tree.
const (
	// BindPrefix prefixes declarative event-binding attributes:
	// data-on-click="increment" binds the click event to the component's
	// "increment" handler.
	BindPrefix = "data-on-"

	// RefAttr names an entry in the component's ref map:
	// data-ref="label" exposes the element as Ref("label").
	RefAttr = "data-ref"
)

// Binding is a typed event-binding descriptor: the named event resolves
// against a handler in the owning component's handler table.
type Binding struct {
	Event   string
	Handler string
}

// VNode is a node of render output.
type VNode struct {
	Kind     VKind
	Tag      string            // element tag name
	Attrs    map[string]string // plain attributes, markers excluded
	Bindings []Binding         // declarative event bindings
	RefName  string            // ref map entry name, "" for none
	Children []*VNode
	Text     string // KindText only
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// Ref marks the element as a named entry in the component's ref map.
type Ref string

// IsLeaf reports whether the node has no children.
func (v *VNode) IsLeaf() bool {
	return len(v.Children) == 0
}

// TextContent returns the concatenated text of the subtree.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	var out string
	for _, c := range v.Children {
		out += c.TextContent()
	}
	return out
}

// Class returns the node's class attribute.
func (v *VNode) Class() string {
	return v.Attrs["class"]
}
