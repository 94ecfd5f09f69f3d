package vdom

import (
	"strings"
	"testing"
)

func TestElBuilder(t *testing.T) {
	node := El("div",
		Class("box"),
		ID("main"),
		On("click", "open"),
		Ref("container"),
		Span("hello"),
		nil,
		"world",
	)

	if node.Tag != "div" || node.Kind != KindElement {
		t.Fatalf("unexpected node %+v", node)
	}
	if node.Attrs["class"] != "box" || node.Attrs["id"] != "main" {
		t.Errorf("attrs mismatch: %v", node.Attrs)
	}
	if len(node.Bindings) != 1 || node.Bindings[0] != (Binding{Event: "click", Handler: "open"}) {
		t.Errorf("bindings mismatch: %v", node.Bindings)
	}
	if node.RefName != "container" {
		t.Errorf("expected ref container, got %q", node.RefName)
	}
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(node.Children))
	}
	if node.Children[1].Kind != KindText || node.Children[1].Text != "world" {
		t.Errorf("string arg should become a text child: %+v", node.Children[1])
	}
}

func TestTextContent(t *testing.T) {
	node := Div(Span("a"), Text("b"), P("c"))
	if got := node.TextContent(); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	if (*VNode)(nil).TextContent() != "" {
		t.Error("nil node text should be empty")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	nodes := Range(items, func(item string, i int) *VNode {
		if item == "b" {
			return nil
		}
		return Li(item)
	})
	if len(nodes) != 2 {
		t.Errorf("nil results should be dropped, got %d nodes", len(nodes))
	}
}

func TestParseBasic(t *testing.T) {
	node, err := Parse(`<div class="box"><span>hi</span></div>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if node.Tag != "div" || node.Attrs["class"] != "box" {
		t.Errorf("unexpected root %+v", node)
	}
	if len(node.Children) != 1 || node.Children[0].Tag != "span" {
		t.Fatalf("unexpected children %+v", node.Children)
	}
	if got := node.Children[0].TextContent(); got != "hi" {
		t.Errorf("expected hi, got %q", got)
	}
}

func TestParseLiftsMarkers(t *testing.T) {
	node, err := Parse(`<button data-on-click="increment" data-ref="btn" class="cta">+</button>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(node.Bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(node.Bindings))
	}
	if b := node.Bindings[0]; b.Event != "click" || b.Handler != "increment" {
		t.Errorf("unexpected binding %+v", b)
	}
	if node.RefName != "btn" {
		t.Errorf("expected ref btn, got %q", node.RefName)
	}

	// Markers must not survive as plain attributes.
	if _, ok := node.Attrs["data-on-click"]; ok {
		t.Error("binding marker left in Attrs")
	}
	if _, ok := node.Attrs[RefAttr]; ok {
		t.Error("ref marker left in Attrs")
	}
	if node.Attrs["class"] != "cta" {
		t.Error("plain attributes must survive")
	}
}

func TestParseSkipsFormattingWhitespace(t *testing.T) {
	node, err := Parse(`
		<ul>
			<li>one</li>
			<li>two</li>
		</ul>
	`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(node.Children) != 2 {
		t.Errorf("expected 2 children, got %d", len(node.Children))
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("just text"); err != ErrNoRootElement {
		t.Errorf("expected ErrNoRootElement, got %v", err)
	}
	if _, err := Parse(""); err != ErrNoRootElement {
		t.Errorf("expected ErrNoRootElement, got %v", err)
	}
	if _, err := Parse("<div></div><div></div>"); err != ErrMultipleRoots {
		t.Errorf("expected ErrMultipleRoots, got %v", err)
	}
}

func TestRenderHTML(t *testing.T) {
	node := Div(
		Class("box"),
		ID("main"),
		Span("hi"),
	)
	got := RenderHTML(node)
	want := `<div class="box" id="main"><span>hi</span></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderHTMLWritesMarkers(t *testing.T) {
	node := Button(On("click", "go"), Ref("btn"), "Go")
	got := RenderHTML(node)
	want := `<button data-on-click="go" data-ref="btn">Go</button>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderHTMLVoidElement(t *testing.T) {
	node := Input(A("type", "text"))
	got := RenderHTML(node)
	want := `<input type="text">`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	node := Div(A("title", `a"b<c`), Text("<script>"))
	got := RenderHTML(node)
	if strings.Contains(got, "<script>") {
		t.Errorf("text not escaped: %q", got)
	}
	if !strings.Contains(got, `title="a&quot;b&lt;c"`) {
		t.Errorf("attribute not escaped: %q", got)
	}
}

func TestParseRenderRoundTrip(t *testing.T) {
	markup := `<div class="counter"><p data-ref="display">Count: 3</p><button data-on-click="increment">+</button></div>`
	node, err := Parse(markup)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := RenderHTML(node); got != markup {
		t.Errorf("round trip changed markup:\n got %q\nwant %q", got, markup)
	}
}

func TestEqualText(t *testing.T) {
	if !Equal(Text("a"), Text("a")) {
		t.Error("identical text should be equal")
	}
	if Equal(Text("a"), Text("b")) {
		t.Error("different text should differ")
	}
	if Equal(Text("a"), Span("a")) {
		t.Error("kind mismatch should differ")
	}
}

func TestEqualNil(t *testing.T) {
	if !Equal(nil, nil) {
		t.Error("nil == nil")
	}
	if Equal(nil, Div()) || Equal(Div(), nil) {
		t.Error("nil != node")
	}
}

func TestEqualStructural(t *testing.T) {
	a := Div(Class("x"), Span("hi"), Button(On("click", "go"), "Go"))
	b := Div(Class("x"), Span("hi"), Button(On("click", "go"), "Go"))
	if !Equal(a, b) {
		t.Error("structurally identical trees should be equal")
	}

	cases := []struct {
		name string
		node *VNode
	}{
		{"tag", El("section", Class("x"), Span("hi"), Button(On("click", "go"), "Go"))},
		{"class", Div(Class("y"), Span("hi"), Button(On("click", "go"), "Go"))},
		{"text", Div(Class("x"), Span("yo"), Button(On("click", "go"), "Go"))},
		{"binding", Div(Class("x"), Span("hi"), Button(On("click", "stop"), "Go"))},
		{"children", Div(Class("x"), Span("hi"))},
		{"ref", Div(Class("x"), Ref("root"), Span("hi"), Button(On("click", "go"), "Go"))},
	}
	for _, tc := range cases {
		if Equal(a, tc.node) {
			t.Errorf("%s difference should break equality", tc.name)
		}
	}
}

func TestEqualIgnoresTransientAttrs(t *testing.T) {
	a := Input(A("type", "text"), A("value", "draft"))
	b := Input(A("type", "text"), A("value", "draft longer"))
	if !Equal(a, b) {
		t.Error("value differences are user state, not semantic changes")
	}

	c := Input(A("type", "text"), A("checked", "checked"))
	if !Equal(a, c) {
		t.Error("transient attributes must not affect equality either way")
	}

	d := Input(A("type", "password"), A("value", "draft"))
	if Equal(a, d) {
		t.Error("stable attribute change must break equality")
	}
}
