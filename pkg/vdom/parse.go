package vdom

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrNoRootElement is returned when markup contains no element.
	ErrNoRootElement = errors.New("vdom: markup has no root element")

	// ErrMultipleRoots is returned when markup contains more than one
	// top-level element; the reconciler needs a single candidate root.
	ErrMultipleRoots = errors.New("vdom: markup has multiple root elements")
)

// Parse parses markup text into a detached tree. The markup must have
// exactly one root element; surrounding whitespace is ignored. Marker
// attributes (data-on-*, data-ref) are lifted into the typed Bindings
// and RefName fields and removed from Attrs.
func Parse(markup string) (*VNode, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, err
	}

	var root *VNode
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		if root != nil {
			return nil, ErrMultipleRoots
		}
		root = convert(n)
	}
	if root == nil {
		return nil, ErrNoRootElement
	}
	return root, nil
}

// convert maps a parsed html.Node subtree to a VNode subtree.
func convert(n *html.Node) *VNode {
	v := &VNode{
		Kind:  KindElement,
		Tag:   n.Data,
		Attrs: make(map[string]string, len(n.Attr)),
	}

	for _, a := range n.Attr {
		switch {
		case a.Key == RefAttr:
			v.RefName = a.Val
		case strings.HasPrefix(a.Key, BindPrefix):
			v.Bindings = append(v.Bindings, Binding{
				Event:   strings.TrimPrefix(a.Key, BindPrefix),
				Handler: a.Val,
			})
		default:
			v.Attrs[a.Key] = a.Val
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			v.Children = append(v.Children, convert(c))
		case html.TextNode:
			// Whitespace between elements is formatting, not content.
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			v.Children = append(v.Children, Text(c.Data))
		}
	}

	return v
}
