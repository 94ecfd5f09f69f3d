package vdom

import (
	"sort"
	"strings"
)

// RenderHTML serializes a tree to HTML. Attributes are written in
// sorted order so output is deterministic; binding and ref descriptors
// are written back as their marker attributes, which makes RenderHTML
// and Parse round-trip.
func RenderHTML(v *VNode) string {
	var sb strings.Builder
	writeNode(&sb, v)
	return sb.String()
}

func writeNode(sb *strings.Builder, v *VNode) {
	if v == nil {
		return
	}
	if v.Kind == KindText {
		sb.WriteString(escapeHTML(v.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(v.Tag)
	writeAttrs(sb, v)
	sb.WriteByte('>')

	if IsVoidElement(v.Tag) {
		return
	}

	for _, c := range v.Children {
		writeNode(sb, c)
	}

	sb.WriteString("</")
	sb.WriteString(v.Tag)
	sb.WriteByte('>')
}

func writeAttrs(sb *strings.Builder, v *VNode) {
	keys := make([]string, 0, len(v.Attrs)+len(v.Bindings)+1)
	merged := make(map[string]string, cap(keys))

	for k, val := range v.Attrs {
		merged[k] = val
		keys = append(keys, k)
	}
	for _, b := range v.Bindings {
		k := BindPrefix + b.Event
		merged[k] = b.Handler
		keys = append(keys, k)
	}
	if v.RefName != "" {
		merged[RefAttr] = v.RefName
		keys = append(keys, RefAttr)
	}
	sort.Strings(keys)

	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(merged[k]))
		sb.WriteByte('"')
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// In addition to the standard HTML entities, it escapes whitespace
// characters that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
