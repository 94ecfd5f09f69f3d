package memdom

import (
	"sync"

	"github.com/glint-ui/glint/pkg/host"
)

// Document creates in-memory elements.
type Document struct {
	mu   sync.Mutex
	body *Element
}

var _ host.Document = (*Document)(nil)

// NewDocument returns a Document.
func NewDocument() *Document { return &Document{} }

// CreateElement implements host.Document.
func (d *Document) CreateElement(tag string) host.Element {
	return &Element{tag: tag}
}

// CreateText implements host.Document.
func (d *Document) CreateText(text string) host.Element {
	return &Element{text: text}
}

// Body returns the document's root container, convenient as a mount
// target. The same element is returned on every call.
func (d *Document) Body() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.body == nil {
		d.body = &Element{tag: "body"}
	}
	return d.body
}
