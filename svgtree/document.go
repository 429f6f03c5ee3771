package svgtree

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// ResourceKind is the kind of an external resource.
type ResourceKind uint8

const (
	ImageResource ResourceKind = iota
	FontResource
)

func (k ResourceKind) String() string {
	if k == FontResource {
		return "font"
	}
	return "image"
}

// ExternalResource describes a resource referenced by the document.
// Its content is only read on demand, with Document.OpenResource.
type ExternalResource struct {
	Href string
	Kind ResourceKind
}

// Document is a parsed and resolved SVG document.
// Elements are stored in an arena and addressed by Ref.
//
// A Document is not modified after Parse returns, so that it may
// be read concurrently.
type Document struct {
	nodes []Element // nodes[0] is unused

	// Root is the outermost <svg> element.
	Root Ref
	// Defs is the table of the elements declared in <defs>,
	// which are not rendered directly.
	Defs []Ref
	// Resources lists the external resources, in document order.
	Resources []ExternalResource

	// ViewportWidth and ViewportHeight are the document size, used to
	// resolve the percentages of the root element.
	ViewportWidth, ViewportHeight float32

	Titles       []string // <title> elements collect here
	Descriptions []string // <desc> elements collect here

	open func(href string) (io.ReadCloser, error)
}

func newDocument(opts Options) *Document {
	return &Document{
		nodes:          make([]Element, 1, 32),
		ViewportWidth:  opts.Width,
		ViewportHeight: opts.Height,
		open:           opts.Open,
	}
}

// add stores `e` in the arena, updating its header.
func (d *Document) add(e Element, parent Ref) Ref {
	ref := Ref(len(d.nodes))
	h := e.Header()
	h.Self, h.Parent = ref, parent
	d.nodes = append(d.nodes, e)
	return ref
}

// Len returns the number of elements in the arena,
// including the ones only reachable through <use> payloads.
func (d *Document) Len() int { return len(d.nodes) - 1 }

// Element returns the element for `ref`, or nil.
func (d *Document) Element(ref Ref) Element {
	if ref == 0 || int(ref) >= len(d.nodes) {
		return nil
	}
	return d.nodes[ref]
}

// Parent returns the parent of `ref`, or 0.
func (d *Document) Parent(ref Ref) Ref {
	if e := d.Element(ref); e != nil {
		return e.Header().Parent
	}
	return 0
}

// Children returns the children of a container, or nil.
func (d *Document) Children(ref Ref) []Ref {
	if c, ok := AsContainer(d.Element(ref)); ok {
		return *c
	}
	return nil
}

// Walk calls `fn` on the rendered tree, depth first, starting at the root.
// <use> payloads are visited after their <use> element, with the same depth.
// If `fn` returns false, the children of the element are skipped.
func (d *Document) Walk(fn func(ref Ref, depth int) bool) {
	var walk func(ref Ref, depth int)
	walk = func(ref Ref, depth int) {
		if ref == 0 || !fn(ref, depth) {
			return
		}
		if use, ok := d.Element(ref).(*Use); ok {
			walk(use.Payload, depth)
			return
		}
		for _, child := range d.Children(ref) {
			walk(child, depth+1)
		}
	}
	walk(d.Root, 0)
}

// cascade returns the style of `ref`, where unset properties are
// inherited from the ancestors.
func (d *Document) cascade(ref Ref) Style {
	var out Style
	if s, ok := AsStylable(d.Element(ref)); ok {
		out = s.Clone()
	}
	for r := d.Parent(ref); r != 0; r = d.Parent(r) {
		if s, ok := AsStylable(d.Element(r)); ok {
			out.Inherit(s)
		}
	}
	return out
}

// ComputedStyle returns the style of `ref`, after inheritance
// and with default values for the properties never set.
// It is computed on each call.
func (d *Document) ComputedStyle(ref Ref) ResolvedStyle {
	s := d.cascade(ref)
	return s.Resolve()
}

// EffectiveOpacity returns the opacity of `ref`, in [0, 255],
// which is the product of the 'opacity' property of `ref` and
// its ancestors.
func (d *Document) EffectiveOpacity(ref Ref) float32 {
	out := float32(1)
	for r := ref; r != 0; r = d.Parent(r) {
		if s, ok := AsStylable(d.Element(r)); ok && s.IsSet(PropOpacity) {
			out *= s.Opacity / 255
		}
	}
	return out * 255
}

var errDataURL = errors.New("invalid data URL")

// OpenResource returns the content of an external resource.
// 'data:' URLs are decoded in place, other hrefs are resolved
// by the Options.Open hook.
func (d *Document) OpenResource(href string) (io.ReadCloser, error) {
	if strings.HasPrefix(href, "data:") {
		data, err := decodeDataURL(href)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if d.open == nil {
		return nil, fmt.Errorf("no resource opener for %s", href)
	}
	return d.open(href)
}

// decodeDataURL supports 'data:[<mediatype>][;base64],<data>'
func decodeDataURL(href string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(href, "data:"), ",")
	if !ok {
		return nil, errDataURL
	}
	if strings.HasSuffix(header, ";base64") {
		// line breaks are common in embedded images
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		out, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errDataURL, err)
		}
		return out, nil
	}
	out, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errDataURL, err)
	}
	return []byte(out), nil
}
