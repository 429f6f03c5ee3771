package svgxml

import (
	"github.com/beevik/etree"
)

// Walk reports the element `root` and all its descendants
// to `h`, in document order.
func Walk(root *etree.Element, h Handler) {
	textH, _ := h.(TextHandler)
	var attrs []Attr
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		attrs = attrs[:0]
		for _, a := range el.Attr {
			if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
				continue
			}
			attrs = append(attrs, Attr{Name: a.Key, Value: a.Value})
		}
		h.StartElement(el.Tag, attrs)
		for _, child := range el.Child {
			switch child := child.(type) {
			case *etree.Element:
				walk(child)
			case *etree.CharData:
				if textH != nil {
					textH.Text(child.Data)
				}
			}
		}
		h.EndElement(el.Tag)
	}
	walk(root)
}

// WalkDocument walks the root element of `doc`. It returns
// ErrNoElement if the document is empty.
func WalkDocument(doc *etree.Document, h Handler) error {
	root := doc.Root()
	if root == nil {
		return ErrNoElement
	}
	Walk(root, h)
	return nil
}
