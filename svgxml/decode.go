// Package svgxml adapts XML tokenizers to the stream of element
// events consumed by the SVG tree builder.
//
// Two sources are supported: a streaming encoding/xml decoder, and an
// already parsed github.com/beevik/etree document. Both deliver the same
// events, in document order and with correct nesting.
package svgxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html/charset"
)

// tracer traces with key 'svgtree.xml'.
func tracer() tracing.Trace {
	return tracing.Select("svgtree.xml")
}

// ErrNoElement is returned for an input without any element.
var ErrNoElement = errors.New("invalid svg xml: no element found")

// Attr is an attribute, identified by its local name
// (so that 'xlink:href' is reported as 'href').
type Attr struct {
	Name, Value string
}

// Handler receives the events of a document.
type Handler interface {
	// StartElement is called when an element starts, with its local name.
	// The attribute slice is only valid during the call.
	StartElement(name string, attrs []Attr)
	// EndElement is called when all the children of the
	// element have been reported.
	EndElement(name string)
}

// TextHandler may be implemented by handlers interested in
// character data, such as the content of <title> or <style>.
type TextHandler interface {
	Text(data string)
}

func convertAttrs(dst []Attr, attrs []xml.Attr) []Attr {
	dst = dst[:0]
	for _, a := range attrs {
		// namespace declarations are not attributes
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		dst = append(dst, Attr{Name: a.Name.Local, Value: a.Value})
	}
	return dst
}

// Decode reads an XML document from `stream` and reports its
// elements to `h`. Non UTF-8 encodings declared in the XML prolog are supported.
// An error is returned for malformed markup or when the input contains no element.
func Decode(stream io.Reader, h Handler) error {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	textH, _ := h.(TextHandler)
	var (
		attrs   []Attr
		seenTag bool
		depth   int
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return ErrNoElement
				}
				if depth != 0 {
					return fmt.Errorf("invalid svg xml: %d unclosed elements", depth)
				}
				return nil
			}
			return err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			depth++
			attrs = convertAttrs(attrs, se.Attr)
			h.StartElement(se.Name.Local, attrs)
		case xml.EndElement:
			depth--
			h.EndElement(se.Name.Local)
		case xml.CharData:
			if textH != nil && depth > 0 {
				textH.Text(string(se))
			}
		case xml.ProcInst, xml.Directive, xml.Comment:
			tracer().Debugf("skipping xml token %T", se)
		}
	}
}
