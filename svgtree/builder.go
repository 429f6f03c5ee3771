package svgtree

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/npillmayer/schuko/tracing"

	"github.com/benoitkugler/svgtree/svgxml"
)

// tracer traces with key 'svgtree'.
func tracer() tracing.Trace {
	return tracing.Select("svgtree")
}

// frame is the state of an open element
type frame struct {
	// parent of the elements started in this frame
	parent Ref
	// container receiving the children, or 0 inside <defs>
	container Ref
	inDefs    bool
	// gradient receiving the <stop> children
	gradient Ref
	// skip drops the whole subtree
	skip bool
	// text collects the character data of <title> and <desc>
	text *[]string
}

// builder implements svgxml.Handler and svgxml.TextHandler,
// creating the elements in document order.
type builder struct {
	doc  *Document
	opts Options

	stack []frame
	// name of the element whose attributes are parsed
	element string
	// parent of the element being built
	parent Ref

	text strings.Builder
	// first fatal error
	fatal *ParseError

	// reference queues, drained by resolve
	iris map[*Ref]iriRequest
	uses []Ref
}

func newBuilder(opts Options) *builder {
	if opts.Open == nil {
		opts.Open = fileOpener("")
	}
	return &builder{
		doc:  newDocument(opts),
		opts: opts,
		iris: make(map[*Ref]iriRequest),
	}
}

// warn reports a recoverable error for the current element.
func (b *builder) warn(kind ErrorKind, attribute, value string, err error) {
	perr := &ParseError{Kind: kind, Element: b.element, Attribute: attribute, Value: value, Err: err}
	if b.opts.OnError != nil {
		b.opts.OnError(perr)
	}
	if b.opts.ErrorMode == WarnErrorMode {
		tracer().Infof("%s", perr)
	}
}

func (b *builder) top() frame {
	if len(b.stack) == 0 {
		return frame{}
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) push(f frame) { b.stack = append(b.stack, f) }

func (b *builder) StartElement(name string, attrs []svgxml.Attr) {
	if b.fatal != nil {
		return
	}
	isRoot := len(b.stack) == 0
	if isRoot && (name != "svg" || b.doc.Root != 0) {
		b.fatal = &ParseError{Kind: CannotParseMarkup, Err: errors.New("root element must be <svg>, got <" + name + ">")}
		return
	}
	top := b.top()
	switch {
	case top.skip:
		b.push(frame{skip: true})
		return
	case top.gradient != 0:
		if name == "stop" {
			b.element = name
			b.addStop(top.gradient, attrs)
		}
		b.push(frame{skip: true})
		return
	}

	switch name {
	case "defs":
		if b.opts.Flags&LoadDefs == 0 {
			b.push(frame{skip: true})
			return
		}
		b.push(frame{parent: top.parent, inDefs: true})
		return
	case "title":
		b.push(frame{skip: true, text: &b.doc.Titles})
		return
	case "desc":
		b.push(frame{skip: true, text: &b.doc.Descriptions})
		return
	}

	fn, ok := elementFuncs[name]
	if !ok {
		// unknown elements are transparent
		tracer().Debugf("skipping unknown element <%s>", name)
		b.push(top)
		return
	}
	if !isRoot && b.opts.Flags&elementFlags[name] == 0 {
		tracer().Debugf("element <%s> is disabled", name)
		b.push(frame{skip: true})
		return
	}

	b.element, b.parent = name, top.parent
	e := fn(b, attrs)
	ref := b.doc.add(e, top.parent)
	switch {
	case isRoot:
		b.doc.Root = ref
	case top.inDefs:
		b.doc.Defs = append(b.doc.Defs, ref)
	default:
		children, _ := AsContainer(b.doc.Element(top.container))
		*children = append(*children, ref)
	}
	if use, ok := e.(*Use); ok && use.Href != "" {
		b.uses = append(b.uses, ref)
	}

	switch {
	case isContainer(e):
		b.push(frame{parent: ref, container: ref})
	case isGradient(e):
		b.push(frame{parent: ref, gradient: ref})
	default:
		// children of graphic elements are ignored
		b.push(frame{skip: true})
	}
}

func (b *builder) EndElement(name string) {
	if b.fatal != nil || len(b.stack) == 0 {
		return
	}
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if f.text != nil {
		if s := strings.TrimSpace(b.text.String()); s != "" {
			*f.text = append(*f.text, s)
		}
		b.text.Reset()
	}
}

func (b *builder) Text(data string) {
	if top := b.top(); top.text != nil {
		b.text.WriteString(data)
	}
}

// addStop appends a stop to `gradient`. Offsets are kept increasing.
func (b *builder) addStop(gradient Ref, attrs []svgxml.Attr) {
	stop, ok := b.parseStop(attrs)
	if !ok {
		return
	}
	g, _ := AsGradient(b.doc.Element(gradient))
	if n := len(g.Stops); n != 0 && stop.Offset < g.Stops[n-1].Offset {
		stop.Offset = g.Stops[n-1].Offset
	}
	g.Stops = append(g.Stops, stop)
}

// finish resolves the references of the complete tree.
func (b *builder) finish() (*Document, error) {
	if b.fatal != nil {
		return nil, b.fatal
	}
	if b.doc.Root == 0 {
		return nil, &ParseError{Kind: CannotParseMarkup, Err: svgxml.ErrNoElement}
	}
	b.resolve()
	return b.doc, nil
}

// readRecorder remembers the errors of the underlying reader, so
// that they are not reported as markup errors.
type readRecorder struct {
	r   io.Reader
	err error
}

func (rr *readRecorder) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && err != io.EOF {
		rr.err = err
	}
	return n, err
}

// Parse reads an SVG document and resolves its references.
// The returned error, if any, is a *ParseError with a fatal kind.
func Parse(source io.Reader, opts Options) (*Document, error) {
	b := newBuilder(opts)
	rr := &readRecorder{r: source}
	if err := svgxml.Decode(rr, b); err != nil {
		if rr.err != nil {
			return nil, &ParseError{Kind: CannotReadSource, Err: rr.err}
		}
		return nil, &ParseError{Kind: CannotParseMarkup, Err: err}
	}
	return b.finish()
}

// ParseString is a convenience wrapper around Parse.
func ParseString(source string, opts Options) (*Document, error) {
	return Parse(strings.NewReader(source), opts)
}

// ParseFile parses the file at `path`. When opts.Open is nil,
// external resources are resolved relative to the file directory.
func ParseFile(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: CannotReadSource, Err: err}
	}
	defer f.Close()
	if opts.Open == nil {
		opts.Open = fileOpener(filepath.Dir(path))
	}
	return Parse(f, opts)
}

// FromEtree builds a Document from an already parsed XML tree.
func FromEtree(doc *etree.Document, opts Options) (*Document, error) {
	b := newBuilder(opts)
	if err := svgxml.WalkDocument(doc, b); err != nil {
		return nil, &ParseError{Kind: CannotParseMarkup, Err: err}
	}
	return b.finish()
}
