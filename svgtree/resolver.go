package svgtree

// iriRequest is a pending IRI reference: once the document is complete,
// the slot is filled with the element named `id`, if it is accepted.
type iriRequest struct {
	id     string
	accept func(Element) bool
}

func (b *builder) queueIRI(id string, slot *Ref, accept func(Element) bool) {
	b.iris[slot] = iriRequest{id: id, accept: accept}
}

// dropIRI cancels the request for `slot`, if any
func (b *builder) dropIRI(slot *Ref) { delete(b.iris, slot) }

// moveIRI updates the requests of `from` when a style is copied to `to`.
func (b *builder) moveIRI(from, to *Style) {
	move := func(src, dst *Ref) {
		if req, ok := b.iris[src]; ok {
			delete(b.iris, src)
			b.iris[dst] = req
		}
	}
	move(&from.Fill.Server, &to.Fill.Server)
	move(&from.Stroke.Server, &to.Stroke.Server)
	move(&from.MarkerStart, &to.MarkerStart)
	move(&from.MarkerMid, &to.MarkerMid)
	move(&from.MarkerEnd, &to.MarkerEnd)
}

// FindByID returns the first element with the given id, or 0.
// The defs table is searched before the rendered tree, each one
// depth first in document order. <use> payloads are not searched.
func (d *Document) FindByID(id string) Ref {
	if id == "" {
		return 0
	}
	for _, ref := range d.Defs {
		if found := d.findIn(ref, id); found != 0 {
			return found
		}
	}
	return d.findIn(d.Root, id)
}

func (d *Document) findIn(ref Ref, id string) Ref {
	e := d.Element(ref)
	if e == nil {
		return 0
	}
	if e.Header().ID == id {
		return ref
	}
	for _, child := range d.Children(ref) {
		if found := d.findIn(child, id); found != 0 {
			return found
		}
	}
	return 0
}

// idIndex maps each id to the element FindByID would return.
func (d *Document) idIndex() map[string]Ref {
	out := make(map[string]Ref)
	var walk func(ref Ref)
	walk = func(ref Ref) {
		e := d.Element(ref)
		if e == nil {
			return
		}
		if id := e.Header().ID; id != "" {
			if _, has := out[id]; !has {
				out[id] = ref
			}
		}
		for _, child := range d.Children(ref) {
			walk(child)
		}
	}
	for _, ref := range d.Defs {
		walk(ref)
	}
	walk(d.Root)
	return out
}

type useState uint8

const (
	usePending useState = iota
	useExpanding
	useDone
	useFailed
)

type resolver struct {
	doc   *Document
	index map[string]Ref
	state map[Ref]useState
}

// resolve drains the IRI queue, then expands the <use> elements,
// so that clones carry resolved references. Both queues are
// cleared afterwards.
func (b *builder) resolve() {
	r := resolver{doc: b.doc, index: b.doc.idIndex(), state: make(map[Ref]useState)}
	for slot, req := range b.iris {
		target := r.index[req.id]
		if target == 0 || !req.accept(b.doc.Element(target)) {
			tracer().Debugf("unresolved reference #%s", req.id)
			*slot = 0
			continue
		}
		*slot = target
	}
	for _, use := range b.uses {
		r.expand(use)
	}
	b.iris = make(map[*Ref]iriRequest)
	b.uses = nil
}

// isAncestor returns true if `anc` is `ref` or one of its ancestors.
func (d *Document) isAncestor(anc, ref Ref) bool {
	for r := ref; r != 0; r = d.Parent(r) {
		if r == anc {
			return true
		}
	}
	return false
}

// usesIn returns the <use> elements of the subtree rooted at `ref`.
func (d *Document) usesIn(ref Ref) []Ref {
	var out []Ref
	var walk func(ref Ref)
	walk = func(ref Ref) {
		if _, ok := d.Element(ref).(*Use); ok {
			out = append(out, ref)
		}
		for _, child := range d.Children(ref) {
			walk(child)
		}
	}
	walk(ref)
	return out
}

// expand builds the payload of `ref`. It returns false if the use
// is unresolved; in that case `cycleAt` is the use starting the
// cycle, or 0 if the failure is not due to a cycle.
func (r *resolver) expand(ref Ref) (ok bool, cycleAt Ref) {
	switch r.state[ref] {
	case useDone:
		return true, 0
	case useFailed:
		return false, 0
	case useExpanding:
		return false, ref
	}
	d := r.doc
	use := d.Element(ref).(*Use)
	id, _ := parseHref(use.Href)
	target := r.index[id]
	if target == 0 || d.isAncestor(target, ref) {
		tracer().Debugf("unresolved or cyclic <use> #%s", id)
		r.state[ref] = useFailed
		return false, 0
	}

	// nested uses are expanded first, so that they are cloned with their payload
	r.state[ref] = useExpanding
	for _, nested := range d.usesIn(target) {
		if ok, at := r.expand(nested); !ok && at != 0 && cycleAt == 0 {
			cycleAt = at
		}
	}
	if cycleAt != 0 {
		tracer().Debugf("cyclic <use> #%s", id)
		r.state[ref] = useFailed
		if cycleAt == ref {
			return false, 0
		}
		return false, cycleAt
	}

	use.Payload = d.cloneTree(target, use.Parent)
	d.applyUse(use)
	r.state[ref] = useDone
	return true, 0
}

// cloneTree deep copies the subtree rooted at `ref`, including
// the payloads of nested uses. It returns the new root.
func (d *Document) cloneTree(ref, parent Ref) Ref {
	e := clone(d.nodes[ref])
	out := d.add(e, parent)
	if children, ok := AsContainer(e); ok {
		for i, child := range *children {
			(*children)[i] = d.cloneTree(child, out)
		}
	}
	if use, ok := e.(*Use); ok && use.Payload != 0 {
		use.Payload = d.cloneTree(use.Payload, parent)
	}
	return out
}

// applyUse transfers the id, the style and the transform
// of `use` to its payload. The (x, y) position is not included,
// see Document.UseOffset.
func (d *Document) applyUse(use *Use) {
	payload := d.nodes[use.Payload]
	payload.Header().ID = use.ID

	if m, ok := AsTransformable(payload); ok {
		*m = m.Overlay(use.Transform)
	}
	if svg, ok := payload.(*Svg); ok {
		// the use size overrides the viewport size
		if use.Width.Value != 0 {
			svg.Width = use.Width
		}
		if use.Height.Value != 0 {
			svg.Height = use.Height
		}
	}

	style, ok := AsStylable(payload)
	if !ok {
		return
	}
	style.Overlay(&use.Style)
	// eager cascade through the copied subtree
	var cascade func(ref Ref, parent *Style)
	cascade = func(ref Ref, parent *Style) {
		for _, child := range d.Children(ref) {
			s, ok := AsStylable(d.nodes[child])
			if !ok {
				continue
			}
			s.Inherit(parent)
			cascade(child, s)
		}
	}
	cascade(use.Payload, style)
}
