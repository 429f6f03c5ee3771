package svgtree

import (
	"fmt"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump returns a textual representation of the rendered tree,
// followed by the defs table. It is meant for debugging.
func (d *Document) Dump() string {
	printer := tp.New()
	d.dumpNode(printer, d.Root)
	if len(d.Defs) != 0 {
		defs := printer.AddBranch("defs")
		for _, ref := range d.Defs {
			d.dumpNode(defs, ref)
		}
	}
	return printer.String()
}

func (d *Document) dumpNode(printer tp.Tree, ref Ref) {
	label := d.describe(ref)
	children := d.Children(ref)
	use, isUse := d.Element(ref).(*Use)
	if len(children) == 0 && !(isUse && use.Payload != 0) {
		printer.AddNode(label)
		return
	}
	branch := printer.AddBranch(label)
	for _, child := range children {
		d.dumpNode(branch, child)
	}
	if isUse && use.Payload != 0 {
		d.dumpNode(branch, use.Payload)
	}
}

// describe returns a one line summary of an element
func (d *Document) describe(ref Ref) string {
	e := d.Element(ref)
	var sb strings.Builder
	sb.WriteString(e.Kind().String())
	if id := e.Header().ID; id != "" {
		fmt.Fprintf(&sb, " #%s", id)
	}
	switch e := e.(type) {
	case *Svg:
		fmt.Fprintf(&sb, " %gx%g", d.Width(ref), d.Height(ref))
	case *Use:
		fmt.Fprintf(&sb, " href=%s", e.Href)
		if e.Payload == 0 {
			sb.WriteString(" (unresolved)")
		}
	case *Image:
		fmt.Fprintf(&sb, " href=%.32s", e.Href)
	case *Rect, *Circle, *Ellipse:
		box := d.BoundingBox(ref)
		fmt.Fprintf(&sb, " (%g,%g %gx%g)", box.X, box.Y, box.W, box.H)
	case *Path:
		fmt.Fprintf(&sb, " %s, %d operations", e.Shape, len(e.Data.Operations))
	case *LinearGradient:
		fmt.Fprintf(&sb, " %d stops", len(d.GradientStops(ref)))
	case *RadialGradient:
		fmt.Fprintf(&sb, " %d stops", len(d.GradientStops(ref)))
	case *ColorLeaf:
		fmt.Fprintf(&sb, " %s", e.Color)
	}
	if m, ok := AsTransformable(e); ok && !m.IsIdentity() {
		fmt.Fprintf(&sb, " transform=%s", m)
	}
	return sb.String()
}
