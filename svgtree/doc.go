// Package svgtree compiles an SVG document into a resolved scene tree.
//
// Parsing happens in two phases. The builder first creates the elements
// in document order, parsing their attributes into typed values
// (lengths, colors, matrices, path data). Once the whole tree exists,
// IRI references (paint servers, markers, gradient templates) are
// resolved, and <use> elements are expanded into private copies of
// their target.
//
// Elements are stored in an arena owned by the Document and addressed by
// Ref handles. Geometry depending on the ancestors (percentages, viewports)
// is computed on demand: see Document.Width, Document.BoundingBox and
// Document.LocalTransform. Styles are cascaded with Document.ComputedStyle.
//
// A Document is not modified once Parse returns.
package svgtree
