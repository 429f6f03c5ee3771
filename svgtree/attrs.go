package svgtree

import (
	"errors"
	"strings"

	"github.com/benoitkugler/svgtree/svgscan"
)

var (
	errIRI      = errors.New("invalid IRI reference")
	errKeyword  = errors.New("unknown keyword")
	errFontSize = errors.New("missing font size")
)

// parseIRI reads 'url(#id)', with optional quotes, and returns
// the id and what follows the closing parenthesis.
func parseIRI(s string) (id, rest string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "url(") {
		return "", "", false
	}
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return "", "", false
	}
	id = strings.Trim(strings.TrimSpace(s[4:end]), `"'`)
	if !strings.HasPrefix(id, "#") || len(id) == 1 {
		return "", "", false
	}
	return id[1:], strings.TrimSpace(s[end+1:]), true
}

// parseHref reads '#id' or 'url(#id)'.
func parseHref(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) > 1 {
		return s[1:], true
	}
	id, _, ok := parseIRI(s)
	return id, ok
}

// parseOpacity accepts a number or a percentage, and returns
// a value clamped to [0, 255].
func parseOpacity(s string) (float32, error) {
	l, err := svgscan.ParseLength(s)
	if err != nil {
		return 0, svgscan.ErrExpectedNumber
	}
	v := l.Value * 255
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return v, nil
}

// CSS absolute size keywords, in pixels
var fontSizeKeywords = map[string]float32{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

func parseFontSize(s string) (svgscan.Length, error) {
	if v, ok := fontSizeKeywords[strings.ToLower(strings.TrimSpace(s))]; ok {
		return svgscan.Pixels(v), nil
	}
	return svgscan.ParseLength(s)
}

func parseFontFamily(s string) []string {
	var out []string
	for _, name := range strings.Split(s, ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// parseDashArray returns nil for 'none'. Odd lists are repeated.
func parseDashArray(s string) ([]svgscan.Length, error) {
	if strings.TrimSpace(s) == "none" {
		return nil, nil
	}
	sc := svgscan.NewScanner(s)
	out := sc.Lengths()
	sc.SkipSpacesAndComma()
	if !sc.Done() || len(out) == 0 {
		return nil, svgscan.ErrExpectedLength
	}
	if len(out)%2 == 1 {
		out = append(out, out...)
	}
	return out, nil
}

// attrFunc parses one presentation attribute into `s`.
// `value` is never "inherit".
type attrFunc func(b *builder, s *Style, name, value string)

// enumAttr returns a parser for a keyword property.
func enumAttr[E ~uint8](names []string, prop Property, field func(s *Style) *E) attrFunc {
	return func(b *builder, s *Style, name, value string) {
		v, ok := parseEnum[E](names, strings.TrimSpace(value))
		if !ok {
			b.warn(UnrecognizedEnumeratedValue, name, value, errKeyword)
			return
		}
		*field(s) = v
		s.Set(prop)
	}
}

func opacityAttr(prop Property, field func(s *Style) *float32) attrFunc {
	return func(b *builder, s *Style, name, value string) {
		v, err := parseOpacity(value)
		if err != nil {
			b.warn(ExpectedNumber, name, value, err)
			return
		}
		*field(s) = v
		s.Set(prop)
	}
}

func lengthAttr(prop Property, field func(s *Style) *svgscan.Length) attrFunc {
	return func(b *builder, s *Style, name, value string) {
		l, err := svgscan.ParseLength(value)
		if err != nil {
			b.warn(ExpectedLength, name, value, err)
			return
		}
		*field(s) = l
		s.Set(prop)
	}
}

func paintAttr(prop Property, field func(s *Style) *Paint) attrFunc {
	return func(b *builder, s *Style, name, value string) {
		p := field(s)
		b.dropIRI(&p.Server)
		value = strings.TrimSpace(value)
		if value == "none" {
			*p = Paint{}
			s.Set(prop)
			return
		}
		if id, fallback, ok := parseIRI(value); ok {
			*p = Paint{Kind: ServerPaint}
			if fallback != "" && fallback != "none" {
				c, err := svgscan.ParseColor(fallback)
				if err != nil {
					b.warn(UnrecognizedEnumeratedValue, name, value, err)
				} else {
					p.Color, p.HasFallback = c, true
				}
			}
			b.queueIRI(id, &p.Server, IsPaintServer)
			s.Set(prop)
			return
		}
		c, err := svgscan.ParseColor(value)
		if err != nil {
			b.warn(UnrecognizedEnumeratedValue, name, value, err)
			return
		}
		*p = Paint{Kind: ColorPaint, Color: c}
		s.Set(prop)
	}
}

func markerAttr(prop Property, field func(s *Style) *Ref) attrFunc {
	return func(b *builder, s *Style, name, value string) {
		slot := field(s)
		b.dropIRI(slot)
		*slot = 0
		if strings.TrimSpace(value) == "none" {
			s.Set(prop)
			return
		}
		id, _, ok := parseIRI(value)
		if !ok {
			b.warn(UnrecognizedEnumeratedValue, name, value, errIRI)
			return
		}
		b.queueIRI(id, slot, isMarker)
		s.Set(prop)
	}
}

var (
	fillAttr        = paintAttr(PropFill, func(s *Style) *Paint { return &s.Fill })
	strokeAttr      = paintAttr(PropStroke, func(s *Style) *Paint { return &s.Stroke })
	markerStartAttr = markerAttr(PropMarkerStart, func(s *Style) *Ref { return &s.MarkerStart })
	markerMidAttr   = markerAttr(PropMarkerMid, func(s *Style) *Ref { return &s.MarkerMid })
	markerEndAttr   = markerAttr(PropMarkerEnd, func(s *Style) *Ref { return &s.MarkerEnd })
)

const fontProperties = PropFontFamily | PropFontSize | PropFontWeight | PropFontStyle |
	PropFontVariant | PropFontStretch

const markerProperties = PropMarkerStart | PropMarkerMid | PropMarkerEnd

// attrProperties is used to unset properties on 'inherit'
var attrProperties = map[string]Property{
	"fill":                        PropFill,
	"fill-rule":                   PropFillRule,
	"fill-opacity":                PropFillOpacity,
	"stroke":                      PropStroke,
	"stroke-opacity":              PropStrokeOpacity,
	"stroke-width":                PropStrokeWidth,
	"stroke-miterlimit":           PropStrokeMiterLimit,
	"stroke-dasharray":            PropStrokeDashArray,
	"stroke-dashoffset":           PropStrokeDashOffset,
	"stroke-linecap":              PropStrokeLineCap,
	"stroke-linejoin":             PropStrokeLineJoin,
	"font":                        fontProperties,
	"font-family":                 PropFontFamily,
	"font-size":                   PropFontSize,
	"font-size-adjust":            PropFontSizeAdjust,
	"font-weight":                 PropFontWeight,
	"font-style":                  PropFontStyle,
	"font-variant":                PropFontVariant,
	"font-stretch":                PropFontStretch,
	"color-interpolation":         PropColorInterpolation,
	"color-interpolation-filters": PropColorInterpolationFilters,
	"color-rendering":             PropColorRendering,
	"shape-rendering":             PropShapeRendering,
	"text-rendering":              PropTextRendering,
	"image-rendering":             PropImageRendering,
	"cursor":                      PropCursor,
	"display":                     PropDisplay,
	"visibility":                  PropVisibility,
	"overflow":                    PropOverflow,
	"opacity":                     PropOpacity,
	"marker":                      markerProperties,
	"marker-start":                PropMarkerStart,
	"marker-mid":                  PropMarkerMid,
	"marker-end":                  PropMarkerEnd,
}

// presentationAttrs maps the presentation attributes to their parser.
var presentationAttrs = map[string]attrFunc{
	"fill":         fillAttr,
	"fill-rule":    enumAttr(fillRuleNames, PropFillRule, func(s *Style) *FillRule { return &s.FillRule }),
	"fill-opacity": opacityAttr(PropFillOpacity, func(s *Style) *float32 { return &s.FillOpacity }),

	"stroke":            strokeAttr,
	"stroke-opacity":    opacityAttr(PropStrokeOpacity, func(s *Style) *float32 { return &s.StrokeOpacity }),
	"stroke-width":      lengthAttr(PropStrokeWidth, func(s *Style) *svgscan.Length { return &s.StrokeWidth }),
	"stroke-dashoffset": lengthAttr(PropStrokeDashOffset, func(s *Style) *svgscan.Length { return &s.StrokeDashOffset }),
	"stroke-linecap":    enumAttr(lineCapNames, PropStrokeLineCap, func(s *Style) *LineCap { return &s.StrokeLineCap }),
	"stroke-linejoin":   enumAttr(lineJoinNames, PropStrokeLineJoin, func(s *Style) *LineJoin { return &s.StrokeLineJoin }),
	"stroke-miterlimit": miterLimitAttr,
	"stroke-dasharray":  dashArrayAttr,

	"font":             fontAttr,
	"font-family":      fontFamilyAttr,
	"font-size":        fontSizeAttr,
	"font-size-adjust": fontSizeAdjustAttr,
	"font-weight":      enumAttr(fontWeightNames, PropFontWeight, func(s *Style) *FontWeight { return &s.FontWeight }),
	"font-style":       enumAttr(fontStyleNames, PropFontStyle, func(s *Style) *FontStyle { return &s.FontStyle }),
	"font-variant":     enumAttr(fontVariantNames, PropFontVariant, func(s *Style) *FontVariant { return &s.FontVariant }),
	"font-stretch":     enumAttr(fontStretchNames, PropFontStretch, func(s *Style) *FontStretch { return &s.FontStretch }),

	"color-interpolation": enumAttr(colorInterpolationNames, PropColorInterpolation,
		func(s *Style) *ColorInterpolation { return &s.ColorInterpolation }),
	"color-interpolation-filters": enumAttr(colorInterpolationNames, PropColorInterpolationFilters,
		func(s *Style) *ColorInterpolation { return &s.ColorInterpolationFilters }),
	"color-rendering": enumAttr(colorRenderingNames, PropColorRendering,
		func(s *Style) *ColorRendering { return &s.ColorRendering }),
	"shape-rendering": enumAttr(shapeRenderingNames, PropShapeRendering,
		func(s *Style) *ShapeRendering { return &s.ShapeRendering }),
	"text-rendering": enumAttr(textRenderingNames, PropTextRendering,
		func(s *Style) *TextRendering { return &s.TextRendering }),
	"image-rendering": enumAttr(imageRenderingNames, PropImageRendering,
		func(s *Style) *ImageRendering { return &s.ImageRendering }),

	"cursor":     enumAttr(cursorNames, PropCursor, func(s *Style) *Cursor { return &s.Cursor }),
	"display":    enumAttr(displayNames, PropDisplay, func(s *Style) *Display { return &s.Display }),
	"visibility": enumAttr(visibilityNames, PropVisibility, func(s *Style) *Visibility { return &s.Visibility }),
	"overflow":   enumAttr(overflowNames, PropOverflow, func(s *Style) *Overflow { return &s.Overflow }),
	"opacity":    opacityAttr(PropOpacity, func(s *Style) *float32 { return &s.Opacity }),

	"marker":       markerShorthandAttr,
	"marker-start": markerStartAttr,
	"marker-mid":   markerMidAttr,
	"marker-end":   markerEndAttr,
}

func miterLimitAttr(b *builder, s *Style, name, value string) {
	v, err := svgscan.ParseNumber(value)
	if err != nil {
		b.warn(ExpectedNumber, name, value, err)
		return
	}
	if v < 1 {
		v = 1
	}
	s.StrokeMiterLimit = v
	s.Set(PropStrokeMiterLimit)
}

func dashArrayAttr(b *builder, s *Style, name, value string) {
	dashes, err := parseDashArray(value)
	if err != nil {
		b.warn(ExpectedLength, name, value, err)
		return
	}
	s.StrokeDashArray = dashes
	s.Set(PropStrokeDashArray)
}

func fontFamilyAttr(b *builder, s *Style, name, value string) {
	s.FontFamily = parseFontFamily(value)
	s.Set(PropFontFamily)
}

func fontSizeAttr(b *builder, s *Style, name, value string) {
	l, err := parseFontSize(value)
	if err != nil {
		b.warn(ExpectedLength, name, value, err)
		return
	}
	s.FontSize = l
	s.Set(PropFontSize)
}

func fontSizeAdjustAttr(b *builder, s *Style, name, value string) {
	if strings.TrimSpace(value) == "none" {
		s.FontSizeAdjust = 0
		s.Set(PropFontSizeAdjust)
		return
	}
	v, err := svgscan.ParseNumber(value)
	if err != nil {
		b.warn(ExpectedNumber, name, value, err)
		return
	}
	s.FontSizeAdjust = v
	s.Set(PropFontSizeAdjust)
}

// fontAttr parses the shorthand
// [style] [variant] [weight] [stretch] size[/line-height] family
func fontAttr(b *builder, s *Style, name, value string) {
	fields := strings.Fields(value)
	var (
		out  Style
		size = -1
	)
	for i, field := range fields {
		if field == "normal" {
			continue
		}
		if v, ok := parseEnum[FontStyle](fontStyleNames, field); ok {
			out.FontStyle = v
			out.Set(PropFontStyle)
		} else if v, ok := parseEnum[FontVariant](fontVariantNames, field); ok {
			out.FontVariant = v
			out.Set(PropFontVariant)
		} else if v, ok := parseEnum[FontWeight](fontWeightNames, field); ok {
			out.FontWeight = v
			out.Set(PropFontWeight)
		} else if v, ok := parseEnum[FontStretch](fontStretchNames, field); ok {
			out.FontStretch = v
			out.Set(PropFontStretch)
		} else {
			sizeText, _, _ := strings.Cut(field, "/") // line-height is not stored
			l, err := parseFontSize(sizeText)
			if err != nil {
				b.warn(UnrecognizedEnumeratedValue, name, value, errKeyword)
				return
			}
			out.FontSize = l
			size = i
			break
		}
	}
	if size == -1 || size == len(fields)-1 {
		b.warn(UnrecognizedEnumeratedValue, name, value, errFontSize)
		return
	}
	out.FontFamily = parseFontFamily(strings.Join(fields[size+1:], " "))
	out.Set(PropFontSize | PropFontFamily)

	// the shorthand resets the omitted properties to normal
	s.FontSize, s.FontFamily = out.FontSize, out.FontFamily
	s.FontStyle, s.FontVariant = out.FontStyle, out.FontVariant
	s.FontWeight, s.FontStretch = out.FontWeight, out.FontStretch
	s.Set(fontProperties)
}

func markerShorthandAttr(b *builder, s *Style, name, value string) {
	markerStartAttr(b, s, name, value)
	markerMidAttr(b, s, name, value)
	markerEndAttr(b, s, name, value)
}

// parsePresentation applies one presentation attribute to `s`,
// and returns false if `name` is not a presentation attribute.
func (b *builder) parsePresentation(s *Style, name, value string) bool {
	fn, ok := presentationAttrs[name]
	if !ok {
		return false
	}
	if strings.TrimSpace(value) == "inherit" {
		props := attrProperties[name]
		if props&PropFill != 0 {
			b.dropIRI(&s.Fill.Server)
		}
		if props&PropStroke != 0 {
			b.dropIRI(&s.Stroke.Server)
		}
		if props&PropMarkerStart != 0 {
			b.dropIRI(&s.MarkerStart)
		}
		if props&PropMarkerMid != 0 {
			b.dropIRI(&s.MarkerMid)
		}
		if props&PropMarkerEnd != 0 {
			b.dropIRI(&s.MarkerEnd)
		}
		s.Unset(props)
		return true
	}
	fn(b, s, name, value)
	return true
}

// parseStyleAttribute applies the 'name:value' declarations of
// a 'style' attribute. Unknown properties are ignored.
func (b *builder) parseStyleAttribute(s *Style, value string) {
	styleDecls(value, func(name, value string) {
		b.parsePresentation(s, name, value)
	})
}
