package pathex

import "strings"

// SegmentKind tags a pattern segment.
type SegmentKind int

const (
	SegmentLiteral     SegmentKind = iota // Must equal the candidate segment.
	SegmentPlaceholder                    // Binds the candidate segment to Name.
)

// Segment is one '/'-delimited piece of a pattern. Text is the segment as
// written; Name is the placeholder name with braces stripped.
type Segment struct {
	Kind SegmentKind
	Text string
	Name string
}

// Pattern is a parsed template.
type Pattern struct {
	Segments []Segment
}

// Split cuts s on '/' and drops empty pieces, so leading, trailing and
// doubled slashes carry no meaning. It never fails.
func Split(s string) []string {
	parts := strings.Split(s, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParsePattern splits template and classifies each segment. A segment is a
// placeholder only when its first byte is '{' and its last byte is '}', so
// "{name}.text" stays a literal.
func ParsePattern(template string) Pattern {
	parts := Split(template)
	segs := make([]Segment, len(parts))
	for i, p := range parts {
		if len(p) >= 2 && p[0] == '{' && p[len(p)-1] == '}' {
			segs[i] = Segment{Kind: SegmentPlaceholder, Text: p, Name: p[1 : len(p)-1]}
			continue
		}
		segs[i] = Segment{Kind: SegmentLiteral, Text: p}
	}
	return Pattern{Segments: segs}
}

// Placeholders lists placeholder names in template order.
func (p Pattern) Placeholders() []string {
	var names []string
	for _, s := range p.Segments {
		if s.Kind == SegmentPlaceholder {
			names = append(names, s.Name)
		}
	}
	return names
}

// String renders the canonical template: a leading '/' and single slashes.
func (p Pattern) String() string {
	var b strings.Builder
	for _, s := range p.Segments {
		b.WriteByte('/')
		b.WriteString(s.Text)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
