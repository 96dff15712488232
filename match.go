package pathex

// Match walks candidate and pattern segments pairwise. Placeholders bind the
// coerced candidate text (a repeated name keeps the last value); literals
// must match byte for byte.
func Match(candidate []string, p Pattern) (ParameterSet, error) {
	if len(candidate) != len(p.Segments) {
		return ParameterSet{}, missingParams(len(candidate), len(p.Segments))
	}
	ps := NewParameterSet()
	for i, seg := range p.Segments {
		got := candidate[i]
		if seg.Kind == SegmentPlaceholder {
			ps.Set(seg.Name, Coerce(got))
			continue
		}
		if got != seg.Text {
			return ParameterSet{}, invalidFormat(i, seg.Text, got)
		}
	}
	return ps, nil
}

// MatchString is Match on an unsplit candidate.
func (p Pattern) MatchString(candidate string) (ParameterSet, error) {
	return Match(Split(candidate), p)
}
