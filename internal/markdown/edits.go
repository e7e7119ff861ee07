package markdown

import (
	"sort"

	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
)

// Edit represents a targeted byte-range replacement.
//
// Start and End are byte offsets into the original source, with End exclusive.
// Replacement replaces source[Start:End]. An edit with Start == End is an
// insertion.
//
// Edits let the annotator add markup around code blocks without re-rendering
// any of the surrounding Markdown.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies a set of byte-range edits to source and returns the updated content.
//
// Edits must be non-overlapping and refer to offsets in the original source.
// At most one insertion may target a given offset. The source slice is never
// modified.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	size := len(source)
	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(source) {
			return nil, errors.FormatError("invalid edit range").
				WithContext("edit", i).
				WithContext("start", e.Start).
				WithContext("end", e.End).
				Build()
		}
		if i > 0 {
			prev := sorted[i-1]
			// Sorted ascending, so the previous edit must end at or before this
			// one starts. Two insertions at one offset have no defined order.
			if prev.End > e.Start || (prev.Start == e.Start && prev.End == prev.Start && e.End == e.Start) {
				return nil, errors.FormatError("overlapping edits").
					WithContext("start", e.Start).
					Build()
			}
		}
		size += len(e.Replacement) - (e.End - e.Start)
	}

	out := make([]byte, 0, size)
	last := 0
	for _, e := range sorted {
		out = append(out, source[last:e.Start]...)
		out = append(out, e.Replacement...)
		last = e.End
	}
	out = append(out, source[last:]...)
	return out, nil
}
