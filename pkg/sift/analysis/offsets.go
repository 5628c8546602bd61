package analysis

import "sort"

// OffsetMap translates offsets in char-filtered text back to offsets in the
// text the char filter received. It records checkpoints: from a checkpoint's
// offset onwards, corrected = offset + diff.
type OffsetMap struct {
	offsets []int
	diffs   []int
}

// Add records that offsets at or after off (in filtered text) are shifted by
// cumulativeDiff bytes relative to the input. Checkpoints must be added in
// increasing offset order. Several checkpoints may share an offset when text
// was removed there: starts use the last one, ends the first.
func (m *OffsetMap) Add(off, cumulativeDiff int) {
	if n := len(m.offsets); n > 0 && m.offsets[n-1] == off && m.diffs[n-1] == cumulativeDiff {
		return
	}
	m.offsets = append(m.offsets, off)
	m.diffs = append(m.diffs, cumulativeDiff)
}

// Correct maps a start offset in filtered text to the input text.
func (m *OffsetMap) Correct(off int) int {
	if m == nil || len(m.offsets) == 0 {
		return off
	}
	i := sort.SearchInts(m.offsets, off+1) - 1
	if i < 0 {
		return off
	}
	return off + m.diffs[i]
}

// CorrectEnd maps an end offset in filtered text to the input text. Text
// removed right after the end, such as a closing tag, is not covered.
func (m *OffsetMap) CorrectEnd(off int) int {
	if m == nil || len(m.offsets) == 0 {
		return off
	}
	i := sort.SearchInts(m.offsets, off)
	if i < len(m.offsets) && m.offsets[i] == off {
		return off + m.diffs[i]
	}
	if i == 0 {
		return off
	}
	return off + m.diffs[i-1]
}

// Empty reports whether the map performs no correction.
func (m *OffsetMap) Empty() bool {
	return m == nil || len(m.offsets) == 0
}

// correctingStage rewrites the offsets of its upstream through a chain of
// offset maps, innermost char filter last.
type correctingStage struct {
	in   Stage
	maps []*OffsetMap
	done bool
}

func (s *correctingStage) Advance() bool {
	if s.done {
		return false
	}
	if !s.in.Advance() {
		s.done = true
		return false
	}
	t := s.in.Token()
	for i := len(s.maps) - 1; i >= 0; i-- {
		t.OffsetFrom = s.maps[i].Correct(t.OffsetFrom)
		t.OffsetTo = s.maps[i].CorrectEnd(t.OffsetTo)
	}
	if t.OffsetTo < t.OffsetFrom {
		t.OffsetTo = t.OffsetFrom
	}
	return true
}

func (s *correctingStage) Token() *Token { return s.in.Token() }
