// Package iterator implements the Walker (spec C6): an iterator over
// multi-part equipment tuples that yields only the tuples whose summed
// points cover what is still needed.
package iterator

import (
	"sort"

	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
)

// Entry is one candidate piece in the flat list the Walker iterates over.
type Entry struct {
	Part   string
	Points slots.Points
	UID    equipment.UID
}

// Walker yields probe tuples — one Entry index per distinct part in the
// input list — whose summed Points keep pace with a target as each
// coordinate is checked outer-to-inner (spec §4.5).
type Walker struct {
	entries    []Entry
	parts      []string
	partIdx    map[string]int
	byPart     [][]int // byPart[partIdx] = global indices into entries, in input order
	nextInPart [][]int // nextInPart[partIdx][globalIdx] = smallest later global index in that part, or len(entries)

	leftPoints slots.Points
	probe      []int // probe[partIdx] = current global index for that part
	started    bool
	exhausted  bool
}

// New builds a Walker over entries targeting leftPoints. Entries may come in
// any order: every probe is checked in full, so the order only decides the
// order in which probes are yielded.
func New(entries []Entry, leftPoints slots.Points) *Walker {
	w := &Walker{entries: entries, leftPoints: leftPoints, partIdx: map[string]int{}}

	seen := map[string]bool{}
	for _, e := range entries {
		if !seen[e.Part] {
			seen[e.Part] = true
			w.parts = append(w.parts, e.Part)
		}
	}
	sort.Strings(w.parts)
	for i, p := range w.parts {
		w.partIdx[p] = i
	}

	w.byPart = make([][]int, len(w.parts))
	for i, e := range entries {
		pi := w.partIdx[e.Part]
		w.byPart[pi] = append(w.byPart[pi], i)
	}

	w.nextInPart = make([][]int, len(w.parts))
	for pi, indices := range w.byPart {
		next := make([]int, len(entries)+1)
		cursor := len(entries)
		for g := len(entries) - 1; g >= 0; g-- {
			next[g] = cursor
			if containsInt(indices, g) {
				cursor = g
			}
		}
		next[len(entries)] = len(entries)
		w.nextInPart[pi] = next
	}

	w.probe = make([]int, len(w.parts))
	for pi, indices := range w.byPart {
		if len(indices) == 0 {
			w.exhausted = true
			continue
		}
		w.probe[pi] = indices[0]
	}
	return w
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Next advances the walker and returns the next feasible probe (the UID of
// the chosen entry for each part), or ok=false when the enumeration is
// exhausted.
func (w *Walker) Next() (probe map[string]equipment.UID, ok bool) {
	if w.exhausted {
		return nil, false
	}
	if !w.started {
		w.started = true
		if w.probeSatisfies() {
			return w.snapshot(), true
		}
	}

	for w.advance() {
		if w.probeSatisfies() {
			return w.snapshot(), true
		}
	}
	w.exhausted = true
	return nil, false
}

func (w *Walker) snapshot() map[string]equipment.UID {
	out := make(map[string]equipment.UID, len(w.parts))
	for pi, p := range w.parts {
		out[p] = w.entries[w.probe[pi]].UID
	}
	return out
}

// advance implements the scan-from-the-right re-seating step of spec §4.5:
// find the rightmost position that can move to its part's next entry, move
// it, and reset every position to its right to the first entry of its part,
// so that every combination of one entry per part is visited exactly once.
func (w *Walker) advance() bool {
	n := len(w.parts)
	for pos := n - 1; pos >= 0; pos-- {
		nextGlobal := w.nextInPart[pos][w.probe[pos]]
		if nextGlobal >= len(w.entries) {
			continue
		}
		w.probe[pos] = nextGlobal
		for j := pos + 1; j < n; j++ {
			w.probe[j] = w.byPart[j][0]
		}
		return true
	}
	return false
}

// firstAfter returns the smallest global index belonging to part partIdx
// that is strictly greater than floor.
func (w *Walker) firstAfter(partIdx, floor int) int {
	for _, g := range w.byPart[partIdx] {
		if g > floor {
			return g
		}
	}
	return len(w.entries)
}

// probeSatisfies reports whether the current probe's summed points cover
// leftPoints, checking coordinate 0 first and bailing out on the first
// failing coordinate per spec §4.5 step 4's monotonicity shortcut.
func (w *Walker) probeSatisfies() bool {
	var sum slots.Points
	for _, g := range w.probe {
		sum = sum.Add(w.entries[g].Points)
	}
	for i := range sum {
		if sum[i] < w.leftPoints[i] {
			return false
		}
	}
	return true
}
