// Package slots implements the fixed-width slot-count algebra used by the
// calculation engine: conversions between raw slot-size vectors and their
// cumulative ("long-prefix", or LP) form, coordinate-wise feasibility, and
// promotion of negative LP residues produced by subtracting two LP vectors.
package slots

// MaxLevel is the largest decoration/slot size (L in the spec).
const MaxLevel = 4

// Count is a signed slot or skill-level count. Transient arithmetic (LP
// differences) may go negative; raw, displayable counts never do.
type Count int8

// Vec is a fixed-width vector of Count, interpreted either as raw counts by
// slot size (index i holds the count of size-(i+1) slots) or as its LP
// transform (index i holds the cumulative count of slots of size >= i+1).
type Vec [MaxLevel]Count

// Points is a fixed-width vector of 32-bit potential units, one per LP
// class, used by the equipment indexer (C4/C5) and the walker (C6).
type Points [MaxLevel]int32

// ToLP converts a raw slot-size vector into its cumulative LP form:
// LP[i] = raw[i] + raw[i+1] + ... + raw[L-1].
func ToLP(raw Vec) Vec {
	var lp Vec
	var acc Count
	for i := MaxLevel - 1; i >= 0; i-- {
		acc += raw[i]
		lp[i] = acc
	}
	return lp
}

// FromLP is the inverse of ToLP: raw[i] = lp[i] - lp[i+1], treating
// lp[MaxLevel] as 0. The result may contain negative entries if lp is not a
// valid (non-increasing) cumulative vector; callers that need a displayable
// result should run PromoteNegative first.
func FromLP(lp Vec) Vec {
	var raw Vec
	for i := 0; i < MaxLevel; i++ {
		next := Count(0)
		if i+1 < MaxLevel {
			next = lp[i+1]
		}
		raw[i] = lp[i] - next
	}
	return raw
}

// DominatesLP reports whether a dominates b coordinate-wise, i.e. whether
// slot supply a covers jewel demand b (both already in LP form).
func DominatesLP(a, b Vec) bool {
	for i := 0; i < MaxLevel; i++ {
		if a[i] < b[i] {
			return false
		}
	}
	return true
}

// AddLP returns the coordinate-wise sum of two LP vectors.
func AddLP(a, b Vec) Vec {
	var out Vec
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// SubLP returns the coordinate-wise difference a - b of two LP vectors.
// The result may be negative and non-monotone; use PromoteNegative before
// treating it as a displayable raw-convertible vector.
func SubLP(a, b Vec) Vec {
	var out Vec
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

// GEZero reports whether every coordinate of lp is non-negative.
func GEZero(lp Vec) bool {
	for _, v := range lp {
		if v < 0 {
			return false
		}
	}
	return true
}

// PromoteNegative walks an LP vector left to right; whenever lp[i] is less
// than lp[i+1] (which means FromLP would yield a negative raw count at i,
// i.e. a larger-class slot was consumed to cover a smaller-class demand),
// it promotes the shortfall: lp[i] is left as it is and the deficit is
// carried into lp[i+1] (lp[i+1] drops to lp[i]), which pins raw[i] to zero.
// This is always legal because a larger slot subsumes a smaller one. The
// returned ok is false iff a deficit remains uncarryable past the last
// coordinate, i.e. the vector is genuinely infeasible (negative even after
// promotion).
func PromoteNegative(lp Vec) (promoted Vec, ok bool) {
	out := lp
	for i := 0; i < MaxLevel-1; i++ {
		deficit := out[i+1] - out[i]
		if deficit > 0 {
			out[i+1] -= deficit
		}
	}
	return out, GEZero(out)
}

// PromoteNegativeRaw runs PromoteNegative and additionally converts the
// promoted LP vector to its raw form, for result-display purposes (spec
// §4.1's "second form" that writes the residue into a raw-form output).
func PromoteNegativeRaw(lp Vec) (promotedLP Vec, raw Vec, ok bool) {
	promotedLP, ok = PromoteNegative(lp)
	raw = FromLP(promotedLP)
	return promotedLP, raw, ok
}

// Sum returns the total of every coordinate, used by ResultBuilder's
// "total leftover" tie-break (spec §4.7).
func (v Vec) Sum() int64 {
	var total int64
	for _, c := range v {
		total += int64(c)
	}
	return total
}

// LessEqual reports whether v is coordinate-wise <= other.
func (v Vec) LessEqual(other Vec) bool {
	for i := range v {
		if v[i] > other[i] {
			return false
		}
	}
	return true
}

// Dominates reports whether v coordinate-wise >= other (v dominates other
// under the >= order used throughout §4.4).
func (v Vec) Dominates(other Vec) bool {
	return DominatesLP(v, other)
}

// Sum returns the total of every coordinate.
func (p Points) Sum() int64 {
	var total int64
	for _, c := range p {
		total += int64(c)
	}
	return total
}

// Add returns the coordinate-wise sum of two Points vectors.
func (p Points) Add(other Points) Points {
	var out Points
	for i := range out {
		out[i] = p[i] + other[i]
	}
	return out
}

// Sub returns the coordinate-wise difference p - other.
func (p Points) Sub(other Points) Points {
	var out Points
	for i := range out {
		out[i] = p[i] - other[i]
	}
	return out
}

// GEOuterToInner compares p and other lexicographically from index 0
// (the largest LP class) inward and reports whether p >= other in that
// order (the boolean form of CompareOuterToInner).
func (p Points) GEOuterToInner(other Points) bool {
	for i := range p {
		if p[i] != other[i] {
			return p[i] > other[i]
		}
	}
	return true
}

// CompareOuterToInner returns -1, 0, or 1 comparing p and other
// lexicographically outer-to-inner (index 0 first), for use with sort.Slice.
func (p Points) CompareOuterToInner(other Points) int {
	for i := range p {
		if p[i] != other[i] {
			if p[i] > other[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
