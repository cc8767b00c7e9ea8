// Package skills provides a dense, fixed-width container mapping skill uid
// to skill level, used throughout the calculation engine as both a working
// accumulator and a hashable cache key.
package skills

import "fmt"

// UID is a dense, catalog-assigned skill identifier in [0, Count).
type UID int

// Level is a skill level. Negative values are legal as transient results of
// Diff/Sub; Container never stores them once ClearZeros has run.
type Level int8

// Pair is one (uid, level) entry, as produced by List.
type Pair struct {
	UID   UID
	Level Level
}

// Container is a dense vector indexed by skill uid. Equality and hashing are
// defined over the underlying vector; List skips zero entries and is used
// as a stable, uid-ordered cache key.
type Container struct {
	levels []Level
}

// New returns a zero-valued Container sized for n skills.
//
// Precondition: n >= 0.
func New(n int) *Container {
	return &Container{levels: make([]Level, n)}
}

// Len returns the container's fixed width.
func (c *Container) Len() int { return len(c.levels) }

// Get returns the level stored at uid, or 0 if uid is out of range.
func (c *Container) Get(uid UID) Level {
	if int(uid) < 0 || int(uid) >= len(c.levels) {
		return 0
	}
	return c.levels[uid]
}

// Set stores level at uid.
//
// Precondition: 0 <= uid < c.Len().
func (c *Container) Set(uid UID, level Level) {
	c.mustInRange(uid)
	c.levels[uid] = level
}

// Clone returns an independent copy of c.
func (c *Container) Clone() *Container {
	out := &Container{levels: make([]Level, len(c.levels))}
	copy(out.levels, c.levels)
	return out
}

// Add returns a new container holding c[i] + other[i] for every uid.
//
// Precondition: c.Len() == other.Len().
func (c *Container) Add(other *Container) *Container {
	c.mustSameLen(other)
	out := New(c.Len())
	for i := range c.levels {
		out.levels[i] = c.levels[i] + other.levels[i]
	}
	return out
}

// Diff returns a new container holding c[i] - other[i] for every uid. The
// result may contain negative levels; it is not clamped.
//
// Precondition: c.Len() == other.Len().
func (c *Container) Diff(other *Container) *Container {
	c.mustSameLen(other)
	out := New(c.Len())
	for i := range c.levels {
		out.levels[i] = c.levels[i] - other.levels[i]
	}
	return out
}

// Sub is an alias for Diff, matching the spec's naming for the
// "a minus b, may produce negative transient values" operation.
func (c *Container) Sub(other *Container) *Container { return c.Diff(other) }

// SubMut replaces c and other in place with the positive residue of their
// difference at every coordinate: whichever side is larger keeps
// (a[i]-b[i]) or (b[i]-a[i]) respectively, and the other side is zeroed.
// This is an atomic swap of residues, not two independent subtractions.
//
// Precondition: c.Len() == other.Len().
func (c *Container) SubMut(other *Container) {
	c.mustSameLen(other)
	for i := range c.levels {
		d := c.levels[i] - other.levels[i]
		if d > 0 {
			c.levels[i] = d
			other.levels[i] = 0
		} else {
			c.levels[i] = 0
			other.levels[i] = -d
		}
	}
}

// ClearZeros clamps every negative level to zero, in place.
func (c *Container) ClearZeros() {
	for i, lv := range c.levels {
		if lv < 0 {
			c.levels[i] = 0
		}
	}
}

// List returns the uid-ordered pairs of strictly positive entries. The
// result is used as a deterministic, hashable key for the DecoCombinations
// caches (spec §4.3, §9 "caches keyed by required-skills list").
func (c *Container) List() []Pair {
	var out []Pair
	for i, lv := range c.levels {
		if lv > 0 {
			out = append(out, Pair{UID: UID(i), Level: lv})
		}
	}
	return out
}

// Key returns a comparable, order-preserving string encoding of List(),
// suitable for use as a map key in the C3 caches.
func (c *Container) Key() string {
	var b []byte
	for _, p := range c.List() {
		b = append(b, []byte(fmt.Sprintf("%d:%d;", p.UID, p.Level))...)
	}
	return string(b)
}

// Equal reports whether c and other hold identical vectors.
func (c *Container) Equal(other *Container) bool {
	if other == nil || len(c.levels) != len(other.levels) {
		return false
	}
	for i := range c.levels {
		if c.levels[i] != other.levels[i] {
			return false
		}
	}
	return true
}

func (c *Container) mustSameLen(other *Container) {
	if other == nil || len(c.levels) != len(other.levels) {
		panic("skills: container length mismatch")
	}
}

func (c *Container) mustInRange(uid UID) {
	if int(uid) < 0 || int(uid) >= len(c.levels) {
		panic(fmt.Sprintf("skills: uid %d out of range [0,%d)", uid, len(c.levels)))
	}
}
