package deco

import (
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
)

func (c *Cache) combosFor(uid skills.UID, level skills.Level) []slots.Vec {
	if int(uid) < 0 || int(uid) >= len(c.bySkill) {
		return nil
	}
	sc := c.bySkill[uid]
	if int(level) < 1 || int(level) > len(sc.lp) {
		return nil
	}
	return sc.lp[level-1]
}

// CombosLen returns how many Pareto-minimal combinations exist for
// (uid, level) — used by check_static_conditions to recognize skills with
// exactly one possible placement (spec §4.6).
func (c *Cache) CombosLen(uid skills.UID, level skills.Level) int {
	return len(c.combosFor(uid, level))
}

// CheapestCombo returns the cheapest recorded combination for (uid, level)
// from the combinations_lp list: the first entry of the ascending-sorted
// Pareto frontier,
// which is lexicographically cheapest in the largest slot class first.
func (c *Cache) CheapestCombo(uid skills.UID, level skills.Level) (slots.Vec, bool) {
	combs := c.combosFor(uid, level)
	if len(combs) == 0 {
		return slots.Vec{}, false
	}
	return combs[0], true
}

func (c *Cache) minFor(uid skills.UID, level skills.Level) (slots.Vec, bool) {
	if int(uid) < 0 || int(uid) >= len(c.bySkill) {
		return slots.Vec{}, false
	}
	sc := c.bySkill[uid]
	if int(level) < 1 || int(level) > len(sc.min) {
		return slots.Vec{}, false
	}
	return sc.min[level-1], true
}

// PossibleCombsLP returns every LP vector achievable by picking exactly one
// minimal per-skill combination for each (uid, level) pair in req and
// summing them, restricted to sums that availLP can still cover. It is the
// cached form of spec §4.3's "get_possible_combs_lp": a ping-pong build over
// the requested skills, abandoning a partial sum as soon as its largest-class
// coordinate alone already exceeds supply, and skipping later per-skill
// combinations that repeat a coordinate already known to fail. The cache is
// keyed by req alone: a later call with the same req returns the sums
// computed for the first call's availLP, whatever availLP it passes.
func (c *Cache) PossibleCombsLP(req *skills.Container, availLP slots.Vec) []slots.Vec {
	key := req.Key()

	c.mu.RLock()
	if v, ok := c.combsCache[key]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	pairs := req.List()
	buf := []slots.Vec{{}}

	for _, p := range pairs {
		combs := c.combosFor(p.UID, p.Level)
		if len(combs) == 0 {
			buf = nil
			break
		}
		var next []slots.Vec
		for _, partial := range buf {
			prevIdx := -1
			var prevVal slots.Count
		combsLoop:
			for _, comb := range combs {
				if prevIdx >= 0 && comb[prevIdx] == prevVal {
					continue
				}
				sum := slots.AddLP(partial, comb)
				if availLP[0] < sum[0] {
					break combsLoop
				}
				for idx := 1; idx < slots.MaxLevel; idx++ {
					if availLP[idx] < sum[idx] {
						prevIdx = idx
						prevVal = comb[idx-1]
						continue combsLoop
					}
				}
				next = append(next, sum)
			}
		}
		buf = next
		if len(buf) == 0 {
			break
		}
	}

	c.mu.Lock()
	c.combsCache[key] = buf
	c.mu.Unlock()
	return buf
}

// PossibleDecoCombsSum returns the componentwise sum, across every
// (skill, level) pair in req, of that pair's componentwise-minimal LP
// combination. It is a cheap lower bound on slot demand, used to reject a
// candidate before running the full PossibleCombsLP enumeration (spec §4.3
// "combinations_lp_mins").
func (c *Cache) PossibleDecoCombsSum(req *skills.Container) (slots.Vec, bool) {
	key := req.Key()

	c.mu.RLock()
	if v, ok := c.sumCache[key]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	var sum slots.Vec
	for _, p := range req.List() {
		m, ok := c.minFor(p.UID, p.Level)
		if !ok {
			return slots.Vec{}, false
		}
		sum = slots.AddLP(sum, m)
	}

	c.mu.Lock()
	c.sumCache[key] = sum
	c.mu.Unlock()
	return sum, true
}

// GetFullPossibleCombs returns every full decoration placement: one choice
// of per-skill minimal combination for each (uid, level) pair in req,
// covering the full Cartesian product (spec §4.3 "get_full_possible_combs").
// The result is cached; a concurrent duplicate build is harmless since both
// compute the same value (idempotent last-writer-wins, spec §9).
func (c *Cache) GetFullPossibleCombs(req *skills.Container) []Combination {
	key := req.Key()

	c.mu.RLock()
	if v, ok := c.fullCache[key]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	pairs := req.List()
	if len(pairs) == 0 {
		out := []Combination{{CombsPerSkillLP: map[skills.UID]slots.Vec{}, SumLP: slots.Vec{}}}
		c.mu.Lock()
		c.fullCache[key] = out
		c.mu.Unlock()
		return out
	}

	perPair := make([][]slots.Vec, len(pairs))
	for i, p := range pairs {
		perPair[i] = c.combosFor(p.UID, p.Level)
		if len(perPair[i]) == 0 {
			c.mu.Lock()
			c.fullCache[key] = nil
			c.mu.Unlock()
			return nil
		}
	}

	var out []Combination
	idx := make([]int, len(pairs))
	for {
		per := make(map[skills.UID]slots.Vec, len(pairs))
		var sum slots.Vec
		for i, p := range pairs {
			comb := perPair[i][idx[i]]
			per[p.UID] = comb
			sum = slots.AddLP(sum, comb)
		}
		out = append(out, Combination{CombsPerSkillLP: per, SumLP: sum})

		if !odometerAdvance(idx, perPair) {
			break
		}
	}

	c.mu.Lock()
	c.fullCache[key] = out
	c.mu.Unlock()
	return out
}

// HasPossibleCombsLP reports whether any full placement from
// GetFullPossibleCombs fits within availLP, short-circuiting on the first
// match rather than building the complete set (spec §4.3
// "has_possible_combs_lp").
func (c *Cache) HasPossibleCombsLP(req *skills.Container, availLP slots.Vec) bool {
	pairs := req.List()
	if len(pairs) == 0 {
		return true
	}

	perPair := make([][]slots.Vec, len(pairs))
	for i, p := range pairs {
		perPair[i] = c.combosFor(p.UID, p.Level)
		if len(perPair[i]) == 0 {
			return false
		}
	}

	idx := make([]int, len(pairs))
	for {
		var sum slots.Vec
		for i := range pairs {
			sum = slots.AddLP(sum, perPair[i][idx[i]])
		}
		if slots.DominatesLP(availLP, sum) {
			return true
		}
		if !odometerAdvance(idx, perPair) {
			return false
		}
	}
}

// odometerAdvance increments idx as a mixed-radix counter over lists'
// per-position lengths, carrying left to right. It returns false once every
// position has wrapped back to 0, signaling the enumeration is complete.
func odometerAdvance(idx []int, lists [][]slots.Vec) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(lists[i]) {
			return true
		}
		idx[i] = 0
	}
	return false
}
