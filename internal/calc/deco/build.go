package deco

import (
	"sort"
	"sync"

	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// skillCombos holds, for one skill uid, the Pareto-minimal LP combinations
// achievable at every level 1..MaxLevel, plus their componentwise mins.
type skillCombos struct {
	lp  [][]slots.Vec // lp[level-1] = minimal LP combos, ascending lexicographic
	min []slots.Vec   // min[level-1] = componentwise min of lp[level-1]
}

// Cache is DecoCombinations (spec C3): the per-skill enumeration built once
// from the catalog, plus the read-mostly aggregate query caches layered over
// it (spec §4.3, §9).
type Cache struct {
	bySkill []skillCombos // indexed by skills.UID

	mu         sync.RWMutex
	combsCache map[string][]slots.Vec
	sumCache   map[string]slots.Vec
	fullCache  map[string][]Combination
}

// Build constructs the per-skill combination tables from cat's decorations.
// Skills with no decorations get an empty entry; DecoCombinations-dependent
// queries treat that as "no combination possible" rather than an error.
func Build(cat *catalog.Catalog) *Cache {
	bySkill := make([]skillCombos, cat.SkillCount())

	grouped := make(map[skills.UID][]decoGroup)
	for _, d := range cat.Decorations {
		uid, ok := cat.SkillUID(d.SkillID)
		if !ok {
			continue
		}
		grouped[uid] = append(grouped[uid], decoGroup{SkillLevel: d.SkillLevel, SlotSize: d.SlotSize})
	}

	for uid, decos := range grouped {
		sort.Slice(decos, func(i, j int) bool { return decos[i].SkillLevel < decos[j].SkillLevel })

		rec := cat.SkillRecordByUID(uid)
		if rec.MaxLevel <= 0 {
			continue
		}
		sc := skillCombos{
			lp:  make([][]slots.Vec, rec.MaxLevel),
			min: make([]slots.Vec, rec.MaxLevel),
		}
		for level := int8(1); level <= rec.MaxLevel; level++ {
			raws := minimalRawCombos(decos, level)
			raws = paretoMinimalRaw(raws)
			lps := make([]slots.Vec, len(raws))
			for i, r := range raws {
				lps[i] = slots.ToLP(r)
			}
			sort.Slice(lps, func(i, j int) bool { return lexLess(lps[i], lps[j]) })
			sc.lp[level-1] = lps
			sc.min[level-1] = componentwiseMin(lps)
		}
		bySkill[uid] = sc
	}

	return &Cache{
		bySkill:    bySkill,
		combsCache: make(map[string][]slots.Vec),
		sumCache:   make(map[string]slots.Vec),
		fullCache:  make(map[string][]Combination),
	}
}

// minimalRawCombos enumerates, for one skill's decorations (ascending by
// skill level) and a target level, every raw slot-count vector that is a
// minimal way to reach or exceed target: extending any further decoration
// past the point the partial sum meets target can never improve on a
// combination already recorded, so each DFS branch stops there (spec §4.3
// step 1-2).
func minimalRawCombos(decos []decoGroup, target int8) []slots.Vec {
	var out []slots.Vec
	counts := make([]int8, len(decos))

	var rec func(i int, sum int8)
	rec = func(i int, sum int8) {
		if i == len(decos) {
			return
		}
		// Skip this decoration entirely and move on.
		rec(i+1, sum)

		maxCount := ceilDiv(target-sum, decos[i].SkillLevel)
		prev := counts[i]
		for c := int8(1); c <= maxCount; c++ {
			counts[i] = c
			newSum := sum + c*decos[i].SkillLevel
			if newSum >= target {
				out = append(out, rawFromCounts(decos, counts))
			} else {
				rec(i+1, newSum)
			}
		}
		counts[i] = prev
	}
	rec(0, 0)
	return out
}

func rawFromCounts(decos []decoGroup, counts []int8) slots.Vec {
	var v slots.Vec
	for i, c := range counts {
		if c > 0 {
			v[decos[i].SlotSize-1] += slots.Count(c)
		}
	}
	return v
}

func ceilDiv(n, d int8) int8 {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// paretoMinimalRaw removes duplicates and any vector coordinate-wise
// dominated by another (spec §4.3 step 3: "remove combinations that are
// coordinate-wise >= some other combination").
func paretoMinimalRaw(in []slots.Vec) []slots.Vec {
	seen := make(map[slots.Vec]bool)
	var uniq []slots.Vec
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			uniq = append(uniq, v)
		}
	}

	var out []slots.Vec
	for i, a := range uniq {
		dominated := false
		for j, b := range uniq {
			if i == j {
				continue
			}
			if b.LessEqual(a) && b != a {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, a)
		}
	}
	return out
}

func lexLess(a, b slots.Vec) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func componentwiseMin(vs []slots.Vec) slots.Vec {
	if len(vs) == 0 {
		return slots.Vec{}
	}
	out := vs[0]
	for _, v := range vs[1:] {
		for i := range out {
			if v[i] < out[i] {
				out[i] = v[i]
			}
		}
	}
	return out
}
