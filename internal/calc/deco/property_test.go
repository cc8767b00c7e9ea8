package deco_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// A randomly generated decoration table always yields, for every level it
// supports, a combination set whose every entry is sufficient
// (HasPossibleCombsLP accepts a supply equal to it) and a componentwise
// minimum (PossibleDecoCombsSum) that is a tight lower bound: every entry
// dominates it, and lowering any one of its coordinates admits no entry.
func TestBuiltCombosAreSufficientAndMinimal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 4).Draw(t, "decoCount")
		var decos []catalog.DecorationRecord
		for i := 0; i < n; i++ {
			decos = append(decos, catalog.DecorationRecord{
				ID:         rapid.StringMatching(`d[0-9]`).Draw(t, "id"),
				SkillID:    "s",
				SkillLevel: int8(rapid.IntRange(1, 3).Draw(t, "level")),
				SlotSize:   int8(rapid.IntRange(1, 4).Draw(t, "slot")),
			})
		}
		maxLevel := int8(rapid.IntRange(1, 6).Draw(t, "maxLevel"))
		cat, err := catalog.New(nil, []catalog.SkillRecord{{ID: "s", MaxLevel: maxLevel}}, decos, "en")
		if err != nil {
			t.Fatal(err)
		}

		c := deco.Build(cat)
		level := rapid.IntRange(1, int(maxLevel)).Draw(t, "reqLevel")
		req := skills.New(1)
		req.Set(0, skills.Level(level))

		sum, ok := c.PossibleDecoCombsSum(req)
		if !ok {
			return
		}

		for _, comb := range c.GetFullPossibleCombs(req) {
			if !c.HasPossibleCombsLP(req, comb.SumLP) {
				t.Fatalf("recorded combination %v does not actually satisfy level %d", comb.SumLP, level)
			}
			if !slots.DominatesLP(comb.SumLP, sum) {
				t.Fatalf("recorded min %v is not a lower bound: combination %v falls below it at level %d", sum, comb.SumLP, level)
			}
		}

		below := sum
		shrunk := false
		for i := range below {
			if below[i] > 0 {
				below[i]--
				shrunk = true
				break
			}
		}
		if shrunk && c.HasPossibleCombsLP(req, below) {
			t.Fatalf("min %v is not actually minimal: %v also suffices", sum, below)
		}
	})
}

func TestPossibleCombsLPNeverExceedsAvailability(t *testing.T) {
	cat, err := catalog.New(nil,
		[]catalog.SkillRecord{{ID: "attack", MaxLevel: 4}},
		[]catalog.DecorationRecord{
			{ID: "a1", SkillID: "attack", SkillLevel: 1, SlotSize: 1},
			{ID: "a2", SkillID: "attack", SkillLevel: 2, SlotSize: 2},
		}, "en")
	if err != nil {
		t.Fatal(err)
	}
	c := deco.Build(cat)

	req := skills.New(1)
	req.Set(0, 3)
	avail := slots.ToLP(slots.Vec{2, 1, 0, 0})

	for _, sum := range c.PossibleCombsLP(req, avail) {
		if !slots.DominatesLP(avail, sum) {
			t.Fatalf("combination %v exceeds availability %v", sum, avail)
		}
	}
}
