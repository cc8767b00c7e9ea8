package deco_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	skillRecs := []catalog.SkillRecord{
		{ID: "attack", MaxLevel: 4},
		{ID: "expert", MaxLevel: 3},
	}
	decos := []catalog.DecorationRecord{
		{ID: "attack_1", SkillID: "attack", SkillLevel: 1, SlotSize: 1},
		{ID: "attack_2", SkillID: "attack", SkillLevel: 2, SlotSize: 2},
		{ID: "expert_1", SkillID: "expert", SkillLevel: 1, SlotSize: 1},
	}
	cat, err := catalog.New(nil, skillRecs, decos, "en")
	require.NoError(t, err)
	return cat
}

func TestBuildProducesMinimalCombosPerLevel(t *testing.T) {
	c := deco.Build(testCatalog(t))

	req := skills.New(2)
	req.Set(0, 2) // attack level 2: either two size-1 jewels, or one size-2 jewel
	avail := slots.ToLP(slots.Vec{2, 1, 0, 0})

	combs := c.PossibleCombsLP(req, avail)
	require.NotEmpty(t, combs)
}

func TestPossibleDecoCombsSumIsLowerBound(t *testing.T) {
	c := deco.Build(testCatalog(t))

	req := skills.New(2)
	req.Set(0, 1)
	req.Set(1, 1)

	sum, ok := c.PossibleDecoCombsSum(req)
	require.True(t, ok)
	// Both skills are satisfiable with a single size-1 jewel each.
	assert.EqualValues(t, 2, sum[0])
}

func TestHasPossibleCombsLPRespectsSupply(t *testing.T) {
	c := deco.Build(testCatalog(t))

	req := skills.New(2)
	req.Set(0, 4) // attack level 4 needs at least two slots

	assert.False(t, c.HasPossibleCombsLP(req, slots.ToLP(slots.Vec{0, 0, 0, 0})))
	assert.True(t, c.HasPossibleCombsLP(req, slots.ToLP(slots.Vec{0, 2, 0, 0})))
}

func TestHasPossibleCombsLPEmptyRequestAlwaysSatisfiable(t *testing.T) {
	c := deco.Build(testCatalog(t))
	req := skills.New(2)

	assert.True(t, c.HasPossibleCombsLP(req, slots.Vec{}))
}

func TestGetFullPossibleCombsCoversCartesianProduct(t *testing.T) {
	c := deco.Build(testCatalog(t))

	req := skills.New(2)
	req.Set(0, 2)
	req.Set(1, 1)

	combos := c.GetFullPossibleCombs(req)
	require.NotEmpty(t, combos)
	for _, comb := range combos {
		_, hasAttack := comb.CombsPerSkillLP[0]
		_, hasExpert := comb.CombsPerSkillLP[1]
		assert.True(t, hasAttack)
		assert.True(t, hasExpert)
	}
}

func TestUnknownSkillYieldsNoCombinations(t *testing.T) {
	c := deco.Build(testCatalog(t))

	req := skills.New(3)
	req.Set(2, 1) // skill uid 2 has no decorations in the test catalog

	assert.False(t, c.HasPossibleCombsLP(req, slots.Vec{4, 4, 4, 4}))
	combos := c.GetFullPossibleCombs(req)
	assert.Empty(t, combos)
}
