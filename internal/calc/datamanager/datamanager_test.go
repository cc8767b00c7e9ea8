package datamanager_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineclaw/mhrcalc/internal/calc/datamanager"
	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	skillRecs := []catalog.SkillRecord{
		{ID: "attack", MaxLevel: 4},
		{ID: "rare_skill", MaxLevel: 1}, // no decoration: "unique"
	}
	armors := []catalog.ArmorRecord{
		{ID: "helm_a", Part: catalog.PartHelm, Sex: catalog.SexAll, Skills: map[catalog.SkillID]int8{"attack": 2}},
		{ID: "helm_b", Part: catalog.PartHelm, Sex: catalog.SexAll, Skills: map[catalog.SkillID]int8{"attack": 1}, Slots: [3]int8{1, 0, 0}},
	}
	decos := []catalog.DecorationRecord{
		{ID: "attack_1", SkillID: "attack", SkillLevel: 1, SlotSize: 1},
	}
	cat, err := catalog.New(armors, skillRecs, decos, "en")
	require.NoError(t, err)
	return cat
}

func TestNewAssignsUidsAndBuildsEmptySlots(t *testing.T) {
	cat := testCatalog(t)
	dc := deco.Build(cat)
	m := datamanager.New(cat, dc, nil, nil)

	all := m.AllEquips()
	assert.Len(t, all, len(cat.Armors)+len(catalog.AllParts))
	for i, e := range all {
		assert.EqualValues(t, i, e.UID)
	}
}

func TestSplitSkillsSeparatesUniqueFromGeneral(t *testing.T) {
	cat := testCatalog(t)
	dc := deco.Build(cat)
	m := datamanager.New(cat, dc, nil, nil)

	req := skills.New(cat.SkillCount())
	attackUID, _ := cat.SkillUID("attack")
	rareUID, _ := cat.SkillUID("rare_skill")
	req.Set(attackUID, 2)
	req.Set(rareUID, 1)

	unique, general := m.SplitSkills(req)
	assert.Equal(t, []skills.UID{rareUID}, unique)
	assert.Equal(t, []skills.UID{attackUID}, general)
}

func TestGetPossibleUniqueEquipsIncludesEmptyPlaceholder(t *testing.T) {
	cat := testCatalog(t)
	dc := deco.Build(cat)
	m := datamanager.New(cat, dc, nil, nil)

	rareUID, _ := cat.SkillUID("rare_skill")
	out := m.GetPossibleUniqueEquips([]skills.UID{rareUID})

	helms := out[catalog.PartHelm]
	require.Len(t, helms, 1) // only the empty placeholder; no armor grants rare_skill
	assert.True(t, helms[0].IsEmpty())
}

// pointsCatalog mirrors the lcm=4 worked example: "attack" is unlocked by a
// skill_level=2 decoration and "helper_skill" by a skill_level=4 decoration,
// so the point-unit lcm across the catalog is lcm(2,4)=4.
func pointsCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	skillRecs := []catalog.SkillRecord{
		{ID: "attack", MaxLevel: 4},
		{ID: "helper_skill", MaxLevel: 4},
	}
	armors := []catalog.ArmorRecord{
		{ID: "helm_c", Part: catalog.PartHelm, Sex: catalog.SexAll, Skills: map[catalog.SkillID]int8{"attack": 3}},
	}
	decos := []catalog.DecorationRecord{
		{ID: "attack_2", SkillID: "attack", SkillLevel: 2, SlotSize: 1},
		{ID: "helper_4", SkillID: "helper_skill", SkillLevel: 4, SlotSize: 2},
	}
	cat, err := catalog.New(armors, skillRecs, decos, "en")
	require.NoError(t, err)
	return cat
}

// TestCalcEquipPointSlotsLPScalesLinearlyWithSkillLevel guards against
// undercounting a granted level as floor(level/skill_level) "copies" of the
// unit decoration instead of scaling it directly: a level-3 grant of a
// skill_level=2 skill, at lcm=4, is worth 3*(4/2)=6 points, not
// floor(3/2)*2=2.
func TestCalcEquipPointSlotsLPScalesLinearlyWithSkillLevel(t *testing.T) {
	cat := pointsCatalog(t)
	dc := deco.Build(cat)
	m := datamanager.New(cat, dc, nil, nil)
	require.EqualValues(t, 4, m.LCM())

	attackUID, _ := cat.SkillUID("attack")
	req := skills.New(cat.SkillCount())
	req.Set(attackUID, 4)

	helmC := m.PartEquips(catalog.PartHelm)[0]
	pts := m.CalcEquipPointSlotsLP(helmC, req)
	assert.EqualValues(t, 6, pts[0])
}

// TestRequestPointsScalesLinearlyWithSkillLevel mirrors the equip-side case
// for the request-only point image (no equipment-granted cap to apply).
func TestRequestPointsScalesLinearlyWithSkillLevel(t *testing.T) {
	cat := pointsCatalog(t)
	dc := deco.Build(cat)
	m := datamanager.New(cat, dc, nil, nil)

	attackUID, _ := cat.SkillUID("attack")
	req := skills.New(cat.SkillCount())
	req.Set(attackUID, 4)

	pts := m.RequestPoints(req)
	assert.EqualValues(t, 8, pts[0])
}

func TestAssignPointsOrdersDescending(t *testing.T) {
	cat := testCatalog(t)
	dc := deco.Build(cat)
	m := datamanager.New(cat, dc, nil, nil)

	req := skills.New(cat.SkillCount())
	attackUID, _ := cat.SkillUID("attack")
	req.Set(attackUID, 2)

	ordered := m.AssignPoints(req)
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i-1].Points.CompareOuterToInner(ordered[i].Points) >= 0)
	}
}
