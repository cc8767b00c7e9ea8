package probe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineclaw/mhrcalc/internal/calc/calculator"
	"github.com/nineclaw/mhrcalc/internal/calc/datamanager"
	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/probe"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

func TestRunSuggestsRoomForAnUnrequestedSkill(t *testing.T) {
	skillRecs := []catalog.SkillRecord{
		{ID: "attack", MaxLevel: 3},
		{ID: "defense", MaxLevel: 3},
	}
	armors := []catalog.ArmorRecord{
		{ID: "helm_a", Part: catalog.PartHelm, Sex: catalog.SexAll, Slots: [3]int8{1, 0, 0}},
	}
	decos := []catalog.DecorationRecord{
		{ID: "defense_1", SkillID: "defense", SkillLevel: 1, SlotSize: 1},
	}
	cat, err := catalog.New(armors, skillRecs, decos, "en")
	require.NoError(t, err)

	dc := deco.Build(cat)
	dm := datamanager.New(cat, dc, nil, nil)
	calc := calculator.New(dm, 200)

	req := &calculator.Request{SelectedSkills: skills.New(cat.SkillCount()), Sex: catalog.SexAll}
	answers, err := calc.Calculate(req)
	require.NoError(t, err)

	suggestions, err := probe.Run(context.Background(), cat, dc, req, answers, 2)
	require.NoError(t, err)

	sawDefense := false
	for _, s := range suggestions {
		if s.SkillID == "defense" && s.ToLevel == 1 {
			sawDefense = true
		}
	}
	assert.True(t, sawDefense)
}

func TestRunNeverSuggestsPastMaxLevel(t *testing.T) {
	skillRecs := []catalog.SkillRecord{{ID: "attack", MaxLevel: 1}}
	armors := []catalog.ArmorRecord{
		{ID: "helm_a", Part: catalog.PartHelm, Sex: catalog.SexAll, Slots: [3]int8{1, 0, 0}},
	}
	decos := []catalog.DecorationRecord{{ID: "attack_1", SkillID: "attack", SkillLevel: 1, SlotSize: 1}}
	cat, err := catalog.New(armors, skillRecs, decos, "en")
	require.NoError(t, err)

	dc := deco.Build(cat)
	dm := datamanager.New(cat, dc, nil, nil)
	calc := calculator.New(dm, 200)

	req := &calculator.Request{SelectedSkills: skills.New(cat.SkillCount()), Sex: catalog.SexAll}
	attackUID, _ := cat.SkillUID("attack")
	req.SelectedSkills.Set(attackUID, 1)

	answers, err := calc.Calculate(req)
	require.NoError(t, err)

	suggestions, err := probe.Run(context.Background(), cat, dc, req, answers, 1)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
