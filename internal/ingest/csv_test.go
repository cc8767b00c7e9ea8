package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/catalog"
	"github.com/nineclaw/mhrcalc/internal/ingest"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	skillRecs := []catalog.SkillRecord{
		{ID: "attack", MaxLevel: 7, Names: map[string]string{"en": "Attack Boost"}},
		{ID: "defense", MaxLevel: 7, Names: map[string]string{"en": "Defense Boost"}},
	}
	armors := []catalog.ArmorRecord{
		{
			ID: "helm_a", Part: catalog.PartHelm, Sex: catalog.SexAll,
			Names: map[string]string{"en": "Ingot Helm"},
			Stat:  catalog.StatBlock{Defense: 20},
			Skills: map[catalog.SkillID]int8{"attack": 1},
			Slots:  [3]int8{1, 0, 0},
		},
	}
	cat, err := catalog.New(armors, skillRecs, nil, "en")
	require.NoError(t, err)
	return cat
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAnomalyArmorsAppliesDiffsOnTopOfBase(t *testing.T) {
	cat := testCatalog(t)
	path := writeCSV(t, "Ingot Helm,5,0,0,0,0,0,1,0,0,Attack Boost,1\n")

	armors, err := ingest.LoadAnomalyArmors(path, cat)
	require.NoError(t, err)
	require.Len(t, armors, 1)

	a := armors[0]
	assert.Equal(t, "helm_a", a.BaseID)
	assert.Equal(t, equipment.VariantAnomalyArmor, a.Variant)
	assert.EqualValues(t, 25, a.Stat.Defense)
	assert.EqualValues(t, 20, a.BaseStat.Defense)

	attackUID, _ := cat.SkillUID("attack")
	assert.EqualValues(t, 2, a.Skills.Get(attackUID))
	assert.EqualValues(t, 1, a.BaseSkills.Get(attackUID))
}

func TestLoadAnomalyArmorsResolvesByCatalogID(t *testing.T) {
	cat := testCatalog(t)
	path := writeCSV(t, "helm_a,0,0,0,0,0,0,0,0,0\n")

	armors, err := ingest.LoadAnomalyArmors(path, cat)
	require.NoError(t, err)
	require.Len(t, armors, 1)
	assert.Equal(t, "helm_a", armors[0].BaseID)
}

func TestLoadAnomalyArmorsUnknownArmorNameFails(t *testing.T) {
	cat := testCatalog(t)
	path := writeCSV(t, "Nonexistent Helm,0,0,0,0,0,0,0,0,0\n")

	_, err := ingest.LoadAnomalyArmors(path, cat)
	assert.Error(t, err)
}

func TestLoadAnomalyArmorsUnknownSkillNameFails(t *testing.T) {
	cat := testCatalog(t)
	path := writeCSV(t, "helm_a,0,0,0,0,0,0,0,0,0,Nonexistent Skill,1\n")

	_, err := ingest.LoadAnomalyArmors(path, cat)
	assert.Error(t, err)
}

func TestLoadAnomalyArmorsMissingFileYieldsEmpty(t *testing.T) {
	cat := testCatalog(t)
	armors, err := ingest.LoadAnomalyArmors(filepath.Join(t.TempDir(), "nope.csv"), cat)
	require.NoError(t, err)
	assert.Empty(t, armors)
}

func TestLoadTalismansParsesTwoSkillsAndSlots(t *testing.T) {
	cat := testCatalog(t)
	path := writeCSV(t, "Attack Boost,3,Defense Boost,2,1,1,0\n")

	talismans, err := ingest.LoadTalismans(path, cat)
	require.NoError(t, err)
	require.Len(t, talismans, 1)

	talisman := talismans[0]
	assert.Equal(t, "talisman_file_0", talisman.ID)
	attackUID, _ := cat.SkillUID("attack")
	defenseUID, _ := cat.SkillUID("defense")
	assert.EqualValues(t, 3, talisman.Skills.Get(attackUID))
	assert.EqualValues(t, 2, talisman.Skills.Get(defenseUID))
}

func TestLoadTalismansSkipsEmptySkillCells(t *testing.T) {
	cat := testCatalog(t)
	path := writeCSV(t, "Attack Boost,1,,0,0,0,0\n")

	talismans, err := ingest.LoadTalismans(path, cat)
	require.NoError(t, err)
	require.Len(t, talismans, 1)
	assert.Len(t, talismans[0].Skills.List(), 1)
}

func TestLoadTalismansUnknownSkillNameFails(t *testing.T) {
	cat := testCatalog(t)
	path := writeCSV(t, "Nonexistent,1,,0,0,0,0\n")

	_, err := ingest.LoadTalismans(path, cat)
	assert.Error(t, err)
}
