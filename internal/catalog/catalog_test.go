package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nineclaw/mhrcalc/internal/catalog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadArmorsJSON_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "armors.json", `[
		{"id":"helm_a","part":"helm","sex_type":"all","slots":[1,0,0],"skills":{"s1":2}}
	]`)

	armors, err := catalog.LoadArmorsJSON(path)
	require.NoError(t, err)
	require.Len(t, armors, 1)
	assert.Equal(t, "helm_a", armors[0].ID)
	assert.Equal(t, catalog.PartHelm, armors[0].Part)
	assert.EqualValues(t, 2, armors[0].Skills["s1"])
}

func TestLoadArmorsJSON_MissingFileYieldsEmpty(t *testing.T) {
	armors, err := catalog.LoadArmorsJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, armors)
}

func TestLoadArmorsJSON_InvalidPartIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "armors.json", `[{"id":"x","part":"bogus"}]`)

	armors, err := catalog.LoadArmorsJSON(path)
	assert.Error(t, err)
	assert.Empty(t, armors)
}

func TestLoadSkillsJSON_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "skills.json", `[{"id":"s1","max_level":3,"names":{"en":"Skill One"}}]`)

	recs, err := catalog.LoadSkillsJSON(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Skill One", recs[0].DisplayName("en", "en"))
}

func TestLoadDecorationsJSON_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "decos.json", `[{"id":"d1","skill_id":"s1","skill_level":1,"slot_size":1}]`)

	decos, err := catalog.LoadDecorationsJSON(path)
	require.NoError(t, err)
	require.Len(t, decos, 1)
	assert.EqualValues(t, 1, decos[0].SlotSize)
}

func TestLoadArmors_DispatchesOnYAMLExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "armors.yaml", "- id: helm_a\n  part: helm\n  sex_type: all\n  slots: [1, 0, 0]\n  skills:\n    s1: 2\n")

	armors, err := catalog.LoadArmors(path)
	require.NoError(t, err)
	require.Len(t, armors, 1)
	assert.Equal(t, "helm_a", armors[0].ID)
	assert.EqualValues(t, 2, armors[0].Skills["s1"])
}

func TestLoadArmors_DispatchesOnJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "armors.json", `[{"id":"helm_a","part":"helm","sex_type":"all","slots":[1,0,0]}]`)

	armors, err := catalog.LoadArmors(path)
	require.NoError(t, err)
	require.Len(t, armors, 1)
}

func TestLoadSkills_YAMLMissingFileYieldsEmpty(t *testing.T) {
	recs, err := catalog.LoadSkills(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestNewAssignsDenseSkillUIDsInOrder(t *testing.T) {
	skillsRecs := []catalog.SkillRecord{
		{ID: "a", MaxLevel: 1},
		{ID: "b", MaxLevel: 1},
	}
	c, err := catalog.New(nil, skillsRecs, nil, "en")
	require.NoError(t, err)

	uidA, ok := c.SkillUID("a")
	require.True(t, ok)
	uidB, ok := c.SkillUID("b")
	require.True(t, ok)
	assert.EqualValues(t, 0, uidA)
	assert.EqualValues(t, 1, uidB)
	assert.Equal(t, 2, c.SkillCount())
}

func TestNewRejectsDuplicateSkillIDs(t *testing.T) {
	_, err := catalog.New(nil, []catalog.SkillRecord{{ID: "a"}, {ID: "a"}}, nil, "en")
	assert.Error(t, err)
}
