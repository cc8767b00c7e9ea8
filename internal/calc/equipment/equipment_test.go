package equipment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

func TestNewDerivesSlotsLP(t *testing.T) {
	sk := skills.New(4)
	sk.Set(1, 2)
	e := equipment.New("armor_a", catalog.PartHelm, equipment.VariantArmor, sk, slots.Vec{1, 0, 1, 0}, catalog.StatBlock{})

	assert.Equal(t, slots.ToLP(slots.Vec{1, 0, 1, 0}), e.SlotsLP)
}

func TestNewEmptyHasNoSkillsOrSlots(t *testing.T) {
	e := equipment.NewEmpty(catalog.PartTorso, 10)
	assert.Equal(t, equipment.EmptyID(catalog.PartTorso), e.ID)
	assert.True(t, e.IsEmpty())
	assert.Empty(t, e.Skills.List())
	assert.Equal(t, slots.Vec{}, e.Slots)
}

func TestSlotOnlyIDEncodesFirstThreeSizes(t *testing.T) {
	id := equipment.SlotOnlyID(slots.Vec{1, 2, 0, 9})
	assert.Equal(t, "__slot_1-2-0", id)
}

func TestAnomalyKeepsBaseAndAffected(t *testing.T) {
	base := skills.New(2)
	base.Set(0, 1)
	affected := skills.New(2)
	affected.Set(0, 2)

	e := equipment.NewAnomaly("anomaly_1", catalog.PartArm, affected, base,
		slots.Vec{1, 0, 0, 0}, slots.Vec{0, 0, 0, 0},
		catalog.StatBlock{Defense: 10}, catalog.StatBlock{Defense: 5})

	assert.EqualValues(t, 2, e.Skills.Get(0))
	assert.EqualValues(t, 1, e.BaseSkills.Get(0))
	assert.Equal(t, equipment.VariantAnomalyArmor, e.Variant)
}

func TestHasAnySkill(t *testing.T) {
	sk := skills.New(3)
	sk.Set(2, 1)
	e := equipment.New("x", catalog.PartFeet, equipment.VariantArmor, sk, slots.Vec{}, catalog.StatBlock{})

	assert.True(t, e.HasAnySkill([]skills.UID{0, 2}))
	assert.False(t, e.HasAnySkill([]skills.UID{0, 1}))
}
