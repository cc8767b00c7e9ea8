// Package equipment defines CalcEquipment, the normalized per-piece view of
// an armor or talisman used throughout the calculation engine: its skills,
// its slot profile in both raw and LP form, and a per-request potential
// ("points") assigned by the data manager (C5).
package equipment

import (
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// UID is a monotonically issued, per-request equipment identifier. It is
// only valid within the request that minted it (spec §3 Lifecycle): points
// are recomputed, and uids reissued, on every call.
type UID int

// Variant distinguishes the three kinds of equipment the engine reasons
// about.
type Variant int

const (
	VariantArmor Variant = iota
	VariantAnomalyArmor
	VariantTalisman
)

// Equipment is the immutable-after-construction (except UID and Points)
// normalized view of one armor piece or talisman.
//
// Invariant: SlotsLP == slots.ToLP(Slots).
// Invariant: Skills has zero in every uid not granted by this piece.
type Equipment struct {
	UID  UID
	ID   string // catalog id, or a synthetic id (spec §6 Synthetic identifiers)
	Part catalog.Part

	// BaseID is the catalog armor id this piece derives from: equal to ID
	// for ordinary and slot-only pieces, and the original armor's id for an
	// anomaly piece whose ID is the synthetic "__anomaly_..." form (spec §6
	// Synthetic identifiers). Ingest sets this explicitly when it knows the
	// original id; New/NewEmpty/NewSlotOnly default it to ID.
	BaseID string

	Skills  *skills.Container
	Slots   slots.Vec
	SlotsLP slots.Vec
	Points  slots.Points

	Variant Variant
	// Sex restricts which requests may select this piece (spec §6); synthetic
	// placeholders leave it unset, which catalog.SexType.Matches treats as
	// catalog.SexAll.
	Sex catalog.SexType

	// Stat is the piece's current (possibly anomaly-affected) stat block.
	Stat catalog.StatBlock
	// BaseStat/BaseSkills/BaseSlots hold the pre-anomaly original values,
	// used by the result builder's diff display. They equal Stat/Skills/
	// Slots for non-anomaly pieces.
	BaseStat   catalog.StatBlock
	BaseSkills *skills.Container
	BaseSlots  slots.Vec
}

// New constructs a non-anomaly Equipment. SlotsLP is derived from raw.
//
// Precondition: sk must not be nil.
func New(id string, part catalog.Part, variant Variant, sk *skills.Container, raw slots.Vec, stat catalog.StatBlock) *Equipment {
	return &Equipment{
		ID:         id,
		BaseID:     id,
		Part:       part,
		Skills:     sk,
		Slots:      raw,
		SlotsLP:    slots.ToLP(raw),
		Variant:    variant,
		Stat:       stat,
		BaseStat:   stat,
		BaseSkills: sk,
		BaseSlots:  raw,
	}
}

// NewAnomaly constructs an anomaly-armor Equipment, carrying both the
// affected (current) values and the original base's values for diff
// display (spec §3's "anomaly armor carries both its original and affected
// base").
//
// Precondition: affectedSkills, baseSkills must not be nil.
func NewAnomaly(id string, part catalog.Part, affectedSkills, baseSkills *skills.Container, affectedSlots, baseSlots slots.Vec, affectedStat, baseStat catalog.StatBlock) *Equipment {
	return &Equipment{
		ID:         id,
		BaseID:     id,
		Part:       part,
		Skills:     affectedSkills,
		Slots:      affectedSlots,
		SlotsLP:    slots.ToLP(affectedSlots),
		Variant:    VariantAnomalyArmor,
		Stat:       affectedStat,
		BaseStat:   baseStat,
		BaseSkills: baseSkills,
		BaseSlots:  baseSlots,
	}
}

// NewEmpty returns the neutral per-part placeholder: no skills, no slots.
//
// Precondition: skillCount >= 0.
func NewEmpty(part catalog.Part, skillCount int) *Equipment {
	return New(EmptyID(part), part, VariantArmor, skills.New(skillCount), slots.Vec{}, catalog.StatBlock{})
}

// NewSlotOnly returns a synthetic stand-in carrying no skills and only the
// given raw slot profile, used during outer-candidate enumeration to
// represent "any armor with this slot shape" (spec GLOSSARY).
//
// Precondition: skillCount >= 0.
func NewSlotOnly(part catalog.Part, raw slots.Vec, skillCount int) *Equipment {
	return New(SlotOnlyID(raw), part, VariantArmor, skills.New(skillCount), raw, catalog.StatBlock{})
}

// EmptyID returns the synthetic id of the per-part empty placeholder
// (spec §6: "__empty-{part}").
func EmptyID(part catalog.Part) string { return "__empty-" + string(part) }

// SlotOnlyID returns the synthetic id of a slot-only placeholder carrying
// raw's first three slot sizes (spec §6: "__slot_{s1}-{s2}-{s3}").
func SlotOnlyID(raw slots.Vec) string {
	digits := func(c slots.Count) byte { return byte(c) + '0' }
	return "__slot_" + string([]byte{digits(raw[0]), '-', digits(raw[1]), '-', digits(raw[2])})
}

// IsEmpty reports whether e is the neutral per-part placeholder.
func (e *Equipment) IsEmpty() bool { return e.ID == EmptyID(e.Part) }

// IsSlotOnly reports whether e is a synthetic slot-only placeholder.
func (e *Equipment) IsSlotOnly() bool { return e.ID == SlotOnlyID(e.Slots) && e.Skills.List() == nil }

// HasAnySkill reports whether e grants any level in uids.
func (e *Equipment) HasAnySkill(uids []skills.UID) bool {
	for _, u := range uids {
		if e.Skills.Get(u) > 0 {
			return true
		}
	}
	return false
}
