// Package catalog provides data types and loaders for the armor, skill, and
// decoration catalogs consumed by the calculation engine.
package catalog

// Part identifies an equipment body part slot.
type Part string

const (
	// PartHelm is the head armor slot.
	PartHelm Part = "helm"
	// PartTorso is the chest armor slot.
	PartTorso Part = "torso"
	// PartArm is the arm armor slot.
	PartArm Part = "arm"
	// PartWaist is the waist armor slot.
	PartWaist Part = "waist"
	// PartFeet is the leg/feet armor slot.
	PartFeet Part = "feet"
	// PartTalisman is the sixth, non-armor equipment slot.
	PartTalisman Part = "talisman"
)

// ArmorParts lists the five body parts that take an ArmorRecord, in the
// fixed traversal order used for uid issuance.
var ArmorParts = [5]Part{PartHelm, PartTorso, PartArm, PartWaist, PartFeet}

// AllParts lists all six equipment parts, armor parts followed by the
// talisman slot.
var AllParts = [6]Part{PartHelm, PartTorso, PartArm, PartWaist, PartFeet, PartTalisman}

// partDisplayNames maps every part identifier to its human-readable label,
// used as the fallback when a catalog record carries no localized name.
var partDisplayNames = map[Part]string{
	PartHelm:     "Helm",
	PartTorso:    "Mail",
	PartArm:      "Vambraces",
	PartWaist:    "Coil",
	PartFeet:     "Greaves",
	PartTalisman: "Talisman",
}

// PartDisplayName returns the human-readable label for a part identifier.
//
// Precondition: part is a non-empty string.
// Postcondition: returns the registered label, or part itself if not found.
func PartDisplayName(part Part) string {
	if label, ok := partDisplayNames[part]; ok {
		return label
	}
	return string(part)
}

// IsArmorPart reports whether part is one of the five body-armor slots, as
// opposed to the talisman slot.
func IsArmorPart(part Part) bool {
	for _, p := range ArmorParts {
		if p == part {
			return true
		}
	}
	return false
}

// SexType restricts which armors a request may select.
type SexType string

const (
	SexAll    SexType = "all"
	SexMale   SexType = "male"
	SexFemale SexType = "female"
)

// Matches reports whether an armor carrying armorSex is selectable under
// a request filtering for sex. The zero value (unset) behaves like SexAll
// on either side, so synthetic and talisman pieces need no explicit value.
func (sex SexType) Matches(armorSex SexType) bool {
	if sex == SexAll || sex == "" || armorSex == SexAll || armorSex == "" {
		return true
	}
	return sex == armorSex
}
