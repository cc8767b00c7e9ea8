package catalog

import "github.com/nineclaw/mhrcalc/internal/calc/skills"

// SkillID is the catalog's stable, human-assigned skill identifier (e.g.
// "attack_boost"), distinct from the dense skills.UID minted by New.
type SkillID string

// StatBlock holds an armor's defensive/elemental stat line. Field widths
// match §6's "stat fields signed 16-bit" rule.
type StatBlock struct {
	Defense int16
	Fire    int16
	Water   int16
	Elec    int16
	Ice     int16
	Dragon  int16
}

// Add returns the coordinate-wise sum of two stat blocks, used when an
// anomaly armor's diff is applied to its original base.
func (s StatBlock) Add(other StatBlock) StatBlock {
	return StatBlock{
		Defense: s.Defense + other.Defense,
		Fire:    s.Fire + other.Fire,
		Water:   s.Water + other.Water,
		Elec:    s.Elec + other.Elec,
		Ice:     s.Ice + other.Ice,
		Dragon:  s.Dragon + other.Dragon,
	}
}

// LessEqual reports whether s is coordinate-wise <= other, used by the
// dominance pruner when stats are included in the order (spec §4.4).
func (s StatBlock) LessEqual(other StatBlock) bool {
	return s.Defense <= other.Defense && s.Fire <= other.Fire && s.Water <= other.Water &&
		s.Elec <= other.Elec && s.Ice <= other.Ice && s.Dragon <= other.Dragon
}

// ArmorRecord is a catalog-loaded armor definition (spec §6 Catalog inputs).
type ArmorRecord struct {
	ID     string
	Part   Part
	Sex    SexType
	Names  map[string]string
	Rarity int
	Stat   StatBlock
	Skills map[SkillID]int8
	// Slots holds raw slot counts by size, length 3: catalog armors never
	// carry a bare size-4 slot (that only appears via anomaly diffs).
	Slots [3]int8
}

// DisplayName returns the armor's name in lang, falling back to the
// catalog's default language and finally to the armor's ID.
func (a ArmorRecord) DisplayName(lang, fallback string) string {
	if name, ok := a.Names[lang]; ok {
		return name
	}
	if name, ok := a.Names[fallback]; ok {
		return name
	}
	return a.ID
}

// SkillRecord is a catalog-loaded skill definition.
type SkillRecord struct {
	ID       SkillID
	MaxLevel int8
	Names    map[string]string
}

// DisplayName returns the skill's name in lang, falling back to the
// catalog's default language and finally to the skill's ID.
func (s SkillRecord) DisplayName(lang, fallback string) string {
	if name, ok := s.Names[lang]; ok {
		return name
	}
	if name, ok := s.Names[fallback]; ok {
		return name
	}
	return string(s.ID)
}

// DecorationRecord is a catalog-loaded decoration (jewel) definition.
type DecorationRecord struct {
	ID         string
	SkillID    SkillID
	SkillLevel int8
	SlotSize   int8 // 1..slots.MaxLevel
}

// Catalog is the immutable, loaded-once set of armor/skill/decoration
// records, plus the dense skill-uid assignment derived from them.
//
// Invariant: every skills.UID in [0, SkillCount()) has a corresponding
// SkillRecord in Skills at that index.
type Catalog struct {
	Armors          []ArmorRecord
	Skills          []SkillRecord
	Decorations     []DecorationRecord
	DefaultLanguage string

	uidBySkill map[SkillID]skills.UID
}

// New assembles a Catalog, assigning dense skill uids in the order skills
// appear in skillRecs.
//
// Precondition: no two skillRecs share an ID.
func New(armors []ArmorRecord, skillRecs []SkillRecord, decos []DecorationRecord, defaultLanguage string) (*Catalog, error) {
	uidBySkill := make(map[SkillID]skills.UID, len(skillRecs))
	for i, s := range skillRecs {
		if _, dup := uidBySkill[s.ID]; dup {
			return nil, &DuplicateSkillError{ID: s.ID}
		}
		uidBySkill[s.ID] = skills.UID(i)
	}
	return &Catalog{
		Armors:          armors,
		Skills:          skillRecs,
		Decorations:     decos,
		DefaultLanguage: defaultLanguage,
		uidBySkill:      uidBySkill,
	}, nil
}

// SkillCount returns the number of distinct skills in the catalog, i.e. the
// fixed width every skills.Container must be sized to.
func (c *Catalog) SkillCount() int { return len(c.Skills) }

// SkillUID resolves a catalog SkillID to its dense uid.
func (c *Catalog) SkillUID(id SkillID) (skills.UID, bool) {
	uid, ok := c.uidBySkill[id]
	return uid, ok
}

// SkillRecordByUID returns the SkillRecord at the given dense uid.
//
// Precondition: 0 <= uid < c.SkillCount().
func (c *Catalog) SkillRecordByUID(uid skills.UID) SkillRecord {
	return c.Skills[uid]
}

// DuplicateSkillError reports a catalog load containing two skills sharing
// the same ID.
type DuplicateSkillError struct{ ID SkillID }

func (e *DuplicateSkillError) Error() string {
	return "catalog: duplicate skill id " + string(e.ID)
}

// UnknownSkillError reports a request or CSV row referencing a skill ID the
// catalog does not know about (spec §7 "invalid request").
type UnknownSkillError struct{ ID SkillID }

func (e *UnknownSkillError) Error() string {
	return "catalog: unknown skill id " + string(e.ID)
}

// UnknownArmorError reports a CSV row referencing an armor name the catalog
// does not know about (spec §7 "name-not-found").
type UnknownArmorError struct{ Name string }

func (e *UnknownArmorError) Error() string {
	return "catalog: unknown armor name " + e.Name
}
