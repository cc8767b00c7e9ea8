// Package datamanager implements CalcDataManager (spec C5): the indexed
// view of the catalog's armors and talismans that the calculator searches
// over — uid issuance, per-request potential scoring, and the dominance and
// decoration-availability partitions that keep the search tractable.
package datamanager

import (
	"sync"

	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// skillDecoUnit records, per skill, the cheapest decoration that grants it:
// the slot size it occupies and the level it grants per copy. Used by
// CalcEquipPointSlotsLP to convert a skill level into a comparable LP point
// value (spec §4.4).
type skillDecoUnit struct {
	slotSize   int8
	skillLevel int8
}

// Manager is CalcDataManager: the per-part equipment dictionaries plus the
// uid index and scoring machinery the calculator needs. A Manager is built
// once per catalog/CSV load and is read-mostly thereafter; a changed CSV
// source is handled by building a new Manager (ingest.BuildManager).
type Manager struct {
	mu sync.RWMutex

	cat      *catalog.Catalog
	decos    *deco.Cache
	skillUnit []skillDecoUnit // indexed by skills.UID; zero value means no decoration
	lcm       int64

	byPart      map[catalog.Part][]*equipment.Equipment
	talismans   []*equipment.Equipment
	emptyEquips map[catalog.Part]*equipment.Equipment

	allEquips []*equipment.Equipment
}

// New builds a Manager from a loaded catalog and its precomputed decoration
// cache, projecting armor and talisman records into equipment.Equipment and
// running the initial refresh_infos pass.
func New(cat *catalog.Catalog, decos *deco.Cache, extraAnomaly, extraTalismans []*equipment.Equipment) *Manager {
	m := &Manager{cat: cat, decos: decos}
	m.skillUnit, m.lcm = buildSkillUnits(cat)

	m.byPart = make(map[catalog.Part][]*equipment.Equipment, len(catalog.ArmorParts))
	m.emptyEquips = make(map[catalog.Part]*equipment.Equipment, len(catalog.AllParts))
	for _, p := range catalog.AllParts {
		m.emptyEquips[p] = equipment.NewEmpty(p, cat.SkillCount())
	}

	for _, a := range cat.Armors {
		m.byPart[a.Part] = append(m.byPart[a.Part], armorEquipment(cat, a))
	}
	for _, e := range extraAnomaly {
		m.byPart[e.Part] = append(m.byPart[e.Part], e)
	}
	m.talismans = append(m.talismans, extraTalismans...)

	m.refreshInfos()
	return m
}

func buildSkillUnits(cat *catalog.Catalog) ([]skillDecoUnit, int64) {
	units := make([]skillDecoUnit, cat.SkillCount())
	var lcm int64 = 1
	for _, d := range cat.Decorations {
		uid, ok := cat.SkillUID(d.SkillID)
		if !ok {
			continue
		}
		lcm = lcmInt(lcm, int64(d.SkillLevel))
		cur := units[uid]
		if cur.skillLevel == 0 || d.SlotSize < cur.slotSize {
			units[uid] = skillDecoUnit{slotSize: d.SlotSize, skillLevel: d.SkillLevel}
		}
	}
	return units, lcm
}

func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func lcmInt(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcdInt(a, b) * b
}

func armorEquipment(cat *catalog.Catalog, a catalog.ArmorRecord) *equipment.Equipment {
	sk := skills.New(cat.SkillCount())
	for id, lv := range a.Skills {
		if uid, ok := cat.SkillUID(id); ok {
			sk.Set(uid, skills.Level(lv))
		}
	}
	raw := slots.Vec{slots.Count(a.Slots[0]), slots.Count(a.Slots[1]), slots.Count(a.Slots[2]), 0}
	e := equipment.New(a.ID, a.Part, equipment.VariantArmor, sk, raw, a.Stat)
	e.Sex = a.Sex
	return e
}

// refreshInfos reissues uids in a fixed traversal order (armor parts
// ascending, then talismans, then empty-equipment placeholders) and
// populates the flat uid-indexed lookup (spec §4.4 "Uid issuance").
func (m *Manager) refreshInfos() {
	var all []*equipment.Equipment
	for _, p := range catalog.ArmorParts {
		for _, e := range m.byPart[p] {
			e.UID = equipment.UID(len(all))
			all = append(all, e)
		}
	}
	for _, e := range m.talismans {
		e.UID = equipment.UID(len(all))
		all = append(all, e)
	}
	for _, p := range catalog.AllParts {
		e := m.emptyEquips[p]
		e.UID = equipment.UID(len(all))
		all = append(all, e)
	}
	m.allEquips = all
}

// AllEquips returns the uid-indexed flat lookup built by the last
// refresh_infos pass.
func (m *Manager) AllEquips() []*equipment.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.allEquips
}

// EmptyEquipment returns the permanent empty placeholder for part.
func (m *Manager) EmptyEquipment(part catalog.Part) *equipment.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.emptyEquips[part]
}

// PartEquips returns every non-empty piece catalogued for part (armor parts
// only; see Talismans for the talisman dictionary).
func (m *Manager) PartEquips(part catalog.Part) []*equipment.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byPart[part]
}

// Talismans returns the loaded talisman dictionary.
func (m *Manager) Talismans() []*equipment.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.talismans
}

// CalcEquipPointSlotsLP computes e's contribution, in LP-binned points,
// toward reqSkills, plus e's own LP slot capacity scaled by the same
// point-unit lcm so slot capacity and skill contribution are comparable
// (spec §4.4 calc_equip_point_slots_lp).
func (m *Manager) CalcEquipPointSlotsLP(e *equipment.Equipment, reqSkills *skills.Container) slots.Points {
	var pts slots.Points
	for _, p := range reqSkills.List() {
		have := e.Skills.Get(p.UID)
		if have <= 0 {
			continue
		}
		unit := m.skillUnit[p.UID]
		if unit.skillLevel == 0 {
			continue
		}
		granted := have
		if granted > skills.Level(p.Level) {
			granted = skills.Level(p.Level)
		}
		perLevel := m.lcm / int64(unit.skillLevel)
		pts[unit.slotSize-1] += int32(int64(granted) * perLevel)
	}
	for i, c := range e.SlotsLP {
		pts[i] += int32(int64(c) * m.lcm)
	}
	return pts
}

// RequestPoints computes the point-image of reqSkills alone (every
// requested level fully counted, not capped by anything an equipment piece
// grants), used as the base of the Calculator's req_points (spec §4.6
// step 1).
func (m *Manager) RequestPoints(reqSkills *skills.Container) slots.Points {
	var pts slots.Points
	for _, p := range reqSkills.List() {
		unit := m.skillUnit[p.UID]
		if unit.skillLevel == 0 {
			continue
		}
		perLevel := m.lcm / int64(unit.skillLevel)
		pts[unit.slotSize-1] += int32(int64(p.Level) * perLevel)
	}
	return pts
}

// LCM returns the point-unit least common multiple used to scale slot
// capacity into the same units as skill-level contributions.
func (m *Manager) LCM() int64 { return m.lcm }
