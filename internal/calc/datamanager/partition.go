package datamanager

import (
	"sort"

	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// SplitSkills partitions reqSkills into skills no decoration can grant
// ("unique") and skills at least one decoration grants ("general"), per
// spec §4.4.
func (m *Manager) SplitSkills(reqSkills *skills.Container) (unique, general []skills.UID) {
	for _, p := range reqSkills.List() {
		if m.skillUnit[p.UID].skillLevel == 0 {
			unique = append(unique, p.UID)
		} else {
			general = append(general, p.UID)
		}
	}
	return unique, general
}

// AssignPoints recomputes e.Points for every equipment in the manager's
// current uid index, against reqSkills, and returns the list sorted
// descending by LP-outer-to-inner point (spec §4.6 step 2's
// all_deco_slot_equips_flat ordering).
func (m *Manager) AssignPoints(reqSkills *skills.Container) []*equipment.Equipment {
	m.mu.RLock()
	all := m.allEquips
	m.mu.RUnlock()

	out := make([]*equipment.Equipment, len(all))
	for i, e := range all {
		e.Points = m.CalcEquipPointSlotsLP(e, reqSkills)
		out[i] = e
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points.CompareOuterToInner(out[j].Points) > 0
	})
	return out
}

// GetPossibleUniqueEquips returns, for each armor part plus the talisman
// slot, the pieces carrying any unique-skill level, with the part's empty
// placeholder placed first — the outer candidate seed of spec §4.4.
func (m *Manager) GetPossibleUniqueEquips(unique []skills.UID) map[catalog.Part][]*equipment.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[catalog.Part][]*equipment.Equipment, len(catalog.AllParts))
	for _, p := range catalog.ArmorParts {
		out[p] = filterHasAnySkill(m.byPart[p], unique, m.emptyEquips[p])
	}
	out[catalog.PartTalisman] = filterHasAnySkill(m.talismans, unique, m.emptyEquips[catalog.PartTalisman])
	return out
}

func filterHasAnySkill(list []*equipment.Equipment, uids []skills.UID, empty *equipment.Equipment) []*equipment.Equipment {
	out := []*equipment.Equipment{empty}
	for _, e := range list {
		if e.HasAnySkill(uids) {
			out = append(out, e)
		}
	}
	return out
}

// GetPossibleGeneralPartEquips returns, per part, the pieces carrying any
// general (decoration-grantable) skill — plus every slot-only synthetic
// piece and every piece with at least one decoration slot — with dominance
// pruning applied (spec §4.4 get_possible_general_part_equips).
func (m *Manager) GetPossibleGeneralPartEquips(general []skills.UID, compareStats bool) map[catalog.Part][]*equipment.Equipment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[catalog.Part][]*equipment.Equipment, len(catalog.AllParts))
	for _, p := range catalog.ArmorParts {
		var matching []*equipment.Equipment
		for _, e := range m.byPart[p] {
			if e.IsSlotOnly() || e.SlotsLP[0] > 0 || e.HasAnySkill(general) {
				matching = append(matching, e)
			}
		}
		out[p] = RemoveDominated(matching, general, compareStats)
	}
	var talismans []*equipment.Equipment
	for _, e := range m.talismans {
		if e.IsSlotOnly() || e.SlotsLP[0] > 0 || e.HasAnySkill(general) {
			talismans = append(talismans, e)
		}
	}
	out[catalog.PartTalisman] = RemoveDominated(talismans, general, compareStats)
	return out
}

// DecoCache exposes the precomputed decoration combination cache (C3) so
// the calculator can query it without threading it through separately.
func (m *Manager) DecoCache() *deco.Cache { return m.decos }

// Catalog exposes the loaded catalog backing this manager.
func (m *Manager) Catalog() *catalog.Catalog { return m.cat }
