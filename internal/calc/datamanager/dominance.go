package datamanager

import (
	"sort"

	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
)

// EquipmentDominates reports whether a dominates b under the per-part order
// of spec §4.4 ("remove_le_equipments"): a's slots cover b's componentwise,
// a's level in every skill of interest is at least b's, and (when stats are
// compared) a's stats are at least b's. interest == nil compares every
// skill in the container.
func EquipmentDominates(a, b *equipment.Equipment, interest []skills.UID, compareStats bool) bool {
	if !b.SlotsLP.LessEqual(a.SlotsLP) {
		return false
	}
	if compareStats && !b.Stat.LessEqual(a.Stat) {
		return false
	}
	if interest == nil {
		for uid := 0; uid < b.Skills.Len(); uid++ {
			if b.Skills.Get(skills.UID(uid)) > a.Skills.Get(skills.UID(uid)) {
				return false
			}
		}
		return true
	}
	for _, uid := range interest {
		if b.Skills.Get(uid) > a.Skills.Get(uid) {
			return false
		}
	}
	return true
}

// TupleDominates reports whether other dominates candidate under
// is_le_candidate (spec §4.4): every non-empty piece in candidate has the
// identical uid in other at the same part; empty parts are wildcards.
func TupleDominates(candidate, other map[string]equipment.UID, isEmpty map[string]func(equipment.UID) bool) bool {
	for part, uid := range candidate {
		if isEmpty[part](uid) {
			continue
		}
		if other[part] != uid {
			return false
		}
	}
	return true
}

// RemoveDuplicateEquipments collapses pieces that share identical skills,
// slots and stats at the same part, keeping the non-anomaly representative
// (or the first in input order when the tie is anomaly-vs-anomaly or
// base-vs-base). This replaces, rather than bug-compatibly ports, the
// source implementation's iteration-order-dependent survivor choice — see
// DESIGN.md.
func RemoveDuplicateEquipments(list []*equipment.Equipment) []*equipment.Equipment {
	type key struct {
		skillsKey string
		slots     [4]int8
		stat      [6]int16
	}
	bestByKey := make(map[key]*equipment.Equipment)
	var order []key
	for _, e := range list {
		k := key{
			skillsKey: e.Skills.Key(),
			slots:     [4]int8{int8(e.Slots[0]), int8(e.Slots[1]), int8(e.Slots[2]), int8(e.Slots[3])},
			stat: [6]int16{
				e.Stat.Defense, e.Stat.Fire, e.Stat.Water, e.Stat.Elec, e.Stat.Ice, e.Stat.Dragon,
			},
		}
		if existing, ok := bestByKey[k]; ok {
			if existing.Variant == equipment.VariantAnomalyArmor && e.Variant != equipment.VariantAnomalyArmor {
				bestByKey[k] = e
			}
			continue
		}
		bestByKey[k] = e
		order = append(order, k)
	}
	out := make([]*equipment.Equipment, 0, len(order))
	for _, k := range order {
		out = append(out, bestByKey[k])
	}
	return out
}

// GetGEEquipments partitions list (already filtered to one part) into
// dominating representatives and, for each, the pieces it dominates — sorted
// descending by point in each LP coordinate outer-to-inner, for later
// substitution during the Walker's stage-B expansion (spec §4.4
// get_ge_equipments).
func GetGEEquipments(list []*equipment.Equipment, interest []skills.UID, compareStats bool) map[equipment.UID][]*equipment.Equipment {
	dominated := make(map[equipment.UID]bool, len(list))
	ge := make(map[equipment.UID][]*equipment.Equipment)

	for _, a := range list {
		for _, b := range list {
			if a == b || dominated[b.UID] {
				continue
			}
			if EquipmentDominates(a, b, interest, compareStats) {
				dominated[b.UID] = true
				ge[a.UID] = append(ge[a.UID], b)
			}
		}
	}
	for uid, group := range ge {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Points.CompareOuterToInner(group[j].Points) > 0
		})
		ge[uid] = group
	}
	return ge
}

// RemoveDominated returns the subset of list not dominated by any other
// element under EquipmentDominates, deduplicating first with
// RemoveDuplicateEquipments.
func RemoveDominated(list []*equipment.Equipment, interest []skills.UID, compareStats bool) []*equipment.Equipment {
	deduped := RemoveDuplicateEquipments(list)

	var out []*equipment.Equipment
	for i, a := range deduped {
		dominatedByOther := false
		for j, b := range deduped {
			if i == j {
				continue
			}
			if EquipmentDominates(b, a, interest, compareStats) && !EquipmentDominates(a, b, interest, compareStats) {
				dominatedByOther = true
				break
			}
		}
		if !dominatedByOther {
			out = append(out, a)
		}
	}
	return out
}
