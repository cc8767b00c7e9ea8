package calculator

import (
	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// checkStaticConditions is the central potential test of spec §4.6: it
// spends the tuple's available LP slots against the request's free-slot
// reservation (rejecting if that reservation can't be covered), checks the
// remaining equipment-contribution points, then pre-charges any residual
// skill with a single possible decoration placement (or needing only level
// 1) so the caller only has to run full deco-combination search over
// genuinely multi-option skills. The returned availLP already has the
// free-slot reservation and every pre-charge removed.
func checkStaticConditions(
	equipments map[catalog.Part]*equipment.Equipment,
	weaponSlotsLP, freeSlotsLP slots.Vec,
	equipPoints, residualPoints slots.Points,
	residualSkills *skills.Container,
	dc *deco.Cache,
) (residualMulti *skills.Container, availLP slots.Vec, ok bool) {
	avail := weaponSlotsLP
	for _, e := range equipments {
		avail = slots.AddLP(avail, e.SlotsLP)
	}

	reserved, promoteOK := slots.PromoteNegative(slots.SubLP(avail, freeSlotsLP))
	if !promoteOK {
		return nil, slots.Vec{}, false
	}
	avail = reserved

	if !pointsCover(equipPoints, residualPoints) {
		return nil, slots.Vec{}, false
	}

	residualMulti = residualSkills.Clone()
	for _, p := range residualSkills.List() {
		n := dc.CombosLen(p.UID, p.Level)
		if n != 1 && p.Level != 1 {
			continue
		}
		comb, has := dc.CheapestCombo(p.UID, p.Level)
		if !has {
			return nil, slots.Vec{}, false
		}
		promoted, promoteOK := slots.PromoteNegative(slots.SubLP(avail, comb))
		if !promoteOK {
			return nil, slots.Vec{}, false
		}
		avail = promoted
		residualMulti.Set(p.UID, 0)
	}

	return residualMulti, avail, true
}

func pointsCover(have, want slots.Points) bool {
	for i := range want {
		if have[i] < want[i] {
			return false
		}
	}
	return true
}
