// Package result implements the ResultBuilder (spec C8): it turns a
// Calculator's internal Answer tuples into the JSON-friendly payload shape
// of spec §6, with the stable, descending, outer-to-inner leftover ordering
// required by §4.7.
package result

import "github.com/nineclaw/mhrcalc/internal/catalog"

// CalculateResult is the top-level response payload (spec §6).
//
// RequestID is an internal trace-context correlation id (set by the CLI
// from a freshly minted UUID) stamped into the accompanying log lines for
// this calculation. It deliberately has no JSON tag's worth of API
// surface commitment beyond being excluded from the wire shape — §6's
// payload is otherwise unchanged.
type CalculateResult struct {
	FullEquipments []ResultFullEquipments `json:"full_equipments"`
	CalcTime       float32                `json:"calc_time"`
	RequestID      string                 `json:"-"`
}

// ResultFullEquipments is one equipment tuple plus every feasible
// decoration placement for it.
type ResultFullEquipments struct {
	SexType              catalog.SexType                `json:"sex_type"`
	TotalRawSlots        [4]int8                        `json:"total_raw_slots"`
	WeaponSlots          [4]int8                        `json:"weapon_slots"`
	Armors               map[string]ResultArmor         `json:"armors"`
	Talisman             ResultTalisman                 `json:"talisman"`
	DecoCombs            []ResultDecorationCombination  `json:"deco_combs"`
	CommonLeftoverSkills map[string]int8                `json:"common_leftover_skills"`
}

// ResultArmor describes one armor piece's display-ready state, including
// the pre-anomaly base and the diff against it (spec §6).
type ResultArmor struct {
	BaseID     string            `json:"base_id"`
	IsAnomaly  bool              `json:"is_anomaly"`
	Skills     map[string]int8   `json:"skills"`
	BaseSkills map[string]int8   `json:"base_skills"`
	DiffSkills map[string]int8   `json:"diff_skills"`
	Slots      [4]int8           `json:"slots"`
	BaseSlots  [4]int8           `json:"base_slots"`
	DiffSlots  [4]int8           `json:"diff_slots"`
	Stat       catalog.StatBlock `json:"stat"`
}

// ResultTalisman describes the sixth, non-armor equipment slot.
type ResultTalisman struct {
	Skills map[string]int8 `json:"skills"`
	Slots  [4]int8         `json:"slots"`
}

// ResultDecorationCombination is one feasible decoration placement for a
// tuple (spec §6).
type ResultDecorationCombination struct {
	SkillDecos       map[string][4]int8 `json:"skill_decos"`
	SlotsSum         [4]int8            `json:"slots_sum"`
	LeftoverSlotsSum [4]int8            `json:"leftover_slots_sum"`
	LeftoverSkills   map[string]int8    `json:"leftover_skills"`
}
