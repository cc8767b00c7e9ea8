package result

import (
	"sort"

	"github.com/nineclaw/mhrcalc/internal/calc/calculator"
	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// Builder is the ResultBuilder (spec C8). It resolves skill uids back to
// catalog ids and applies the §4.7 ordering.
type Builder struct {
	cat *catalog.Catalog
}

// NewBuilder returns a Builder resolving display names against cat.
func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{cat: cat}
}

// Build converts req/answers into the JSON-friendly result payload,
// stamping calcTime (seconds) into the result (spec §6).
func (b *Builder) Build(req *calculator.Request, answers []*calculator.Answer, calcTime float32) CalculateResult {
	out := make([]ResultFullEquipments, 0, len(answers))
	for _, a := range answers {
		out = append(out, b.buildTuple(req, a))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compareLeftoverDesc(tupleRepresentativeLeftover(out[i]), tupleRepresentativeLeftover(out[j])) < 0
	})
	return CalculateResult{FullEquipments: out, CalcTime: calcTime}
}

func tupleRepresentativeLeftover(f ResultFullEquipments) slots.Vec {
	if len(f.DecoCombs) == 0 {
		return slots.Vec{}
	}
	return toVec(f.DecoCombs[0].LeftoverSlotsSum)
}

func (b *Builder) buildTuple(req *calculator.Request, a *calculator.Answer) ResultFullEquipments {
	armors := make(map[string]ResultArmor, len(catalog.ArmorParts))
	var equipRaw slots.Vec
	for _, p := range catalog.ArmorParts {
		e := a.Equipments[p]
		armors[string(p)] = b.buildArmor(e)
		equipRaw = slots.AddLP(equipRaw, e.Slots)
	}
	talismanEquip := a.Equipments[catalog.PartTalisman]
	equipRaw = slots.AddLP(equipRaw, talismanEquip.Slots)

	availLP := slots.AddLP(slots.ToLP(equipRaw), slots.ToLP(req.WeaponSlots))

	combos := make([]ResultDecorationCombination, 0, len(a.DecoCombos))
	for _, dp := range a.DecoCombos {
		combos = append(combos, b.buildCombo(dp, availLP))
	}
	sort.SliceStable(combos, func(i, j int) bool {
		return compareLeftoverDesc(toVec(combos[i].LeftoverSlotsSum), toVec(combos[j].LeftoverSlotsSum)) < 0
	})

	return ResultFullEquipments{
		SexType:              req.Sex,
		TotalRawSlots:        fromVec(equipRaw),
		WeaponSlots:          fromVec(req.WeaponSlots),
		Armors:               armors,
		Talisman:             b.buildTalisman(talismanEquip),
		DecoCombs:            combos,
		CommonLeftoverSkills: b.skillMap(commonLeftover(a.DecoCombos)),
	}
}

func (b *Builder) buildArmor(e *equipment.Equipment) ResultArmor {
	diffSkills := e.Skills.Diff(e.BaseSkills)
	diffSkills.ClearZeros()
	return ResultArmor{
		BaseID:     e.BaseID,
		IsAnomaly:  e.Variant == equipment.VariantAnomalyArmor,
		Skills:     b.skillMap(e.Skills),
		BaseSkills: b.skillMap(e.BaseSkills),
		DiffSkills: b.skillMap(diffSkills),
		Slots:      fromVec(e.Slots),
		BaseSlots:  fromVec(e.BaseSlots),
		DiffSlots:  fromVec(subRaw(e.Slots, e.BaseSlots)),
		Stat:       e.Stat,
	}
}

func (b *Builder) buildTalisman(e *equipment.Equipment) ResultTalisman {
	return ResultTalisman{Skills: b.skillMap(e.Skills), Slots: fromVec(e.Slots)}
}

func (b *Builder) buildCombo(dp calculator.DecoPlacement, availLP slots.Vec) ResultDecorationCombination {
	skillDecos := make(map[string][4]int8, len(dp.PerSkillLP))
	for uid, lp := range dp.PerSkillLP {
		skillDecos[b.skillID(uid)] = fromVec(slots.FromLP(lp))
	}

	leftoverLP, ok := slots.PromoteNegative(slots.SubLP(availLP, dp.SumLP))
	var leftoverRaw slots.Vec
	if ok {
		leftoverRaw = slots.FromLP(leftoverLP)
	}

	return ResultDecorationCombination{
		SkillDecos:       skillDecos,
		SlotsSum:         fromVec(slots.FromLP(dp.SumLP)),
		LeftoverSlotsSum: fromVec(leftoverRaw),
		LeftoverSkills:   b.skillMap(dp.Leftover),
	}
}

func (b *Builder) skillID(uid skills.UID) string {
	return string(b.cat.SkillRecordByUID(uid).ID)
}

func (b *Builder) skillMap(c *skills.Container) map[string]int8 {
	out := make(map[string]int8)
	if c == nil {
		return out
	}
	for _, p := range c.List() {
		out[b.skillID(p.UID)] = int8(p.Level)
	}
	return out
}

// commonLeftover returns the coordinate-wise minimum leftover level across
// every decoration placement of a tuple: the residual every combo agrees
// on, i.e. the surplus contributed by equipment alone rather than by a
// particular decoration choice.
func commonLeftover(combos []calculator.DecoPlacement) *skills.Container {
	if len(combos) == 0 {
		return nil
	}
	out := combos[0].Leftover.Clone()
	for _, dp := range combos[1:] {
		n := out.Len()
		for uid := 0; uid < n; uid++ {
			u := skills.UID(uid)
			if dp.Leftover.Get(u) < out.Get(u) {
				out.Set(u, dp.Leftover.Get(u))
			}
		}
	}
	return out
}

// compareLeftoverDesc orders two raw leftover vectors descending by their
// LP transform, outer-to-inner, then by total sum (spec §4.7).
func compareLeftoverDesc(a, b slots.Vec) int {
	la, lb := slots.ToLP(a), slots.ToLP(b)
	for i := range la {
		if la[i] != lb[i] {
			if la[i] > lb[i] {
				return -1
			}
			return 1
		}
	}
	sa, sb := la.Sum(), lb.Sum()
	switch {
	case sa > sb:
		return -1
	case sa < sb:
		return 1
	default:
		return 0
	}
}

func subRaw(a, b slots.Vec) slots.Vec {
	var out slots.Vec
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

func fromVec(v slots.Vec) [4]int8 {
	var out [4]int8
	for i := range v {
		out[i] = int8(v[i])
	}
	return out
}

func toVec(a [4]int8) slots.Vec {
	var out slots.Vec
	for i := range a {
		out[i] = slots.Count(a[i])
	}
	return out
}
