package calculator

import (
	"fmt"
	"sort"

	"github.com/nineclaw/mhrcalc/internal/calc/datamanager"
	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/iterator"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// DecoPlacement is one feasible way to place decorations satisfying a
// tuple's residual skill demand (spec §4.6 step 6).
type DecoPlacement struct {
	PerSkillLP map[skills.UID]slots.Vec
	SumLP      slots.Vec
	Leftover   *skills.Container
}

// Answer is one accepted equipment tuple plus every feasible decoration
// placement for it.
type Answer struct {
	Equipments map[catalog.Part]*equipment.Equipment
	DecoCombos []DecoPlacement
}

// Calculator is C7: it searches dm's indexed equipment for tuples that can
// satisfy a Request, capped at maxAnswers (spec §4.6 step 7). It does not
// rank the answers; ordering is left to the result builder (C8).
type Calculator struct {
	dm         *datamanager.Manager
	maxAnswers int
}

// New returns a Calculator bound to dm, capping results at maxAnswers
// (spec's MAX_ANSWER_LENGTH, default 200).
func New(dm *datamanager.Manager, maxAnswers int) *Calculator {
	if maxAnswers <= 0 {
		maxAnswers = 200
	}
	return &Calculator{dm: dm, maxAnswers: maxAnswers}
}

// Calculate runs the full pipeline for req and returns every accepted
// answer (spec §4.6). Answers are collected in a map, so the order of the
// returned slice is not defined; final ordering is the result builder's
// job, C8.
func (c *Calculator) Calculate(req *Request) ([]*Answer, error) {
	reqSkills := req.SelectedSkills
	freeLP := slots.ToLP(req.FreeSlots)
	weaponLP := slots.ToLP(req.WeaponSlots)
	lcm := c.dm.LCM()

	reqPoints := c.dm.RequestPoints(reqSkills).Add(pointsFromSlots(freeLP, lcm))
	weaponPoints := pointsFromSlots(weaponLP, lcm)

	unique, general := c.dm.SplitSkills(reqSkills)
	c.dm.AssignPoints(reqSkills)

	uniqueByPart := c.dm.GetPossibleUniqueEquips(unique)
	generalByPart := c.dm.GetPossibleGeneralPartEquips(general, false)
	geByPart := make(map[catalog.Part]map[equipment.UID][]*equipment.Equipment, len(catalog.AllParts))
	for _, p := range catalog.AllParts {
		geByPart[p] = datamanager.GetGEEquipments(generalByPart[p], general, false)
	}

	dc := c.dm.DecoCache()

	lists := make([][]*equipment.Equipment, len(catalog.AllParts))
	for i, p := range catalog.AllParts {
		for _, e := range uniqueByPart[p] {
			if e.IsEmpty() || req.Sex.Matches(e.Sex) {
				lists[i] = append(lists[i], e)
			}
		}
	}

	answers := make(map[string]*Answer)
	var acceptedTuples []map[catalog.Part]equipment.UID

	idx := make([]int, len(catalog.AllParts))
	for {
		if len(answers) >= c.maxAnswers {
			break
		}
		candidate := make(map[catalog.Part]*equipment.Equipment, len(catalog.AllParts))
		tupleSkills := skills.New(reqSkills.Len())
		for i, p := range catalog.AllParts {
			e := lists[i][idx[i]]
			candidate[p] = e
			tupleSkills = tupleSkills.Add(e.Skills)
		}

		if !isTupleDominated(candidate, acceptedTuples) && uniqueSkillsMet(tupleSkills, reqSkills, unique) {
			c.searchCandidate(candidate, reqSkills, general, generalByPart, geByPart,
				reqPoints, weaponPoints, weaponLP, freeLP, dc, answers)
			acceptedTuples = append(acceptedTuples, tupleUIDs(candidate))
		}

		if !odometerAdvanceEquip(idx, lists) {
			break
		}
	}

	out := make([]*Answer, 0, len(answers))
	for _, a := range answers {
		out = append(out, a)
	}
	return out, nil
}

// searchCandidate runs the walker over every part not fixed by candidate,
// drawing from the union of each part's dominance-surviving pieces and the
// pieces they dominate. This collapses spec §4.6 steps 4-5's two-stage
// walk/expand into a single pass over a pre-expanded pool — every tuple the
// two-stage process would find is still reachable, since the walker draws
// from the full union up front (see DESIGN.md).
func (c *Calculator) searchCandidate(
	candidate map[catalog.Part]*equipment.Equipment,
	reqSkills *skills.Container,
	general []skills.UID,
	generalByPart map[catalog.Part][]*equipment.Equipment,
	geByPart map[catalog.Part]map[equipment.UID][]*equipment.Equipment,
	reqPoints, weaponPoints slots.Points,
	weaponLP, freeLP slots.Vec,
	dc *deco.Cache,
	answers map[string]*Answer,
) {
	keyParts := make(map[catalog.Part]bool, len(candidate))
	var keyPoints slots.Points
	for p, e := range candidate {
		if !e.IsEmpty() {
			keyParts[p] = true
			keyPoints = keyPoints.Add(e.Points)
		}
	}

	pool := make(map[equipment.UID]*equipment.Equipment)
	var entries []iterator.Entry
	for _, p := range catalog.AllParts {
		if keyParts[p] {
			continue
		}
		for _, e := range generalByPart[p] {
			if _, ok := pool[e.UID]; !ok {
				pool[e.UID] = e
				entries = append(entries, iterator.Entry{Part: string(p), Points: e.Points, UID: e.UID})
			}
			for _, dominated := range geByPart[p][e.UID] {
				if _, ok := pool[dominated.UID]; !ok {
					pool[dominated.UID] = dominated
					entries = append(entries, iterator.Entry{Part: string(p), Points: dominated.Points, UID: dominated.UID})
				}
			}
		}
	}
	if len(entries) == 0 {
		c.evaluateFullTuple(candidate, reqSkills, general, reqPoints, weaponPoints, weaponLP, freeLP, dc, answers)
		return
	}

	leftPoints := reqPoints.Sub(keyPoints).Sub(weaponPoints)
	w := iterator.New(entries, leftPoints)
	for {
		if len(answers) >= c.maxAnswers {
			return
		}
		probe, ok := w.Next()
		if !ok {
			return
		}
		full := make(map[catalog.Part]*equipment.Equipment, len(catalog.AllParts))
		for p, e := range candidate {
			if keyParts[p] {
				full[p] = e
			} else {
				full[p] = c.dm.EmptyEquipment(p)
			}
		}
		for p, uid := range probe {
			full[catalog.Part(p)] = pool[uid]
		}
		c.evaluateFullTuple(full, reqSkills, general, reqPoints, weaponPoints, weaponLP, freeLP, dc, answers)
	}
}

// evaluateFullTuple runs check_static_conditions and, on success, the final
// decoration placement (spec §4.6 step 6), recording an Answer per tuple.
func (c *Calculator) evaluateFullTuple(
	full map[catalog.Part]*equipment.Equipment,
	reqSkills *skills.Container,
	general []skills.UID,
	reqPoints, weaponPoints slots.Points,
	weaponLP, freeLP slots.Vec,
	dc *deco.Cache,
	answers map[string]*Answer,
) {
	key := tupleKey(full)
	if _, exists := answers[key]; exists {
		return
	}

	fullSkills := skills.New(reqSkills.Len())
	var equipPoints slots.Points
	for _, e := range full {
		fullSkills = fullSkills.Add(e.Skills)
		equipPoints = equipPoints.Add(e.Points)
	}

	generalResidual := reqSkills.Sub(fullSkills)
	generalResidual.ClearZeros()
	keepOnly(generalResidual, general)
	if len(generalResidual.List()) == 0 {
		leftover := fullSkills.Sub(reqSkills)
		leftover.ClearZeros()
		answers[key] = &Answer{Equipments: full, DecoCombos: []DecoPlacement{{
			PerSkillLP: map[skills.UID]slots.Vec{}, SumLP: slots.Vec{}, Leftover: leftover,
		}}}
		return
	}

	residualPoints := reqPoints.Sub(weaponPoints)
	residualMulti, availLP, ok := checkStaticConditions(full, weaponLP, freeLP, equipPoints, residualPoints, generalResidual, dc)
	if !ok {
		return
	}
	if !dc.HasPossibleCombsLP(residualMulti, availLP) {
		return
	}

	// Final placement covers the whole residual decoration demand, including
	// skills checkStaticConditions pre-charged, against the tuple's slots
	// minus the free-slot demand.
	placeLP := weaponLP
	for _, e := range full {
		placeLP = slots.AddLP(placeLP, e.SlotsLP)
	}
	placeLP, _ = slots.PromoteNegative(slots.SubLP(placeLP, freeLP))

	combos := dc.GetFullPossibleCombs(generalResidual)
	var placements []DecoPlacement
	for _, comb := range combos {
		if !slots.DominatesLP(placeLP, comb.SumLP) {
			continue
		}
		decoGranted := skills.New(reqSkills.Len())
		for _, p := range generalResidual.List() {
			decoGranted.Set(p.UID, p.Level)
		}
		leftover := fullSkills.Add(decoGranted).Sub(reqSkills)
		leftover.ClearZeros()
		placements = append(placements, DecoPlacement{PerSkillLP: comb.CombsPerSkillLP, SumLP: comb.SumLP, Leftover: leftover})
	}
	if len(placements) == 0 {
		return
	}
	answers[key] = &Answer{Equipments: full, DecoCombos: placements}
}

func keepOnly(c *skills.Container, uids []skills.UID) {
	keep := make(map[skills.UID]bool, len(uids))
	for _, u := range uids {
		keep[u] = true
	}
	for _, p := range c.List() {
		if !keep[p.UID] {
			c.Set(p.UID, 0)
		}
	}
}

func uniqueSkillsMet(tupleSkills, reqSkills *skills.Container, unique []skills.UID) bool {
	for _, uid := range unique {
		if tupleSkills.Get(uid) < skills.Level(reqSkills.Get(uid)) {
			return false
		}
	}
	return true
}

func tupleUIDs(candidate map[catalog.Part]*equipment.Equipment) map[catalog.Part]equipment.UID {
	out := make(map[catalog.Part]equipment.UID, len(candidate))
	for p, e := range candidate {
		out[p] = e.UID
	}
	return out
}

// isTupleDominated implements tuple_dominates (spec §4.4 is_le_candidate):
// candidate is skipped if an already-accepted tuple agrees with it on every
// non-empty part.
func isTupleDominated(candidate map[catalog.Part]*equipment.Equipment, accepted []map[catalog.Part]equipment.UID) bool {
	for _, other := range accepted {
		match := true
		for p, e := range candidate {
			if e.IsEmpty() {
				continue
			}
			if other[p] != e.UID {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func pointsFromSlots(lp slots.Vec, lcm int64) slots.Points {
	var pts slots.Points
	for i, v := range lp {
		pts[i] = int32(int64(v) * lcm)
	}
	return pts
}

func odometerAdvanceEquip(idx []int, lists [][]*equipment.Equipment) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(lists[i]) {
			return true
		}
		idx[i] = 0
	}
	return false
}

func tupleKey(full map[catalog.Part]*equipment.Equipment) string {
	parts := make([]string, 0, len(full))
	for p := range full {
		parts = append(parts, string(p))
	}
	sort.Strings(parts)
	key := ""
	for _, p := range parts {
		key += fmt.Sprintf("%s:%d;", p, full[catalog.Part(p)].UID)
	}
	return key
}
