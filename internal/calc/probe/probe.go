// Package probe implements the auxiliary "additional-skills probe": for
// each already-computed answer, check whether any skill could be pushed one
// level past the request using only that answer's spare decoration slot
// capacity. It never revisits the search itself, so it runs embarrassingly
// parallel over (answer × skill) pairs, bounded by a worker limit.
package probe

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/nineclaw/mhrcalc/internal/calc/calculator"
	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// Suggestion reports that answer AnswerIndex has enough spare decoration
// slot capacity to grant one more level of SkillID than the request asked
// for, using its cheapest decoration alone.
//
// This is a conservative lower bound: it checks the cheapest combination
// for the next level against the answer's full spare capacity without
// crediting back the slots already spent on that skill, so a "no" here
// does not rule out a feasible re-slotting — only a strictly additive one.
type Suggestion struct {
	AnswerIndex int
	SkillID     catalog.SkillID
	ToLevel     skills.Level
}

// Run checks every (answer, skill) pair and returns the suggestions found,
// ordered by answer index then skill id for a stable result. workerPoolSize
// bounds the number of concurrent checks; values <= 0 default to 1.
func Run(ctx context.Context, cat *catalog.Catalog, dc *deco.Cache, req *calculator.Request, answers []*calculator.Answer, workerPoolSize int) ([]Suggestion, error) {
	if workerPoolSize <= 0 {
		workerPoolSize = 1
	}
	sem := semaphore.NewWeighted(int64(workerPoolSize))
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var out []Suggestion

	for ai, ans := range answers {
		spare, ok := spareCapacity(ans, req)
		if !ok {
			continue
		}
		for uidInt := 0; uidInt < cat.SkillCount(); uidInt++ {
			ai, uid, spare := ai, skills.UID(uidInt), spare
			g.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)

				suggestion, ok := probeOne(cat, dc, req, spare, ai, uid)
				if !ok {
					return nil
				}
				mu.Lock()
				out = append(out, suggestion)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AnswerIndex != out[j].AnswerIndex {
			return out[i].AnswerIndex < out[j].AnswerIndex
		}
		return out[i].SkillID < out[j].SkillID
	})
	return out, nil
}

// spareCapacity returns the raw slot capacity left over once ans's cheapest
// decoration combination is placed, the same quantity the result builder
// reports as leftover_slots_sum.
func spareCapacity(ans *calculator.Answer, req *calculator.Request) (slots.Vec, bool) {
	if len(ans.DecoCombos) == 0 {
		return slots.Vec{}, false
	}
	var equipRaw slots.Vec
	for _, e := range ans.Equipments {
		equipRaw = addRaw(equipRaw, e.Slots)
	}
	availLP := slots.AddLP(slots.ToLP(equipRaw), slots.ToLP(req.WeaponSlots))
	leftoverLP, ok := slots.PromoteNegative(slots.SubLP(availLP, ans.DecoCombos[0].SumLP))
	if !ok {
		return slots.Vec{}, false
	}
	return slots.FromLP(leftoverLP), true
}

func addRaw(a, b slots.Vec) slots.Vec {
	var out slots.Vec
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

func probeOne(cat *catalog.Catalog, dc *deco.Cache, req *calculator.Request, spare slots.Vec, answerIndex int, uid skills.UID) (Suggestion, bool) {
	rec := cat.SkillRecordByUID(uid)
	nextLevel := req.SelectedSkills.Get(uid) + 1
	if nextLevel > skills.Level(rec.MaxLevel) {
		return Suggestion{}, false
	}

	cheapest, ok := dc.CheapestCombo(uid, nextLevel)
	if !ok {
		return Suggestion{}, false
	}
	if !cheapest.LessEqual(spare) {
		return Suggestion{}, false
	}

	return Suggestion{AnswerIndex: answerIndex, SkillID: rec.ID, ToLevel: nextLevel}, true
}
