// Package calculator implements the Calculator (spec C7): the seven-step
// pipeline that turns a skill request into ranked, decoration-feasible
// equipment tuples.
package calculator

import (
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// Request is the lowered form of spec §6's Request payload: skill levels
// already resolved to dense uids.
type Request struct {
	WeaponSlots       slots.Vec
	SelectedSkills    *skills.Container
	FreeSlots         slots.Vec
	Sex               catalog.SexType
	IncludeLTEEquips  bool
}
