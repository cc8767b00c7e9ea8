// Package deco implements DecoCombinations (spec C3): per-skill, per-level
// enumeration of Pareto-minimal jewel slot-count vectors, and the cached
// aggregate queries the calculator runs against them.
package deco

import (
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
)

// Combination is one full decoration placement across every requested
// skill: the per-skill LP vector actually used, plus their LP sum.
type Combination struct {
	CombsPerSkillLP map[skills.UID]slots.Vec
	SumLP           slots.Vec
}

// decoGroup is one catalog decoration projected for combination generation,
// grouped and sorted per skill.
type decoGroup struct {
	SkillLevel int8
	SlotSize   int8
}
