package catalog

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/nineclaw/mhrcalc/internal/calc/slots"
)

func validateArmorRecord(a ArmorRecord) error {
	var err error
	if a.ID == "" {
		err = multierr.Append(err, fmt.Errorf("id must not be empty"))
	}
	if !IsArmorPart(a.Part) {
		err = multierr.Append(err, fmt.Errorf("part %q is not a valid armor part", a.Part))
	}
	for i, s := range a.Slots {
		if s < 0 || int(s) > slots.MaxLevel {
			err = multierr.Append(err, fmt.Errorf("slots[%d]=%d out of range [0,%d]", i, s, slots.MaxLevel))
		}
	}
	for id, lv := range a.Skills {
		if lv < 1 {
			err = multierr.Append(err, fmt.Errorf("skill %q level must be >= 1, got %d", id, lv))
		}
	}
	return err
}

func validateDecorationRecord(d DecorationRecord) error {
	var err error
	if d.ID == "" {
		err = multierr.Append(err, fmt.Errorf("id must not be empty"))
	}
	if d.SkillID == "" {
		err = multierr.Append(err, fmt.Errorf("skill_id must not be empty"))
	}
	if d.SkillLevel < 1 {
		err = multierr.Append(err, fmt.Errorf("skill_level must be >= 1, got %d", d.SkillLevel))
	}
	if d.SlotSize < 1 || int(d.SlotSize) > slots.MaxLevel {
		err = multierr.Append(err, fmt.Errorf("slot_size must be in [1,%d], got %d", slots.MaxLevel, d.SlotSize))
	}
	return err
}
