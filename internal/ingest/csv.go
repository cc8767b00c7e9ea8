// Package ingest parses the user-supplied CSV sources (spec §6 User data):
// anomaly-crafted armor augments and talismans. Both shapes are resolved
// against an already-loaded catalog by name, failing fast on any name the
// catalog doesn't recognize (spec §7 name-not-found) rather than silently
// dropping the row.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/calc/skills"
	"github.com/nineclaw/mhrcalc/internal/calc/slots"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// nameDict resolves a display name back to a catalog ID, checking the raw
// ID first (so catalogs that already use human-readable ids need no
// separate names table) and falling back to the localized display name.
type nameDict struct {
	byID   map[string]bool
	byName map[string]string
}

func armorNameDict(cat *catalog.Catalog) nameDict {
	d := nameDict{byID: make(map[string]bool, len(cat.Armors)), byName: make(map[string]string, len(cat.Armors))}
	for _, a := range cat.Armors {
		d.byID[a.ID] = true
		d.byName[a.DisplayName(cat.DefaultLanguage, cat.DefaultLanguage)] = a.ID
	}
	return d
}

func skillNameDict(cat *catalog.Catalog) nameDict {
	d := nameDict{byID: make(map[string]bool, len(cat.Skills)), byName: make(map[string]string, len(cat.Skills))}
	for _, s := range cat.Skills {
		d.byID[string(s.ID)] = true
		d.byName[s.DisplayName(cat.DefaultLanguage, cat.DefaultLanguage)] = string(s.ID)
	}
	return d
}

func (d nameDict) resolve(name string) (string, bool) {
	if d.byID[name] {
		return name, true
	}
	if id, ok := d.byName[name]; ok {
		return id, true
	}
	return "", false
}

func openCSV(path string) (*csv.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r, f, nil
}

// LoadAnomalyArmors parses anomaly CSV rows (spec §6:
// "armor_name, defense, fire, water, elec, ice, dragon, slot1, slot2, slot3,
// (skill_name, level)*") into anomaly Equipment pieces, each carrying both
// its original and its anomaly-affected values (spec §3).
//
// A missing file is catalog-missing (spec §7): it yields an empty slice and
// no error. An unresolvable armor or skill name fails the whole call.
func LoadAnomalyArmors(path string, cat *catalog.Catalog) ([]*equipment.Equipment, error) {
	r, f, err := openCSV(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: opening anomaly csv: %w", err)
	}
	defer f.Close()

	armors := armorNameDict(cat)
	skillIDs := skillNameDict(cat)

	var out []*equipment.Equipment
	for row := 0; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: anomaly csv row %d: %w", row, err)
		}
		if len(rec) < 10 {
			return nil, fmt.Errorf("ingest: anomaly csv row %d: expected at least 10 fields, got %d", row, len(rec))
		}

		armorID, ok := armors.resolve(rec[0])
		if !ok {
			return nil, fmt.Errorf("ingest: anomaly csv row %d: %w", row, &catalog.UnknownArmorError{Name: rec[0]})
		}
		base := findArmor(cat, armorID)

		statDiff, err := parseStatDiff(rec[1:7])
		if err != nil {
			return nil, fmt.Errorf("ingest: anomaly csv row %d: %w", row, err)
		}

		slotDiff, err := parseSlotTriple(rec[7:10])
		if err != nil {
			return nil, fmt.Errorf("ingest: anomaly csv row %d: %w", row, err)
		}

		skillDiffs, err := parseSkillPairs(rec[10:], skillIDs, cat, row)
		if err != nil {
			return nil, err
		}

		out = append(out, buildAnomalyEquipment(cat, base, statDiff, slotDiff, skillDiffs, row))
	}
	return out, nil
}

// LoadTalismans parses talisman CSV rows (spec §6:
// "skill1_name, level1, skill2_name, level2, slot1, slot2, slot3") into
// talisman Equipment pieces, with synthetic ids "talisman_file_{index}"
// (spec §6 Synthetic identifiers).
func LoadTalismans(path string, cat *catalog.Catalog) ([]*equipment.Equipment, error) {
	r, f, err := openCSV(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: opening talisman csv: %w", err)
	}
	defer f.Close()

	skillIDs := skillNameDict(cat)

	var out []*equipment.Equipment
	for row := 0; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: talisman csv row %d: %w", row, err)
		}
		if len(rec) < 7 {
			return nil, fmt.Errorf("ingest: talisman csv row %d: expected at least 7 fields, got %d", row, len(rec))
		}

		sk := skills.New(cat.SkillCount())
		for _, pair := range [][2]string{{rec[0], rec[1]}, {rec[2], rec[3]}} {
			name, levelStr := pair[0], pair[1]
			if name == "" {
				continue
			}
			id, ok := skillIDs.resolve(name)
			if !ok {
				return nil, fmt.Errorf("ingest: talisman csv row %d: %w", row, &catalog.UnknownSkillError{ID: catalog.SkillID(name)})
			}
			level, err := strconv.ParseInt(levelStr, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("ingest: talisman csv row %d: invalid level %q: %w", row, levelStr, err)
			}
			uid, _ := cat.SkillUID(catalog.SkillID(id))
			sk.Set(uid, skills.Level(level))
		}

		raw, err := parseSlotTriple(rec[4:7])
		if err != nil {
			return nil, fmt.Errorf("ingest: talisman csv row %d: %w", row, err)
		}

		id := fmt.Sprintf("talisman_file_%d", row)
		e := equipment.New(id, catalog.PartTalisman, equipment.VariantTalisman, sk, slots.Vec{raw[0], raw[1], raw[2], 0}, catalog.StatBlock{})
		e.Sex = catalog.SexAll
		out = append(out, e)
	}
	return out, nil
}

func findArmor(cat *catalog.Catalog, id string) catalog.ArmorRecord {
	for _, a := range cat.Armors {
		if a.ID == id {
			return a
		}
	}
	return catalog.ArmorRecord{}
}

func parseStatDiff(fields []string) (catalog.StatBlock, error) {
	vals := make([]int16, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 16)
		if err != nil {
			return catalog.StatBlock{}, fmt.Errorf("invalid stat value %q: %w", f, err)
		}
		vals[i] = int16(n)
	}
	return catalog.StatBlock{Defense: vals[0], Fire: vals[1], Water: vals[2], Elec: vals[3], Ice: vals[4], Dragon: vals[5]}, nil
}

func parseSlotTriple(fields []string) ([3]slots.Count, error) {
	var out [3]slots.Count
	for i, f := range fields {
		n, err := strconv.ParseInt(f, 10, 8)
		if err != nil {
			return out, fmt.Errorf("invalid slot value %q: %w", f, err)
		}
		out[i] = slots.Count(n)
	}
	return out, nil
}

type skillDiff struct {
	uid   skills.UID
	level skills.Level
}

func parseSkillPairs(fields []string, dict nameDict, cat *catalog.Catalog, row int) ([]skillDiff, error) {
	var out []skillDiff
	for i := 0; i+1 < len(fields); i += 2 {
		name, levelStr := fields[i], fields[i+1]
		if name == "" {
			continue
		}
		id, ok := dict.resolve(name)
		if !ok {
			return nil, fmt.Errorf("ingest: anomaly csv row %d: %w", row, &catalog.UnknownSkillError{ID: catalog.SkillID(name)})
		}
		level, err := strconv.ParseInt(levelStr, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("ingest: anomaly csv row %d: invalid level %q: %w", row, levelStr, err)
		}
		uid, _ := cat.SkillUID(catalog.SkillID(id))
		out = append(out, skillDiff{uid: uid, level: skills.Level(level)})
	}
	return out, nil
}

// buildAnomalyEquipment applies statDiff/slotDiff/skillDiffs on top of base
// (spec §6, mirroring AnomalyArmor::new of the original implementation):
// skill levels clamp at zero, slot counts clamp at slots.MaxLevel and are
// re-sorted descending by size after the diff is applied.
func buildAnomalyEquipment(cat *catalog.Catalog, base catalog.ArmorRecord, statDiff catalog.StatBlock, slotDiff [3]slots.Count, skillDiffs []skillDiff, row int) *equipment.Equipment {
	baseSkills := skills.New(cat.SkillCount())
	for id, lv := range base.Skills {
		if uid, ok := cat.SkillUID(id); ok {
			baseSkills.Set(uid, skills.Level(lv))
		}
	}

	affectedSkills := baseSkills.Clone()
	for _, d := range skillDiffs {
		newLevel := affectedSkills.Get(d.uid) + d.level
		if newLevel < 0 {
			newLevel = 0
		}
		affectedSkills.Set(d.uid, newLevel)
	}

	baseSlots := slots.Vec{slots.Count(base.Slots[0]), slots.Count(base.Slots[1]), slots.Count(base.Slots[2]), 0}
	affectedSlots := baseSlots
	for i := 0; i < 3; i++ {
		v := affectedSlots[i] + slotDiff[i]
		if v > slots.MaxLevel {
			v = slots.MaxLevel
		}
		if v < 0 {
			v = 0
		}
		affectedSlots[i] = v
	}
	sortDescending(&affectedSlots)

	baseStat := base.Stat
	affectedStat := base.Stat.Add(statDiff)

	id := fmt.Sprintf("__anomaly_file_%d_%s", row, base.ID)
	e := equipment.NewAnomaly(id, base.Part, affectedSkills, baseSkills, affectedSlots, baseSlots, affectedStat, baseStat)
	e.BaseID = base.ID
	e.Sex = base.Sex
	return e
}

func sortDescending(v *slots.Vec) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] > v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}
