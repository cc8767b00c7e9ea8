package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// armorDTO/skillDTO/decorationDTO are the on-disk shapes for the three
// catalog inputs (spec §6), shared by the JSON and YAML loaders. They are
// intentionally looser than the in-memory record types (plain
// strings/maps) so that catalog authors don't need to hand-write dense
// uids or typed enums.
type armorDTO struct {
	ID     string            `json:"id" yaml:"id"`
	Part   string            `json:"part" yaml:"part"`
	Sex    string            `json:"sex_type" yaml:"sex_type"`
	Names  map[string]string `json:"names" yaml:"names"`
	Rarity int               `json:"rarity" yaml:"rarity"`
	Stat   StatBlock         `json:"stat" yaml:"stat"`
	Skills map[string]int8   `json:"skills" yaml:"skills"`
	Slots  [3]int8           `json:"slots" yaml:"slots"`
}

type skillDTO struct {
	ID       string            `json:"id" yaml:"id"`
	MaxLevel int8              `json:"max_level" yaml:"max_level"`
	Names    map[string]string `json:"names" yaml:"names"`
}

type decorationDTO struct {
	ID         string `json:"id" yaml:"id"`
	SkillID    string `json:"skill_id" yaml:"skill_id"`
	SkillLevel int8   `json:"skill_level" yaml:"skill_level"`
	SlotSize   int8   `json:"slot_size" yaml:"slot_size"`
}

// LoadArmors reads the armor catalog file at path, dispatching on its
// extension: ".yaml"/".yml" is parsed with yaml.v3, anything else with
// encoding/json. Both formats decode into the same armorDTO shape.
func LoadArmors(path string) ([]ArmorRecord, error) {
	var raw []armorDTO
	if err := readCatalogFile(path, &raw); err != nil {
		return nil, err
	}
	return buildArmorRecords(raw)
}

// LoadSkills reads the skill catalog file at path, with the same
// extension dispatch as LoadArmors.
func LoadSkills(path string) ([]SkillRecord, error) {
	var raw []skillDTO
	if err := readCatalogFile(path, &raw); err != nil {
		return nil, err
	}
	return buildSkillRecords(raw)
}

// LoadDecorations reads the decoration catalog file at path, with the same
// extension dispatch as LoadArmors.
func LoadDecorations(path string) ([]DecorationRecord, error) {
	var raw []decorationDTO
	if err := readCatalogFile(path, &raw); err != nil {
		return nil, err
	}
	return buildDecorationRecords(raw)
}

// LoadArmorsJSON reads the armor catalog file at path, always as JSON
// regardless of extension. Kept for callers that already know their input
// is JSON; LoadArmors is the format-agnostic entrypoint wireset uses.
func LoadArmorsJSON(path string) ([]ArmorRecord, error) {
	var raw []armorDTO
	readJSONFile(path, &raw)
	return buildArmorRecords(raw)
}

// LoadSkillsJSON mirrors LoadArmorsJSON for the skill catalog.
func LoadSkillsJSON(path string) ([]SkillRecord, error) {
	var raw []skillDTO
	readJSONFile(path, &raw)
	return buildSkillRecords(raw)
}

// LoadDecorationsJSON mirrors LoadArmorsJSON for the decoration catalog.
func LoadDecorationsJSON(path string) ([]DecorationRecord, error) {
	var raw []decorationDTO
	readJSONFile(path, &raw)
	return buildDecorationRecords(raw)
}

func buildArmorRecords(raw []armorDTO) ([]ArmorRecord, error) {
	out := make([]ArmorRecord, 0, len(raw))
	var errs error
	for _, a := range raw {
		rec := ArmorRecord{
			ID:     a.ID,
			Part:   Part(a.Part),
			Sex:    SexType(a.Sex),
			Names:  a.Names,
			Rarity: a.Rarity,
			Stat:   a.Stat,
			Slots:  a.Slots,
		}
		if a.Skills != nil {
			rec.Skills = make(map[SkillID]int8, len(a.Skills))
			for k, v := range a.Skills {
				rec.Skills[SkillID(k)] = v
			}
		}
		if err := validateArmorRecord(rec); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("armor %q: %w", rec.ID, err))
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}

func buildSkillRecords(raw []skillDTO) ([]SkillRecord, error) {
	out := make([]SkillRecord, 0, len(raw))
	var errs error
	for _, s := range raw {
		rec := SkillRecord{ID: SkillID(s.ID), MaxLevel: s.MaxLevel, Names: s.Names}
		if rec.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("skill record missing id"))
			continue
		}
		if rec.MaxLevel < 1 {
			errs = multierr.Append(errs, fmt.Errorf("skill %q: max_level must be >= 1", rec.ID))
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}

func buildDecorationRecords(raw []decorationDTO) ([]DecorationRecord, error) {
	out := make([]DecorationRecord, 0, len(raw))
	var errs error
	for _, d := range raw {
		rec := DecorationRecord{ID: d.ID, SkillID: SkillID(d.SkillID), SkillLevel: d.SkillLevel, SlotSize: d.SlotSize}
		if err := validateDecorationRecord(rec); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("decoration %q: %w", rec.ID, err))
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}

// readJSONFile reads and unmarshals path into v. A missing or unparsable
// file is treated as "catalog-missing" (spec §7): v is left at its zero
// value (an empty slice) and the caller continues with an empty dataset.
func readJSONFile(path string, v interface{}) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, v)
}

// readCatalogFile is readJSONFile's format-dispatching counterpart: a
// missing file is catalog-missing (v stays at its zero value, no error); a
// present-but-unparsable file reports a decode error instead of silently
// ignoring it, since an explicit YAML/JSON choice was already made by the
// file's extension.
func readCatalogFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}
