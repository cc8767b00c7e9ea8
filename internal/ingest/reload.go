package ingest

import (
	"github.com/nineclaw/mhrcalc/internal/calc/datamanager"
	"github.com/nineclaw/mhrcalc/internal/calc/deco"
	"github.com/nineclaw/mhrcalc/internal/calc/equipment"
	"github.com/nineclaw/mhrcalc/internal/catalog"
)

// BuildManager parses the anomaly and talisman CSV sources (either path may
// be empty, meaning none) and assembles a fresh datamanager.Manager from
// cat/dc plus the ingested pieces. It never mutates an existing Manager: the
// caller swaps the returned Manager in only once this call succeeds, giving
// the "rebuild into a fresh manager, swap in atomically" lifecycle rule of
// spec §4.10/§3 for free — a half-parsed CSV can never affect a Manager
// already in use.
func BuildManager(cat *catalog.Catalog, dc *deco.Cache, anomalyCSVPath, talismanCSVPath string) (*datamanager.Manager, error) {
	var anomalyEquips, talismanEquips []*equipment.Equipment
	var err error

	if anomalyCSVPath != "" {
		anomalyEquips, err = LoadAnomalyArmors(anomalyCSVPath, cat)
		if err != nil {
			return nil, err
		}
	}
	if talismanCSVPath != "" {
		talismanEquips, err = LoadTalismans(talismanCSVPath, cat)
		if err != nil {
			return nil, err
		}
	}

	return datamanager.New(cat, dc, anomalyEquips, talismanEquips), nil
}
