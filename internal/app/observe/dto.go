package observe

import (
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"
)

type Request struct {
	FarmID string
}

type Response struct {
	FarmID     string         `json:"farm_id"`
	Version    int64          `json:"version"`
	PendingMS  int64          `json:"pending_ms"`
	View       homestead.View `json:"view"`
	Tiles      []world.Tile   `json:"tiles"`
	Species    []SpeciesInfo  `json:"species"`
	Remaining  int            `json:"remaining_objectives"`
	ObservedAt string         `json:"observed_at"`
}

type SpeciesInfo struct {
	Name          string `json:"name"`
	SeedItem      string `json:"seed_item"`
	HarvestItem   string `json:"harvest_item"`
	GrowthSeconds int64  `json:"growth_seconds"`
	StageCount    int    `json:"stage_count"`
	WitherSeconds int64  `json:"wither_seconds"`
}
