package status

import (
	"homestead/internal/domain/farm"
	"homestead/internal/domain/world"
)

type Request struct {
	FarmID string
}

// Response is a compact summary for dashboards; observe carries the full view.
type Response struct {
	FarmID      string                 `json:"farm_id"`
	Version     int64                  `json:"version"`
	ElapsedMS   int64                  `json:"elapsed_ms"`
	Tilled      int                    `json:"tilled"`
	CellCounts  map[farm.CellState]int `json:"cell_counts"`
	Ready       []world.Point          `json:"ready"`
	NeedsWater  []world.Point          `json:"needs_water"`
	Withered    []world.Point          `json:"withered"`
	Missions    []string               `json:"missions"`
	Completed   int                    `json:"completed_objectives"`
	MissionIdle bool                   `json:"mission_idle"`
	Inventory   map[string]int         `json:"inventory"`
}
