package homestead

import (
	"homestead/internal/domain/farm"
	"homestead/internal/domain/mission"
	"homestead/internal/domain/world"
)

type CellView struct {
	Pos        world.Point    `json:"pos"`
	State      farm.CellState `json:"state"`
	Species    string         `json:"species,omitempty"`
	Stage      int            `json:"stage"`
	StageCount int            `json:"stage_count,omitempty"`
	GrowthMS   int64          `json:"growth_ms"`
	DurationMS int64          `json:"duration_ms,omitempty"`
	Watered    bool           `json:"watered"`
}

type ObjectiveView struct {
	mission.Objective
	Status string `json:"status"`
}

type View struct {
	Field       world.Bounds    `json:"field"`
	Cells       []CellView      `json:"cells"`
	Inventory   map[string]int  `json:"inventory"`
	Objectives  []ObjectiveView `json:"objectives"`
	MissionIdle bool            `json:"mission_idle"`
	ElapsedMS   int64           `json:"elapsed_ms"`
}

func (g *Game) View() View {
	cells := g.Farm.Cells()
	v := View{
		Field:       g.Farm.Field(),
		Cells:       make([]CellView, 0, len(cells)),
		Inventory:   g.Farm.Ledger().Items(),
		MissionIdle: g.Missions.Idle(),
		ElapsedMS:   g.elapsed.Milliseconds(),
	}
	for _, c := range cells {
		cv := CellView{Pos: c.Pos, State: c.State()}
		if crop := c.Crop; crop != nil {
			cv.Species = crop.Species
			cv.Stage = crop.Stage()
			cv.StageCount = crop.StageCount
			cv.GrowthMS = crop.Growth.Milliseconds()
			cv.DurationMS = crop.Duration.Milliseconds()
			cv.Watered = crop.Watered
		}
		v.Cells = append(v.Cells, cv)
	}
	active := g.Missions.Active()
	v.Objectives = make([]ObjectiveView, 0, len(active))
	for _, o := range active {
		v.Objectives = append(v.Objectives, ObjectiveView{Objective: o, Status: o.Status()})
	}
	return v
}
