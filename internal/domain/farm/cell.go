package farm

import "homestead/internal/domain/world"

type CellState string

const (
	CellUntilled CellState = "untilled"
	CellTilled   CellState = "tilled"
	CellGrowing  CellState = "growing"
	CellReady    CellState = "ready"
	CellWithered CellState = "withered"
)

// Cell is only stored once tilled; an absent cell is untilled ground.
type Cell struct {
	Pos    world.Point
	Tilled bool
	Crop   *Crop
}

func (c *Cell) State() CellState {
	switch {
	case c == nil || !c.Tilled:
		return CellUntilled
	case c.Crop == nil:
		return CellTilled
	case c.Crop.Withered:
		return CellWithered
	case c.Crop.Ready:
		return CellReady
	default:
		return CellGrowing
	}
}

func (c *Cell) reset() {
	c.Crop = nil
}
