package farm

import (
	"fmt"

	"homestead/internal/domain/world"
)

type CellSnapshot struct {
	Pos  world.Point `json:"pos"`
	Crop *Crop       `json:"crop,omitempty"`
}

type Snapshot struct {
	Cells     []CellSnapshot `json:"cells"`
	Inventory map[string]int `json:"inventory"`
}

func (t *Tracker) Snapshot() Snapshot {
	cells := t.Cells()
	out := Snapshot{
		Cells:     make([]CellSnapshot, 0, len(cells)),
		Inventory: t.ledger.Items(),
	}
	for _, c := range cells {
		cs := CellSnapshot{Pos: c.Pos}
		if c.Crop != nil {
			crop := *c.Crop
			cs.Crop = &crop
		}
		out.Cells = append(out.Cells, cs)
	}
	return out
}

// Restore replaces cells and inventory. Observers stay registered.
func (t *Tracker) Restore(s Snapshot) error {
	cells := make(map[world.Point]*Cell, len(s.Cells))
	for _, cs := range s.Cells {
		if !t.field.Contains(cs.Pos) {
			return fmt.Errorf("%w: cell %s outside the field", ErrInvalidSnapshot, cs.Pos)
		}
		if _, dup := cells[cs.Pos]; dup {
			return fmt.Errorf("%w: duplicate cell %s", ErrInvalidSnapshot, cs.Pos)
		}
		cell := &Cell{Pos: cs.Pos, Tilled: true}
		if cs.Crop != nil {
			crop := *cs.Crop
			if crop.Ready && crop.Withered {
				return fmt.Errorf("%w: crop at %s both ready and withered", ErrInvalidSnapshot, cs.Pos)
			}
			if crop.Duration <= 0 || crop.Growth < 0 || crop.Growth > crop.Duration {
				return fmt.Errorf("%w: crop at %s has growth %s of %s", ErrInvalidSnapshot, cs.Pos, crop.Growth, crop.Duration)
			}
			if crop.StageCount < 1 {
				crop.StageCount = 1
			}
			cell.Crop = &crop
		}
		cells[cs.Pos] = cell
	}
	t.cells = cells
	t.ledger = NewLedger(s.Inventory)
	return nil
}
