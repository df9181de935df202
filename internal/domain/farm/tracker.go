package farm

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"homestead/internal/domain/world"
)

const DefaultWaterInterval = 5 * time.Second

type Messenger interface {
	Show(msg string)
}

type Cue interface {
	PlayCompletion(objective string)
}

type Config struct {
	Catalog Catalog
	Field   world.Bounds
	// WaterInterval is how long one watering keeps a crop growing.
	// Zero selects DefaultWaterInterval, negative never dries out.
	WaterInterval time.Duration
	Inventory     map[string]int
	Messenger     Messenger
	Cue           Cue
	Logger        *slog.Logger
}

type Tracker struct {
	catalog   Catalog
	field     world.Bounds
	waterFor  time.Duration
	cells     map[world.Point]*Cell
	ledger    *Ledger
	messenger Messenger
	cue       Cue
	logger    *slog.Logger

	observers []observerEntry
	nextSubID uint64
}

func NewTracker(cfg Config) *Tracker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	field := cfg.Field
	if field.Empty() {
		field = world.DefaultField()
	}
	waterFor := cfg.WaterInterval
	switch {
	case waterFor == 0:
		waterFor = DefaultWaterInterval
	case waterFor < 0:
		waterFor = 0
	}
	if cfg.Messenger == nil {
		logger.Warn("farm tracker has no messenger; player messages are dropped")
	}
	if cfg.Cue == nil {
		logger.Warn("farm tracker has no completion cue; mission cues are skipped")
	}
	if cfg.Catalog.Len() == 0 {
		logger.Warn("farm tracker has an empty species catalog; planting is disabled")
	}
	return &Tracker{
		catalog:   cfg.Catalog,
		field:     field,
		waterFor:  waterFor,
		cells:     make(map[world.Point]*Cell),
		ledger:    NewLedger(cfg.Inventory),
		messenger: cfg.Messenger,
		cue:       cfg.Cue,
		logger:    logger,
	}
}

func (t *Tracker) Field() world.Bounds {
	return t.field
}

func (t *Tracker) Catalog() Catalog {
	return t.catalog
}

func (t *Tracker) Ledger() *Ledger {
	return t.ledger
}

func (t *Tracker) WaterInterval() time.Duration {
	return t.waterFor
}

// Cell returns the live record for p, or nil when p is untilled.
func (t *Tracker) Cell(p world.Point) *Cell {
	return t.cells[p]
}

func (t *Tracker) StateAt(p world.Point) CellState {
	return t.cells[p].State()
}

// Cells returns the tilled cells ordered row by row.
func (t *Tracker) Cells() []*Cell {
	out := make([]*Cell, 0, len(t.cells))
	for _, c := range t.cells {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Cell) int { return world.ComparePoints(a.Pos, b.Pos) })
	return out
}

func (t *Tracker) Tiles() []world.Tile {
	cells := t.Cells()
	out := make([]world.Tile, 0, len(cells))
	for _, c := range cells {
		out = append(out, world.Tile{Pos: c.Pos, Kind: world.TileTilled})
	}
	return out
}

func (t *Tracker) Till(p world.Point) error {
	if !t.field.Contains(p) {
		return t.reject(p, ErrOutOfBounds, "You can't farm outside the field.")
	}
	if c := t.cells[p]; c != nil && c.Tilled {
		return t.reject(p, ErrAlreadyTilled, "This ground is already tilled.")
	}
	t.cells[p] = &Cell{Pos: p, Tilled: true}
	t.show("The ground is tilled.")
	return nil
}

// Plant accepts a species name or seed item.
func (t *Tracker) Plant(p world.Point, species string) error {
	cell := t.cells[p]
	if cell == nil || !cell.Tilled {
		return t.reject(p, ErrNotTilled, "You need to till the ground first.")
	}
	if cell.Crop != nil {
		return t.reject(p, ErrOccupied, "Something is already planted here.")
	}
	s, ok := t.catalog.Lookup(species)
	if !ok {
		return t.reject(p, ErrUnknownSpecies, fmt.Sprintf("You don't know how to plant %q.", species))
	}
	if !t.ledger.Consume(s.SeedItem, 1) {
		return t.reject(p, ErrNoSeeds, fmt.Sprintf("You have no %s left.", s.SeedItem))
	}
	cell.Crop = newCrop(s)
	t.show(fmt.Sprintf("Planted %s. %d %s left.", titled(s.Name), t.ledger.Count(s.SeedItem), s.SeedItem))
	t.emit(NotifyPlanted, p, cell.Crop)
	return nil
}

func (t *Tracker) Water(p world.Point) error {
	cell := t.cells[p]
	if cell == nil || cell.Crop == nil || !cell.Crop.Growing() {
		return t.reject(p, ErrNotGrowing, "There is nothing here that needs water.")
	}
	crop := cell.Crop
	if crop.Watered {
		return t.reject(p, ErrAlreadyWatered, fmt.Sprintf("The %s is already watered.", titled(crop.Species)))
	}
	crop.Watered = true
	crop.SinceWatered = 0
	t.show(fmt.Sprintf("Watered the %s.", titled(crop.Species)))
	t.emit(NotifyWatered, p, crop)
	return nil
}

func (t *Tracker) Harvest(p world.Point) error {
	cell := t.cells[p]
	if cell == nil || cell.Crop == nil || !cell.Crop.Ready {
		return t.reject(p, ErrNotReady, "Nothing is ready to harvest here.")
	}
	crop := cell.Crop
	t.ledger.Add(crop.HarvestItem, 1)
	cell.reset()
	t.show(fmt.Sprintf("Harvested %s! You now have %d.", titled(crop.HarvestItem), t.ledger.Count(crop.HarvestItem)))
	t.emit(NotifyHarvested, p, crop)
	return nil
}

func (t *Tracker) Clear(p world.Point) error {
	cell := t.cells[p]
	if cell == nil || cell.Crop == nil || !cell.Crop.Withered {
		return t.reject(p, ErrNotWithered, "There is no withered crop here.")
	}
	species := cell.Crop.Species
	cell.reset()
	t.show(fmt.Sprintf("Cleared the withered %s.", titled(species)))
	return nil
}

type Action string

const (
	ActionTill    Action = "till"
	ActionPlant   Action = "plant"
	ActionWater   Action = "water"
	ActionHarvest Action = "harvest"
	ActionClear   Action = "clear"
	ActionInspect Action = "inspect"
)

// Interact performs whatever the cell's state calls for.
func (t *Tracker) Interact(p world.Point) (Action, error) {
	cell := t.cells[p]
	switch cell.State() {
	case CellUntilled:
		return ActionTill, t.Till(p)
	case CellTilled:
		for _, s := range t.catalog.species {
			if t.ledger.Count(s.SeedItem) > 0 {
				return ActionPlant, t.Plant(p, s.Name)
			}
		}
		return ActionPlant, t.reject(p, ErrNoSeeds, "You have no seeds to plant.")
	case CellGrowing:
		if !cell.Crop.Watered {
			return ActionWater, t.Water(p)
		}
		t.show(progressMessage(cell.Crop))
		return ActionInspect, nil
	case CellReady:
		return ActionHarvest, t.Harvest(p)
	default:
		return ActionClear, t.Clear(p)
	}
}

// Tick advances every crop by dt.
func (t *Tracker) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	for _, cell := range t.Cells() {
		if cell.Crop == nil {
			continue
		}
		crop := cell.Crop
		tr := crop.advance(dt, t.waterFor)
		if tr.ready {
			t.show(fmt.Sprintf("The %s at %s is ready to harvest.", titled(crop.Species), cell.Pos))
		}
		if tr.withered {
			t.show(fmt.Sprintf("The %s at %s has withered.", titled(crop.Species), cell.Pos))
			t.emitAt(NotifyWithered, cell.Pos, crop, tr.witheredAt)
		}
	}
}

func (t *Tracker) Deposit(item string, amount int) {
	if amount <= 0 || item == "" {
		return
	}
	t.ledger.Add(item, amount)
	t.show(fmt.Sprintf("Received %d %s.", amount, item))
}

func (t *Tracker) PlayCompletionCue(objective string) {
	if t.cue == nil {
		return
	}
	t.cue.PlayCompletion(objective)
}

func (t *Tracker) reject(p world.Point, err error, msg string) error {
	t.show(msg)
	return fmt.Errorf("cell %s: %w", p, err)
}

func (t *Tracker) show(msg string) {
	if t.messenger == nil {
		return
	}
	t.messenger.Show(msg)
}

func progressMessage(c *Crop) string {
	pct := 0
	if c.Duration > 0 {
		pct = int(c.Growth * 100 / c.Duration)
	}
	return fmt.Sprintf("The %s is growing (stage %d of %d, %d%%).", titled(c.Species), c.Stage()+1, c.StageCount, pct)
}

func titled(s string) string {
	return cases.Title(language.English).String(s)
}
