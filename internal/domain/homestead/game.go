package homestead

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"homestead/internal/domain/farm"
	"homestead/internal/domain/mission"
	"homestead/internal/domain/world"
)

var ErrUnknownIntent = errors.New("unknown intent")

type Options struct {
	Catalog       farm.Catalog
	Field         world.Bounds
	WaterInterval time.Duration
	Inventory     map[string]int
	Missions      []mission.Objective
	MaxActive     int
	Seed          int64
	// Messenger and Cue are forwarded to after the game records them.
	Messenger farm.Messenger
	Cue       farm.Cue
	Logger    *slog.Logger
}

// Game binds one farm to its mission tracker and records what happened
// since the last drain.
type Game struct {
	Farm     *farm.Tracker
	Missions *mission.Tracker

	messenger farm.Messenger
	cue       farm.Cue
	sub       farm.Subscription
	elapsed   time.Duration
	events    []Event
	messages  []string
	closed    bool
}

func New(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{messenger: opts.Messenger, cue: opts.Cue}
	g.Farm = farm.NewTracker(farm.Config{
		Catalog:       opts.Catalog,
		Field:         opts.Field,
		WaterInterval: opts.WaterInterval,
		Inventory:     opts.Inventory,
		Messenger:     gameMessenger{g},
		Cue:           gameCue{g},
		Logger:        logger,
	})
	missions, err := mission.NewTracker(mission.Config{
		Pool:        opts.Missions,
		MaxActive:   opts.MaxActive,
		Seed:        opts.Seed,
		Rewards:     g.Farm,
		OnCompleted: g.recordCompletion,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("mission pool: %w", err)
	}
	g.Missions = missions
	// the log observer goes first so a completion is recorded after its cause
	g.sub = g.Farm.Subscribe(g.recordNotification)
	g.Missions.Attach(g.Farm)
	return g, nil
}

func Restore(opts Options, snap Snapshot) (*Game, error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := g.Farm.Restore(snap.Farm); err != nil {
		g.Close()
		return nil, err
	}
	if err := g.Missions.Restore(snap.Missions); err != nil {
		g.Close()
		return nil, err
	}
	g.elapsed = snap.Elapsed
	return g, nil
}

// Close detaches the mission tracker and the event log from the farm.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.Missions.Detach()
	g.Farm.Unsubscribe(g.sub)
}

func (g *Game) Elapsed() time.Duration {
	return g.elapsed
}

func (g *Game) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	// elapsed stays at the tick start while crops advance so notifications
	// are recorded at start plus their offset.
	start := g.elapsed
	g.Farm.Tick(dt)
	g.elapsed = start + dt
}

type IntentType string

const (
	IntentTill     IntentType = "till"
	IntentPlant    IntentType = "plant"
	IntentWater    IntentType = "water"
	IntentHarvest  IntentType = "harvest"
	IntentClear    IntentType = "clear"
	IntentInteract IntentType = "interact"
)

type Intent struct {
	Type    IntentType  `json:"type"`
	Pos     world.Point `json:"pos"`
	Species string      `json:"species,omitempty"`
}

// Apply runs one player action. Domain rejections come back as wrapped
// farm sentinel errors with the farm state untouched.
func (g *Game) Apply(in Intent) (farm.Action, error) {
	var (
		action farm.Action
		err    error
	)
	switch in.Type {
	case IntentTill:
		action, err = farm.ActionTill, g.Farm.Till(in.Pos)
	case IntentPlant:
		action, err = farm.ActionPlant, g.Farm.Plant(in.Pos, in.Species)
	case IntentWater:
		action, err = farm.ActionWater, g.Farm.Water(in.Pos)
	case IntentHarvest:
		action, err = farm.ActionHarvest, g.Farm.Harvest(in.Pos)
	case IntentClear:
		action, err = farm.ActionClear, g.Farm.Clear(in.Pos)
	case IntentInteract:
		action, err = g.Farm.Interact(in.Pos)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, in.Type)
	}
	if err != nil {
		return action, err
	}
	switch action {
	case farm.ActionTill:
		g.record(EventTilled, map[string]any{"pos": in.Pos})
	case farm.ActionClear:
		g.record(EventCleared, map[string]any{"pos": in.Pos})
	}
	return action, nil
}

func (g *Game) DrainEvents() []Event {
	out := g.events
	g.events = nil
	return out
}

func (g *Game) DrainMessages() []string {
	out := g.messages
	g.messages = nil
	return out
}

type Snapshot struct {
	Farm     farm.Snapshot    `json:"farm"`
	Missions mission.Snapshot `json:"missions"`
	Elapsed  time.Duration    `json:"elapsed"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Farm:     g.Farm.Snapshot(),
		Missions: g.Missions.Snapshot(),
		Elapsed:  g.elapsed,
	}
}

type gameMessenger struct{ g *Game }

func (m gameMessenger) Show(msg string) {
	m.g.messages = append(m.g.messages, msg)
	if m.g.messenger != nil {
		m.g.messenger.Show(msg)
	}
}

type gameCue struct{ g *Game }

func (c gameCue) PlayCompletion(objective string) {
	if c.g.cue != nil {
		c.g.cue.PlayCompletion(objective)
	}
}
