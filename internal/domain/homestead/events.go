package homestead

import (
	"time"

	"homestead/internal/domain/farm"
	"homestead/internal/domain/mission"
)

type EventType string

const (
	EventTilled             EventType = "tilled"
	EventPlanted            EventType = "planted"
	EventWatered            EventType = "watered"
	EventHarvested          EventType = "harvested"
	EventWithered           EventType = "withered"
	EventCleared            EventType = "cleared"
	EventObjectiveCompleted EventType = "objective_completed"
)

// Event carries no wall time; callers stamp it when persisting.
type Event struct {
	Type    EventType      `json:"type"`
	Elapsed int64          `json:"elapsed_ms"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (g *Game) record(t EventType, payload map[string]any) {
	g.recordAt(t, g.elapsed, payload)
}

func (g *Game) recordAt(t EventType, at time.Duration, payload map[string]any) {
	g.events = append(g.events, Event{Type: t, Elapsed: at.Milliseconds(), Payload: payload})
}

func (g *Game) recordNotification(n farm.Notification) {
	var t EventType
	switch n.Kind {
	case farm.NotifyPlanted:
		t = EventPlanted
	case farm.NotifyWatered:
		t = EventWatered
	case farm.NotifyHarvested:
		t = EventHarvested
	case farm.NotifyWithered:
		t = EventWithered
	default:
		return
	}
	g.recordAt(t, g.elapsed+n.TickOffset, map[string]any{
		"pos":          n.Pos,
		"species":      n.Species,
		"seed_item":    n.SeedItem,
		"harvest_item": n.HarvestItem,
	})
}

func (g *Game) recordCompletion(o mission.Objective) {
	g.record(EventObjectiveCompleted, map[string]any{
		"objective":     o.Name,
		"kind":          string(o.Kind),
		"reward_item":   o.RewardItem,
		"reward_amount": o.RewardAmount,
	})
}
