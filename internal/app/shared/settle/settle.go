package settle

import (
	"maps"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/homestead"
)

const DefaultMaxElapsed = 24 * time.Hour

// Elapsed is the simulated time a farm owes since it was last saved.
// A non-positive limit means DefaultMaxElapsed.
func Elapsed(updatedAt, now time.Time, limit time.Duration) time.Duration {
	if limit <= 0 {
		limit = DefaultMaxElapsed
	}
	if updatedAt.IsZero() {
		return 0
	}
	d := now.Sub(updatedAt)
	if d <= 0 {
		return 0
	}
	return min(d, limit)
}

// Advance settles elapsed time into the game and returns how much was applied.
func Advance(g *homestead.Game, updatedAt, now time.Time, limit time.Duration) time.Duration {
	d := Elapsed(updatedAt, now, limit)
	g.Tick(d)
	return d
}

// Stamp turns events recorded during a request into persisted records. Event
// times are placed back from now by how much game time followed them.
func Stamp(farmID string, events []homestead.Event, now time.Time, gameElapsed time.Duration) []ports.EventRecord {
	out := make([]ports.EventRecord, 0, len(events))
	for _, e := range events {
		lag := gameElapsed - time.Duration(e.Elapsed)*time.Millisecond
		if lag < 0 {
			lag = 0
		}
		payload := maps.Clone(e.Payload)
		if payload == nil {
			payload = map[string]any{}
		}
		payload["farm_id"] = farmID
		out = append(out, ports.EventRecord{
			FarmID:     farmID,
			Type:       string(e.Type),
			OccurredAt: now.Add(-lag),
			Payload:    payload,
		})
	}
	return out
}
