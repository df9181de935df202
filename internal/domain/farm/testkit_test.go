package farm

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

type recordedMessages struct {
	lines []string
}

func (r *recordedMessages) Show(msg string) {
	r.lines = append(r.lines, msg)
}

func (r *recordedMessages) last() string {
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

type recordedCues struct {
	names []string
}

func (r *recordedCues) PlayCompletion(name string) {
	r.names = append(r.names, name)
}

func testCatalog(t *testing.T) Catalog {
	t.Helper()
	c, err := NewCatalog(
		Species{Name: "carrot", SeedItem: "CarrotSeed", HarvestItem: "Carrot", GrowthDuration: 10 * time.Second, StageCount: 4, WitherDuration: 20 * time.Second},
		Species{Name: "tomato", SeedItem: "TomatoSeed", HarvestItem: "Tomato", GrowthDuration: 15 * time.Second, StageCount: 3},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func newTestTracker(t *testing.T, inventory map[string]int) (*Tracker, *recordedMessages) {
	t.Helper()
	msgs := &recordedMessages{}
	tr := NewTracker(Config{
		Catalog:   testCatalog(t),
		Inventory: inventory,
		Messenger: msgs,
		Cue:       &recordedCues{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return tr, msgs
}
