package driver

import (
	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"
)

type Outcome struct {
	Pos    world.Point
	Action farm.Action
	Err    error
}

// Autopilot tends a fixed patch by interacting with every plot in turn.
type Autopilot struct {
	Plots []world.Point
}

// NewAutopilot covers the w by h patch whose top-left corner is origin,
// clipped to field.
func NewAutopilot(field world.Bounds, origin world.Point, w, h int) *Autopilot {
	patch := world.Bounds{
		Min: origin,
		Max: world.Point{X: origin.X + w, Y: origin.Y + h},
	}
	a := &Autopilot{}
	for _, p := range patch.Points() {
		if field.Contains(p) {
			a.Plots = append(a.Plots, p)
		}
	}
	return a
}

func (a *Autopilot) Act(g *homestead.Game) []Outcome {
	out := make([]Outcome, 0, len(a.Plots))
	for _, p := range a.Plots {
		action, err := g.Apply(homestead.Intent{Type: homestead.IntentInteract, Pos: p})
		if action == farm.ActionInspect && err == nil {
			continue
		}
		out = append(out, Outcome{Pos: p, Action: action, Err: err})
	}
	return out
}
