// Package driver advances a game on a fixed simulation step.
package driver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
)

const (
	DefaultStep       = 100 * time.Millisecond
	DefaultPilotEvery = 10
)

var ErrNoGame = errors.New("driver has no game")

type Pilot interface {
	Act(g *homestead.Game) []Outcome
}

type Stats struct {
	Steps    int                         `json:"steps"`
	Elapsed  time.Duration               `json:"elapsed"`
	Actions  map[farm.Action]int         `json:"actions"`
	Rejected int                         `json:"rejected"`
	Events   map[homestead.EventType]int `json:"events"`
}

type Loop struct {
	Game *homestead.Game
	Step time.Duration
	// Pilot acts after every PilotEvery ticks; nil runs the clock only.
	Pilot      Pilot
	PilotEvery int
	OnEvents   func([]homestead.Event)
	OnMessages func([]string)
	Logger     *slog.Logger
}

// Run ticks the game steps times, stopping early when ctx is done.
func (l *Loop) Run(ctx context.Context, steps int) (Stats, error) {
	stats := Stats{
		Actions: map[farm.Action]int{},
		Events:  map[homestead.EventType]int{},
	}
	if l.Game == nil {
		return stats, ErrNoGame
	}
	step := l.Step
	if step <= 0 {
		step = DefaultStep
	}
	every := l.PilotEvery
	if every <= 0 {
		every = DefaultPilotEvery
	}
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}

	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		l.Game.Tick(step)
		stats.Steps++
		stats.Elapsed += step

		if l.Pilot != nil && i%every == 0 {
			for _, o := range l.Pilot.Act(l.Game) {
				if o.Err != nil {
					stats.Rejected++
					log.Debug("pilot action rejected", "pos", o.Pos.String(), "action", o.Action, "error", o.Err)
					continue
				}
				stats.Actions[o.Action]++
			}
		}

		events := l.Game.DrainEvents()
		for _, e := range events {
			stats.Events[e.Type]++
		}
		if len(events) > 0 && l.OnEvents != nil {
			l.OnEvents(events)
		}
		if msgs := l.Game.DrainMessages(); len(msgs) > 0 && l.OnMessages != nil {
			l.OnMessages(msgs)
		}
	}
	return stats, nil
}
