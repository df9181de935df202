package action

import (
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
)

type ActionInput struct {
	Req            Request
	FarmID         string
	IdempotencyKey string
	NowAt          time.Time
}

type ActionContext struct {
	In       ActionInput
	State    ports.FarmState
	Game     *homestead.Game
	Settled  time.Duration
	Action   farm.Action
	Messages []string
	Events   []ports.EventRecord
	Replayed bool
}
