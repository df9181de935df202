package status

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/app/shared/settle"
	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/logger"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	StateRepo ports.FarmStateRepository
	Content   homestead.Options
	MaxSettle time.Duration
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.FarmID = strings.TrimSpace(req.FarmID)
	if req.FarmID == "" || u.StateRepo == nil {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	state, err := u.StateRepo.GetByFarmID(ctx, req.FarmID)
	if err != nil {
		return Response{}, err
	}
	opts := u.Content
	opts.Logger = logger.FromContext(ctx).With("farm_id", req.FarmID)
	game, err := homestead.Restore(opts, state.Snapshot)
	if err != nil {
		return Response{}, err
	}
	defer game.Close()
	settle.Advance(game, state.UpdatedAt, nowFn(), u.MaxSettle)

	resp := Response{
		FarmID:      req.FarmID,
		Version:     state.Version,
		ElapsedMS:   game.Elapsed().Milliseconds(),
		CellCounts:  map[farm.CellState]int{},
		Completed:   len(game.Missions.Retired()),
		MissionIdle: game.Missions.Idle(),
		Inventory:   game.Farm.Ledger().Items(),
	}
	for _, c := range game.Farm.Cells() {
		resp.Tilled++
		st := c.State()
		resp.CellCounts[st]++
		switch st {
		case farm.CellReady:
			resp.Ready = append(resp.Ready, c.Pos)
		case farm.CellWithered:
			resp.Withered = append(resp.Withered, c.Pos)
		case farm.CellGrowing:
			if !c.Crop.Watered {
				resp.NeedsWater = append(resp.NeedsWater, c.Pos)
			}
		}
	}
	for _, o := range game.Missions.Active() {
		resp.Missions = append(resp.Missions, o.Status())
	}
	return resp, nil
}
