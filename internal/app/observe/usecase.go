package observe

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/app/shared/settle"
	"homestead/internal/domain/homestead"
	"homestead/internal/logger"
)

var ErrInvalidRequest = errors.New("invalid observe request")

// UseCase shows a farm as if time were settled now, without saving.
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
	now := nowFn()

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
	pending := settle.Advance(game, state.UpdatedAt, now, u.MaxSettle)

	species := game.Farm.Catalog().All()
	info := make([]SpeciesInfo, 0, len(species))
	for _, s := range species {
		info = append(info, SpeciesInfo{
			Name:          s.Name,
			SeedItem:      s.SeedItem,
			HarvestItem:   s.HarvestItem,
			GrowthSeconds: int64(s.GrowthDuration / time.Second),
			StageCount:    s.StageCount,
			WitherSeconds: int64(s.WitherDuration / time.Second),
		})
	}
	return Response{
		FarmID:     req.FarmID,
		Version:    state.Version,
		PendingMS:  pending.Milliseconds(),
		View:       game.View(),
		Tiles:      game.Farm.Tiles(),
		Species:    info,
		Remaining:  game.Missions.Remaining(),
		ObservedAt: now.UTC().Format(time.RFC3339),
	}, nil
}
