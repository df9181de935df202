package action

import (
	"context"
	"errors"
	"strings"

	"homestead/internal/app/ports"
	"homestead/internal/app/shared/settle"
	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/logger"
)

func (u UseCase) ValidateRequest(req Request) (ActionContext, error) {
	req.FarmID = strings.TrimSpace(req.FarmID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.Intent.Type = homestead.IntentType(strings.ToLower(strings.TrimSpace(string(req.Intent.Type))))
	req.Intent.Species = strings.TrimSpace(req.Intent.Species)

	if req.FarmID == "" || req.IdempotencyKey == "" || !isSupportedIntent(req.Intent.Type) {
		return ActionContext{}, ErrInvalidRequest
	}
	if req.Intent.Type == homestead.IntentPlant && req.Intent.Species == "" {
		return ActionContext{}, ErrInvalidActionParams
	}
	return ActionContext{
		In: ActionInput{
			Req:            req,
			FarmID:         req.FarmID,
			IdempotencyKey: req.IdempotencyKey,
		},
	}, nil
}

func (u UseCase) ReplayIdempotent(ctx context.Context, ac *ActionContext) (Response, bool, error) {
	exec, err := u.ActionRepo.GetByIdempotencyKey(ctx, ac.In.FarmID, ac.In.IdempotencyKey)
	if err == nil && exec != nil {
		ac.Replayed = true
		return Response{
			ResultCode: exec.Result.ResultCode,
			Action:     exec.Result.Action,
			Messages:   exec.Result.Messages,
			Events:     exec.Result.Events,
			View:       exec.Result.View,
		}, true, nil
	}
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return Response{}, false, err
	}
	return Response{}, false, nil
}

func (u UseCase) LoadAndSettle(ctx context.Context, ac *ActionContext) error {
	state, err := u.StateRepo.GetByFarmID(ctx, ac.In.FarmID)
	if err != nil {
		return err
	}
	opts := u.Content
	opts.Logger = logger.FromContext(ctx).With("farm_id", ac.In.FarmID)
	game, err := homestead.Restore(opts, state.Snapshot)
	if err != nil {
		return err
	}
	ac.State = state
	ac.Game = game
	ac.Settled = settle.Advance(game, state.UpdatedAt, ac.In.NowAt, u.MaxSettle)
	ac.Messages = game.DrainMessages()
	return nil
}

func (u UseCase) ApplyIntent(_ context.Context, ac *ActionContext) error {
	action, err := ac.Game.Apply(ac.In.Req.Intent)
	if err != nil {
		return &ActionRejectedError{
			Intent:   ac.In.Req.Intent.Type,
			Cause:    err,
			Messages: append(ac.Messages, ac.Game.DrainMessages()...),
		}
	}
	ac.Action = action
	ac.Messages = append(ac.Messages, ac.Game.DrainMessages()...)
	ac.Events = settle.Stamp(ac.In.FarmID, ac.Game.DrainEvents(), ac.In.NowAt, ac.Game.Elapsed())
	return nil
}

func (u UseCase) Persist(ctx context.Context, ac *ActionContext) error {
	next := ports.FarmState{
		FarmID:    ac.In.FarmID,
		Snapshot:  ac.Game.Snapshot(),
		Version:   ac.State.Version + 1,
		UpdatedAt: ac.In.NowAt,
	}
	if err := u.StateRepo.SaveWithVersion(ctx, next, ac.State.Version); err != nil {
		return err
	}
	if u.EventRepo != nil && len(ac.Events) > 0 {
		if err := u.EventRepo.Append(ctx, ac.In.FarmID, ac.Events); err != nil {
			return err
		}
	}
	return u.ActionRepo.SaveExecution(ctx, ports.ActionExecutionRecord{
		FarmID:         ac.In.FarmID,
		IdempotencyKey: ac.In.IdempotencyKey,
		IntentType:     string(ac.In.Req.Intent.Type),
		Result: ports.ActionResult{
			ResultCode: ResultOK,
			Action:     string(ac.Action),
			Messages:   ac.Messages,
			Events:     ac.Events,
			View:       ac.Game.View(),
		},
		AppliedAt: ac.In.NowAt,
	})
}

func (u UseCase) BuildResponse(ac *ActionContext) Response {
	return Response{
		ResultCode: ResultOK,
		Action:     string(ac.Action),
		SettledMS:  ac.Settled.Milliseconds(),
		Messages:   ac.Messages,
		Events:     ac.Events,
		View:       ac.Game.View(),
	}
}

func isSupportedIntent(t homestead.IntentType) bool {
	switch t {
	case homestead.IntentTill, homestead.IntentPlant, homestead.IntentWater,
		homestead.IntentHarvest, homestead.IntentClear, homestead.IntentInteract:
		return true
	default:
		return false
	}
}

var rejectionCodes = []struct {
	err  error
	code string
}{
	{farm.ErrOutOfBounds, "out_of_bounds"},
	{farm.ErrAlreadyTilled, "already_tilled"},
	{farm.ErrNotTilled, "not_tilled"},
	{farm.ErrOccupied, "occupied"},
	{farm.ErrUnknownSpecies, "unknown_species"},
	{farm.ErrNoSeeds, "no_seeds"},
	{farm.ErrNotGrowing, "not_growing"},
	{farm.ErrAlreadyWatered, "already_watered"},
	{farm.ErrNotReady, "not_ready"},
	{farm.ErrNotWithered, "not_withered"},
}

func rejectionReason(err error) string {
	for _, rc := range rejectionCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return "other"
}
