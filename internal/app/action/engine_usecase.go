package action

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/homestead"
	"homestead/internal/logger"
)

var (
	ErrInvalidRequest      = errors.New("invalid action request")
	ErrInvalidActionParams = errors.New("invalid action params")
	ErrActionRejected      = errors.New("action rejected")
)

// ActionRejectedError is a soft domain failure: nothing was persisted and
// Messages holds what the player should be told.
type ActionRejectedError struct {
	Intent   homestead.IntentType
	Cause    error
	Messages []string
}

func (e *ActionRejectedError) Error() string {
	return ErrActionRejected.Error() + ": " + e.Cause.Error()
}

func (e *ActionRejectedError) Unwrap() []error {
	return []error{ErrActionRejected, e.Cause}
}

func (e *ActionRejectedError) Message() string {
	return strings.Join(e.Messages, " ")
}

// Reason is a stable snake_case code for the cause.
func (e *ActionRejectedError) Reason() string {
	return rejectionReason(e.Cause)
}

type UseCase struct {
	TxManager  ports.TxManager
	StateRepo  ports.FarmStateRepository
	ActionRepo ports.ActionExecutionRepository
	EventRepo  ports.EventRepository
	Metrics    ports.ActionMetrics
	// Content describes species, missions and tuning; saved farm state
	// takes precedence over its inventory and mission pool.
	Content   homestead.Options
	MaxSettle time.Duration
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	ac, err := u.ValidateRequest(req)
	if err != nil {
		return Response{}, err
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	ac.In.NowAt = nowFn()

	var out Response
	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		replay, ok, err := u.ReplayIdempotent(txCtx, &ac)
		if err != nil {
			return err
		}
		if ok {
			out = replay
			return nil
		}
		if err := u.LoadAndSettle(txCtx, &ac); err != nil {
			return err
		}
		defer ac.Game.Close()
		if err := u.ApplyIntent(txCtx, &ac); err != nil {
			return err
		}
		if err := u.Persist(txCtx, &ac); err != nil {
			return err
		}
		out = u.BuildResponse(&ac)
		return nil
	})
	if err != nil {
		u.recordError(ctx, err)
		return Response{}, err
	}
	if u.Metrics != nil && !ac.Replayed {
		u.Metrics.RecordSuccess(out.Action)
		u.Metrics.RecordEvents(out.Events)
	}
	return out, nil
}

func (u UseCase) recordError(ctx context.Context, err error) {
	var rejected *ActionRejectedError
	switch {
	case errors.As(err, &rejected):
		logger.FromContext(ctx).Debug("farm action rejected", "intent", rejected.Intent, "cause", rejected.Cause)
		if u.Metrics != nil {
			u.Metrics.RecordRejected(rejectionReason(rejected.Cause))
		}
	case errors.Is(err, ports.ErrConflict):
		if u.Metrics != nil {
			u.Metrics.RecordConflict()
		}
	default:
		if !errors.Is(err, ports.ErrNotFound) {
			logger.FromContext(ctx).Error("farm action failed", "error", err)
		}
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
	}
}
