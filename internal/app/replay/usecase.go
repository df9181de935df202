package replay

import (
	"context"
	"errors"
	"strings"

	"homestead/internal/app/ports"
	"homestead/internal/domain/homestead"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.FarmID) == "" || u.Events == nil {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	events, err := u.Events.ListByFarmID(ctx, req.FarmID, limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{Events: events, Summary: summarize(events)}, nil
}

func filterByTimeWindow(events []ports.EventRecord, from, to int64) []ports.EventRecord {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]ports.EventRecord, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func summarize(events []ports.EventRecord) Summary {
	s := Summary{
		Planted:    map[string]int{},
		Harvested:  map[string]int{},
		Withered:   map[string]int{},
		Objectives: []string{},
		Rewards:    map[string]int{},
	}
	for _, evt := range events {
		switch homestead.EventType(evt.Type) {
		case homestead.EventTilled:
			s.Tilled++
		case homestead.EventPlanted:
			s.Planted[str(evt.Payload["species"])]++
		case homestead.EventHarvested:
			s.Harvested[str(evt.Payload["harvest_item"])]++
		case homestead.EventWithered:
			s.Withered[str(evt.Payload["species"])]++
		case homestead.EventObjectiveCompleted:
			s.Objectives = append(s.Objectives, str(evt.Payload["objective"]))
			if item := str(evt.Payload["reward_item"]); item != "" {
				s.Rewards[item] += int(num(evt.Payload["reward_amount"]))
			}
		}
	}
	return s
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// num accepts both in-process ints and JSON-decoded floats.
func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
