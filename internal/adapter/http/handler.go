package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"homestead/internal/app/action"
	"homestead/internal/app/auth"
	"homestead/internal/app/guide"
	"homestead/internal/app/observe"
	"homestead/internal/app/ports"
	"homestead/internal/app/replay"
	"homestead/internal/app/status"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const farmIDHeader = "X-Farm-ID"
const farmKeyHeader = "X-Farm-Key"

type Handler struct {
	RegisterUC auth.RegisterUseCase
	AuthUC     auth.VerifyUseCase
	ObserveUC  observe.UseCase
	ActionUC   action.UseCase
	ReplayUC   replay.UseCase
	StatusUC   status.UseCase
	GuideUC    guide.UseCase
	KPI        kpiSnapshotProvider
	Requests   requestTracker
	Metrics    http.Handler
	// CORS is the allowed origin; empty allows any.
	CORS string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(requestIDMiddleware(), corsMiddleware(h.CORS), metricsMiddleware(h.Requests))

	farm := s.Group("/api/farm")
	farm.POST("/register", h.register)
	farm.POST("/observe", h.observe)
	farm.POST("/action", h.action)
	farm.GET("/replay", h.replay)
	farm.POST("/status", h.status)

	s.GET("/guide/index.json", h.guideIndex)
	s.GET("/guide/*filepath", h.guideFile)

	s.GET("/healthz", h.healthz)
	s.GET("/ops/kpi", h.kpi)
	if h.Metrics != nil {
		s.GET("/metrics", adaptor.HertzHandler(h.Metrics))
	}
}

type actionRequest struct {
	IdempotencyKey string       `json:"idempotency_key" validate:"required,max=128"`
	Intent         actionIntent `json:"intent"`
}

type actionIntent struct {
	Type    string       `json:"type" validate:"required,max=32"`
	Pos     *world.Point `json:"pos" validate:"required"`
	Species string       `json:"species,omitempty" validate:"omitempty,max=64"`
}

func (h Handler) observe(c context.Context, ctx *app.RequestContext) {
	farmID, err := h.requireAuthenticatedFarm(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.ObserveUC.Execute(c, observe.Request{FarmID: farmID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	farmID, err := h.requireAuthenticatedFarm(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{FarmID: farmID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) guideIndex(c context.Context, ctx *app.RequestContext) {
	b, err := h.GuideUC.Index(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/json", b)
}

func (h Handler) guideFile(c context.Context, ctx *app.RequestContext) {
	path := strings.TrimPrefix(ctx.Param("filepath"), "/")
	if path == "" || !fs.ValidPath(path) {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_filepath", "invalid filepath")
		return
	}

	b, err := h.GuideUC.File(c, path)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/markdown; charset=utf-8", b)
}

func (h Handler) action(c context.Context, ctx *app.RequestContext) {
	farmID, err := h.requireAuthenticatedFarm(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body actionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if hasJSONField(ctx.Request.Body(), "dt") {
		writeErrorBody(ctx, consts.StatusBadRequest, "dt_managed_by_server", "dt is managed by server")
		return
	}
	if err := validateBody(body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error())
		return
	}

	intent := homestead.Intent{
		Type:    homestead.IntentType(body.Intent.Type),
		Species: body.Intent.Species,
	}
	if body.Intent.Pos != nil {
		intent.Pos = *body.Intent.Pos
	}
	resp, err := h.ActionUC.Execute(c, action.Request{
		FarmID:         farmID,
		IdempotencyKey: body.IdempotencyKey,
		Intent:         intent,
	})
	if err != nil {
		if writeActionRejectedFromErr(ctx, err) {
			return
		}
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	farmID, err := h.requireAuthenticatedFarm(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		FarmID:       farmID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegisterUC.Execute(c, auth.RegisterRequest{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func hasJSONField(body []byte, key string) bool {
	if len(body) == 0 {
		return false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return false
	}
	_, ok := m[key]
	return ok
}

var ErrMissingFarmIDHeader = errors.New("missing x-farm-id header")
var ErrMissingFarmKeyHeader = errors.New("missing x-farm-key header")
var ErrMissingFarmCredentials = errors.New("missing farm credentials")

func (h Handler) requireAuthenticatedFarm(c context.Context, ctx *app.RequestContext) (string, error) {
	farmID := strings.TrimSpace(string(ctx.GetHeader(farmIDHeader)))
	farmKey := strings.TrimSpace(string(ctx.GetHeader(farmKeyHeader)))
	if farmID == "" && farmKey == "" {
		return "", ErrMissingFarmCredentials
	}
	if farmID == "" {
		return "", ErrMissingFarmIDHeader
	}
	if farmKey == "" {
		return "", ErrMissingFarmKeyHeader
	}
	if err := h.AuthUC.Execute(c, auth.VerifyRequest{
		FarmID:  farmID,
		FarmKey: farmKey,
	}); err != nil {
		return "", err
	}
	return farmID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingFarmCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_farm_credentials", err.Error())
	case errors.Is(err, ErrMissingFarmIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_farm_id", err.Error())
	case errors.Is(err, ErrMissingFarmKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_farm_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_farm_credentials", err.Error())
	case errors.Is(err, action.ErrInvalidActionParams):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_action_params", err.Error())
	case errors.Is(err, action.ErrInvalidRequest),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, httpStatus int, code, message string) {
	ctx.JSON(httpStatus, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeActionRejectedFromErr answers soft game-rule failures with 409.
func writeActionRejectedFromErr(ctx *app.RequestContext, err error) bool {
	var rejected *action.ActionRejectedError
	if !errors.As(err, &rejected) {
		return false
	}
	message := rejected.Message()
	if message == "" {
		message = rejected.Cause.Error()
	}
	ctx.JSON(consts.StatusConflict, map[string]any{
		"result_code": action.ResultRejected,
		"action":      string(rejected.Intent),
		"messages":    rejected.Messages,
		"error": map[string]any{
			"code":    rejected.Reason(),
			"message": message,
		},
	})
	return true
}
