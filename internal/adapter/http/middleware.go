package httpadapter

import (
	"context"
	"strings"

	"homestead/internal/logger"

	"github.com/cloudwego/hertz/pkg/app"
)

const requestIDHeader = "X-Request-ID"

func requestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		id := strings.TrimSpace(string(ctx.GetHeader(requestIDHeader)))
		if id == "" || len(id) > 64 {
			id = logger.GenerateRequestID()
		}
		ctx.Response.Header.Set(requestIDHeader, id)
		c = logger.WithRequestID(c, id)
		ctx.Next(c)
		logger.FromContext(c).Debug("request served",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode())
	}
}

type requestTracker interface {
	TrackRequest(method, path string) func(status int)
}

func metricsMiddleware(tracker requestTracker) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if tracker == nil {
			ctx.Next(c)
			return
		}
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		done := tracker.TrackRequest(string(ctx.Method()), path)
		ctx.Next(c)
		done(ctx.Response.StatusCode())
	}
}
