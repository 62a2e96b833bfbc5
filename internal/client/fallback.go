package client

import (
	"context"
	"log/slog"

	"murmur/internal/sns"
)

// loadView is the shared load path of every synchronizer: a GetMe preflight
// establishing the session, then the list call. Any failure in either step
// yields false and a structured log line; the caller falls back to an empty
// view. Action calls never go through here.
func loadView(ctx context.Context, t *Transport, id Identity, procedure string, req, res any) bool {
	var me sns.GetMeResponse
	if err := t.Call(ctx, id, sns.ProcGetMe, sns.GetMeRequest{}, &me); err != nil {
		logLoadFailure(ctx, t.logger, id, sns.ProcGetMe, err)
		return false
	}

	if err := t.Call(ctx, id, procedure, req, res); err != nil {
		logLoadFailure(ctx, t.logger, id, procedure, err)
		return false
	}
	return true
}

func logLoadFailure(ctx context.Context, logger *slog.Logger, id Identity, procedure string, err error) {
	attrs := []any{
		slog.String("procedure", procedure),
		slog.String("tenant", id.Tenant),
		slog.String("user", id.User),
		slog.String("error", err.Error()),
	}
	if te, ok := err.(*TransportError); ok {
		attrs = append(attrs, slog.String("kind", te.Kind.String()))
		if te.Kind == KindRemote {
			attrs = append(attrs, slog.Int("status", te.Status))
		}
	}
	logger.WarnContext(ctx, "load failed, falling back to empty view", attrs...)
}
