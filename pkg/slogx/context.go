package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithOperator tags later log lines with the admin token subject.
func WithOperator(ctx context.Context, subject string) context.Context {
	return WithContext(ctx, FromContext(ctx).With("operator", subject))
}

// WithClientID tags every later log line of the request with the tenant it
// acts for. Only the identifier is attached, never the credential.
func WithClientID(ctx context.Context, clientID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("client_id", clientID))
}
