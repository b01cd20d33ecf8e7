package auth

import "context"

type ctxKey string

const ctxKeySession ctxKey = "session"

func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySession, id)
}

func SessionFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySession); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
