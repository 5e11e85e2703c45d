package auth

import "context"

type ctxKey string

const ctxKeyAccessToken ctxKey = "access_token"

// WithAccessToken stores the caller's bearer token so outbound calls can forward it.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyAccessToken, token)
}

// AccessTokenFromContext returns the bearer token stored by WithAccessToken.
func AccessTokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyAccessToken).(string)
	return v
}
