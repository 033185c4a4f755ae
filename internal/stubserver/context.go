package stubserver

import "context"

func withClaims(ctx context.Context, c *claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func claimsFrom(ctx context.Context) *claims {
	c, _ := ctx.Value(ctxKey{}).(*claims)
	return c
}
