package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/teamtrack/internal/domain/user"
	"github.com/riskibarqy/teamtrack/internal/usecase"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok && p.UserID != ""
}

// requirePrincipal writes 401 when RequireAuth did not run for the route.
func requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return principal, true
}
