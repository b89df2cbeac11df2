package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/opencatalogue/catalogd/internal/bus"
	"github.com/opencatalogue/catalogd/internal/domain"
	domacct "github.com/opencatalogue/catalogd/internal/domain/account"
	authuc "github.com/opencatalogue/catalogd/internal/usecase/auth"
)

type accountCtxKey struct{}

// ContextWithAccount stores the authenticated account in the context.
func ContextWithAccount(ctx context.Context, acct domacct.Account) context.Context {
	return context.WithValue(ctx, accountCtxKey{}, acct)
}

// AccountFromContext extracts the authenticated account from the
// context. Returns nil for unauthenticated (trusted) callers.
func AccountFromContext(ctx context.Context) *domacct.Account {
	if a, ok := ctx.Value(accountCtxKey{}).(domacct.Account); ok {
		return &a
	}
	return nil
}

// exemptPaths bypass authentication.
var exemptPaths = map[string]struct{}{
	"/health":     {},
	"/metrics":    {},
	"/auth/login": {},
}

// exempt reports whether the path requires no Bearer token. Catalog
// exports are public.
func exempt(path string) bool {
	if _, ok := exemptPaths[path]; ok {
		return true
	}
	return strings.HasSuffix(path, "/export.csv")
}

// BearerAuthMiddleware returns a middleware resolving Bearer tokens to
// accounts through the bus. Requests without a valid token are rejected
// except on exempt paths.
func BearerAuthMiddleware(b *bus.Bus) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeLoginFailed, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, codeLoginFailed,
					"authorization header must use Bearer scheme")
				return
			}

			token := auth[len(bearerPrefix):]
			acct, err := bus.Execute[domacct.Account](r.Context(), b, authuc.GetAccountByAPIToken{
				Token: token,
			})
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					writeError(w, http.StatusUnauthorized, codeLoginFailed, "invalid api token")
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithAccount(r.Context(), acct)))
		})
	}
}
