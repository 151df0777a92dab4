package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/angelmondragon/bcf-portal/api/responses"
	pkgAuth "github.com/angelmondragon/bcf-portal/pkg/auth"
	"github.com/angelmondragon/bcf-portal/pkg/config"
	pkgerrors "github.com/angelmondragon/bcf-portal/pkg/errors"
	"github.com/angelmondragon/bcf-portal/pkg/logger"
)

const bearerScheme = "bearer"

// Auth resolves the buyer from a bearer token. Every workspace, batch and
// order lookup downstream is keyed on that owner.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="bcf"`)
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="bcf", error="invalid_token"`)
				msg := "invalid token"
				if errors.Is(err, pkgAuth.ErrTokenExpired) {
					msg = "token expired"
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msg))
				return
			}

			ctx := WithOwner(r.Context(), claims.Owner())
			if logg != nil {
				ctx = logg.WithOwner(ctx, claims.Owner())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization scheme must be Bearer")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}
