// Package auth authenticates gateway requests with HS256 bearer tokens and
// places the member identity into the request context.
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/observability/logging"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
	errExpiredToken = errors.New("token expired")
)

// Authz returns middleware that requires a valid bearer token on every
// non-public endpoint. The token's sub claim must be the member ID; the
// resulting entity.Viewer is stored in the request context.
func Authz(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			viewer, result, err := authenticate(r.Header.Get("Authorization"), secret)
			RecordAuthDuration(time.Since(start).Seconds())
			RecordAuthRequest(result)
			if err != nil {
				logging.FromContext(r.Context()).Info("authentication failed",
					slog.String("path", r.URL.Path),
					slog.String("reason", result))
				w.Header().Set("WWW-Authenticate", `Bearer realm="newspulse"`)
				respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized: " + err.Error()})
				return
			}

			ctx := entity.WithViewer(r.Context(), viewer)
			ctx = logging.WithLogger(ctx, logging.WithViewer(logging.FromContext(ctx), viewer))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate validates the Authorization header and returns the viewer
// together with a metrics label describing the result.
func authenticate(authz string, secret []byte) (entity.Viewer, string, error) {
	sub, err := validateJWT(authz, secret)
	switch {
	case errors.Is(err, errMissingToken):
		return entity.Viewer{}, "missing", err
	case errors.Is(err, errExpiredToken):
		return entity.Viewer{}, "expired", err
	case err != nil:
		return entity.Viewer{}, "invalid", err
	}

	viewer, err := entity.NewViewer(sub)
	if err != nil {
		return entity.Viewer{}, "bad_subject", err
	}
	return viewer, "success", nil
}

func validateJWT(authz string, secret []byte) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return "", errMissingToken
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
	if tokenString == "" {
		return "", errMissingToken
	}

	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return "", errExpiredToken
	}
	if err != nil || !tok.Valid {
		return "", errInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("invalid sub claim")
	}
	return sub, nil
}

// ViewerFromRequest returns the viewer stored by Authz.
func ViewerFromRequest(r *http.Request) (entity.Viewer, error) {
	v, ok := entity.ViewerFromContext(r.Context())
	if !ok {
		return entity.Viewer{}, entity.ErrUnauthenticated
	}
	if err := v.Validate(); err != nil {
		return entity.Viewer{}, err
	}
	return v, nil
}
