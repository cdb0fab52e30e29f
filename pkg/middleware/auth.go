package middleware

import (
	"errors"
	"net/http"
	"strings"

	"movie-feedback/internal/data/entity"
	"movie-feedback/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const RoleAdmin = "admin"

type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenVerifier checks HS256 bearer tokens against a shared secret.
type TokenVerifier struct {
	Secret []byte
}

func (v TokenVerifier) Parse(tokenString string) (*Claims, error) {
	if len(v.Secret) == 0 {
		return nil, errors.New("token verification disabled")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Identity resolves who is asking and stores it in the request context.
// A bearer token yields "user:<subject>"; requests without one are keyed by
// client IP, read from forwarding headers only behind a trusted proxy. A token
// that is present but invalid is rejected with 401.
func Identity(verifier TokenVerifier, proxies utils.TrustedProxies, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
			if authHeader == "" {
				ctx := utils.SetIdentityContext(r.Context(), entity.Identity(proxies.ClientIP(r)))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := verifier.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Warn("Rejected bearer token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetIdentityContext(r.Context(), entity.Identity("user:"+claims.Subject))
			ctx = utils.SetUserContext(ctx, claims.Subject, strings.ToLower(strings.TrimSpace(claims.Role)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin - only token holders with role=admin pass
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := utils.GetSubjectFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != RoleAdmin {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("subject", subject),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
