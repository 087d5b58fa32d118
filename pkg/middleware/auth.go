package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/menu-engine-api/internal/usecases/authenticating"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// isPublicPath libera as rotas consumidas pelo cardápio do cliente, que não
// exigem autenticação: menu público, eventos de interação, criação de pedido
// e recomendações exibidas ao cliente.
func isPublicPath(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthcheck", "/v1/login", "/v1/register":
		return true
	case "/v1/menu":
		return r.Method == http.MethodGet
	case "/v1/activities":
		return r.Method == http.MethodPost
	case "/v1/orders":
		return r.Method == http.MethodPost
	case "/v1/recommendations":
		return r.Method == http.MethodPost
	}

	// GET /v1/items/:id/frequently-bought-with
	if r.Method == http.MethodGet &&
		strings.HasPrefix(r.URL.Path, "/v1/items/") &&
		strings.HasSuffix(r.URL.Path, "/frequently-bought-with") {
		return true
	}

	return false
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
