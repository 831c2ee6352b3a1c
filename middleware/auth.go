package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"student-registry/auth"
)

type AuthMiddleware struct {
	tokens *auth.TokenService
}

func NewAuthMiddleware(tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// AuthMiddleware проверяет JWT токен
func (am *AuthMiddleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || IsPublicRoute(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Printf("❌ No authorization header for %s %s", r.Method, r.URL.Path)
			http.Error(w, `{"error": "Authorization header required"}`, http.StatusUnauthorized)
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			log.Printf("❌ Invalid authorization format for %s %s", r.Method, r.URL.Path)
			http.Error(w, `{"error": "Invalid authorization format"}`, http.StatusUnauthorized)
			return
		}

		claims, err := am.tokens.Verify(bearerToken[1])
		if err != nil {
			log.Printf("❌ Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, `{"error": "Invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		r = r.WithContext(SetOperatorClaims(r.Context(), claims))
		next.ServeHTTP(w, r)
	})
}

// Вспомогательные функции для работы с контекстом
type contextKey string

const (
	operatorClaimsKey contextKey = "operatorClaims"
)

// SetOperatorClaims добавляет claims оператора в контекст
func SetOperatorClaims(ctx context.Context, claims *auth.OperatorClaims) context.Context {
	return context.WithValue(ctx, operatorClaimsKey, claims)
}

// GetOperatorClaims извлекает claims оператора из контекста
func GetOperatorClaims(ctx context.Context) *auth.OperatorClaims {
	if claims, ok := ctx.Value(operatorClaimsKey).(*auth.OperatorClaims); ok {
		return claims
	}
	return nil
}
