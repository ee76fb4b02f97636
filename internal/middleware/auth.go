package middleware

import (
	"net/http"

	"checkout-be/internal/auth"
	"checkout-be/internal/utils"
)

// AuthMiddleware resolves the session token into an authenticated customer and
// stores it in the request context. Requests without a valid token pass through
// unauthenticated; handlers decide whether to reject them.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(jwtSecret, tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetCustomerContext(r.Context(), claims.CustomerID, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
