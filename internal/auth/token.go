package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

// Claims carried by the storefront session token.
type Claims struct {
	CustomerID uint
	Email      string
}

func ExtractAccessToken(r *http.Request) string {
	// Cookie (preferred)
	if cookie, err := r.Cookie("access_token"); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	// Authorization header (fallback)
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// ParseToken validates the session token and returns the customer claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	uid, ok := claims["customer_id"].(float64)
	if !ok || uid <= 0 {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return &Claims{
		CustomerID: uint(uid),
		Email:      email,
	}, nil
}
