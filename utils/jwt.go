package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		// development fallback, override in .env for anything real
		secret = "RestSoftPOSDevSecret"
	}
	JWTSecret = []byte(secret)
}

type SessionClaims struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	BusinessName string `json:"business_name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken mints the session token handed to the UI after login.
// The token lives as long as a work shift reasonably can.
func GenerateToken(name, email, role, businessName string) (string, error) {
	claims := &SessionClaims{
		Name:         name,
		Email:        email,
		Role:         role,
		BusinessName: businessName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "restsoft-pos",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
