package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Name string          `json:"name"`
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Principal converts verified claims to the caller identity.
func (c *Claims) Principal() models.Principal {
	return models.Principal{ID: c.Subject, Name: c.Name, Role: c.Role}
}

func GenerateJWT(user *models.User, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name: user.FullName,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}
