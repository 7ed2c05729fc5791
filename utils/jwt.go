package utils

import (
	"errors"
	"time"

	"github.com/fourline-io/server/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GuestClaims represents JWT claims for a guest identity. There are no
// accounts or passwords; the token only gives a reconnecting client a
// stable player id and display name.
type GuestClaims struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateGuestToken creates a signed guest token for the given display
// name, minting a fresh player id.
func GenerateGuestToken(name string) (string, *GuestClaims, error) {
	secret := config.GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	expirationHours := config.GetEnvAsInt("JWT_EXPIRATION_HOURS", 720) // 30 days default

	playerID := uuid.NewString()
	if name == "" {
		name = "guest-" + playerID[:8]
	}

	claims := &GuestClaims{
		PlayerID: playerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * time.Duration(expirationHours))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}

	return tokenString, claims, nil
}

// ValidateGuestToken validates a guest token and returns the claims
func ValidateGuestToken(tokenString string) (*GuestClaims, error) {
	secret := config.GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")

	token, err := jwt.ParseWithClaims(tokenString, &GuestClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*GuestClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
