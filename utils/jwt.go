package utils

import (
	"errors"
	"time"

	"reservodojo/config"

	"github.com/golang-jwt/jwt"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is who a bearer token speaks for.
type Identity struct {
	UserID          string
	AccommodationID string
	Role            string
}

// IsAdmin reports whether the identity may edit the trainer config.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "reservodojo-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT token for the given identity.
// The token expires after the specified duration.
func GenerateToken(id Identity, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":             id.UserID,
		"accommodationId": id.AccommodationID,
		"role":            id.Role,
		"iat":             now.Unix(),
		"exp":             now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// IdentityFromToken validates the token and extracts its identity claims.
func IdentityFromToken(tokenString string) (Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, errors.New("token does not contain a valid 'sub' claim")
	}
	acc, ok := claims["accommodationId"].(string)
	if !ok || acc == "" {
		return Identity{}, errors.New("token does not contain a valid 'accommodationId' claim")
	}
	role, _ := claims["role"].(string)
	if role != RoleAdmin {
		role = RoleUser
	}
	return Identity{UserID: sub, AccommodationID: acc, Role: role}, nil
}
