package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "travelnotes"

var (
	jwtSecretKey    []byte
	accessTokenTTL  = 7 * 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrWrongTokenType   = errors.New("invalid token type")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenBlacklisted = errors.New("token has been invalidated")
)

// InitTokens configures the signing secret and lifetimes. Must run before
// any token is issued or verified.
func InitTokens(secret string, accessTTL, refreshTTL time.Duration) error {
	if secret == "" {
		return errors.New("token secret key is not set")
	}
	jwtSecretKey = []byte(secret)
	if accessTTL > 0 {
		accessTokenTTL = accessTTL
	}
	if refreshTTL > 0 {
		refreshTokenTTL = refreshTTL
	}
	return nil
}

// AccessTokenTTL reports the configured access token lifetime, used to
// stamp session expiry.
func AccessTokenTTL() time.Duration {
	return accessTokenTTL
}

// GenerateAccessToken issues the short-lived bearer token carrying the
// user's id and role.
func GenerateAccessToken(userID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"type":    "access",
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecretKey)
}

// GenerateRefreshToken issues the long-lived rotation token. It carries
// only the user id; the role is re-read at refresh time.
func GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    "refresh",
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecretKey)
}

// ParseAccessToken verifies signature, expiry, issuer and type, returning
// the embedded user id and role.
func ParseAccessToken(tokenString string) (userID, role string, err error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return "", "", err
	}
	if tokenType, _ := claims["type"].(string); tokenType == "refresh" {
		return "", "", ErrWrongTokenType
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", ErrInvalidToken
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}

// ValidateRefreshToken verifies a refresh token and returns its user id.
func ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return "", err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", ErrWrongTokenType
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil || claims["exp"] == nil {
		return nil, ErrInvalidToken
	}
	if iss, ok := claims["iss"].(string); ok && iss != tokenIssuer {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
