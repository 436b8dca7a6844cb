package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = time.Hour * 168
)

var jwtSecret string

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func GenerateAccessToken(userID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"type":     TokenTypeAccess,
		"exp":      time.Now().Add(AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// GenerateRefreshToken mints a long-lived refresh token. The jti claim
// identifies the token in the revocation blacklist.
func GenerateRefreshToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    TokenTypeRefresh,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(RefreshTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func GenerateTokenPair(userID uint, username string) (TokenPair, error) {
	access, err := GenerateAccessToken(userID, username)

	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := GenerateRefreshToken(userID)

	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{Access: access, Refresh: refresh}, nil
}

// VerifyToken checks the signature, expiry and token type, and returns the
// claims on success.
func VerifyToken(tokenString string, tokenType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims["type"] != tokenType {
		return nil, fmt.Errorf("unexpected token type")
	}

	return claims, nil
}

// TokenUserID extracts the user_id claim (JSON numbers decode as float64).
func TokenUserID(claims jwt.MapClaims) (uint, error) {
	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return 0, fmt.Errorf("invalid user ID in token claims")
	}

	return uint(userIDFloat), nil
}

// TokenID extracts the jti claim of a refresh token.
func TokenID(claims jwt.MapClaims) (string, error) {
	jti, ok := claims["jti"].(string)

	if !ok || jti == "" {
		return "", fmt.Errorf("missing jti in token claims")
	}

	return jti, nil
}

// TokenExpiry extracts the exp claim.
func TokenExpiry(claims jwt.MapClaims) (time.Time, error) {
	exp, err := claims.GetExpirationTime()

	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("missing exp in token claims")
	}

	return exp.Time, nil
}
