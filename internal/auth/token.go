package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

func generateToken(userID string, ttl time.Duration, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": tokenType,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func generatePair(userID string) (accessToken, refreshToken string, err error) {
	accessToken, err = generateToken(userID, accessTokenTTL, "access")
	if err != nil {
		return "", "", err
	}
	refreshToken, err = generateToken(userID, refreshTokenTTL, "refresh")
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// parseRefreshToken validates a refresh token and returns the subject.
func parseRefreshToken(tokenStr string) (string, bool) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	return sub, ok && sub != ""
}
