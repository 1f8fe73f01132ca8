package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/higordev223/salute-child/config"

	"github.com/golang-jwt/jwt"
)

// GeneratePatientToken mints a signed token carrying the patient's
// clinic-system id.
func GeneratePatientToken(patientID int) (string, error) {
	claims := jwt.MapClaims{
		"patientId": patientID,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ExtractPatientID verifies the token and returns the patient id.
func ExtractPatientID(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}
	id, ok := claims["patientId"].(float64)
	if !ok || id <= 0 {
		return 0, errors.New("token missing patient id")
	}
	return int(id), nil
}

// HashToken returns the hex-encoded SHA-256 hash of a token, used as the
// auth-cache value so raw tokens never sit in Redis.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
