package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/higordev223/salute-child/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const authCachePrefix = "auth:patient:"

// JWTAuthPatientMiddleware verifies the patient bearer token and stores the
// patient id in the request context. Verified token hashes are cached in
// Redis so repeat requests skip signature verification.
func JWTAuthPatientMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ctx := context.Background()
		computedHash := utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()

		if authCache != nil {
			cached, err := authCache.Get(ctx, authCachePrefix+computedHash).Result()
			if err == nil {
				if patientID, convErr := strconv.Atoi(cached); convErr == nil && patientID > 0 {
					_ = authCache.Expire(ctx, authCachePrefix+computedHash, time.Hour).Err()
					c.Set("patientID", patientID)
					c.Next()
					return
				}
			} else if err != redis.Nil {
				utils.GetLogger().Warn("auth cache lookup failed, verifying token directly")
			}
		}

		patientID, err := utils.ExtractPatientID(tokenString)
		if err != nil || patientID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, authCachePrefix+computedHash, strconv.Itoa(patientID), time.Hour).Err()
		}

		c.Set("patientID", patientID)
		c.Next()
	}
}

// PatientIDFromContext retrieves the authenticated patient id set by the
// middleware.
func PatientIDFromContext(c *gin.Context) (int, bool) {
	val, exists := c.Get("patientID")
	if !exists {
		return 0, false
	}
	id, ok := val.(int)
	return id, ok && id > 0
}
