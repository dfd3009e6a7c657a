package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the calling user's ID in the Gin context.
const userIDKey = contextKey("userID")

// defaultUserID attributes writes when no caller identity was forwarded,
// e.g. migrations or local development without the gateway in front.
const defaultUserID = "system"

// CallerIdentityMiddleware captures the user identity forwarded by the
// upstream auth gateway. Authentication itself happens before this service;
// the header is trusted and only used for audit attribution.
func CallerIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = defaultUserID
		}
		c.Set(string(userIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the calling user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		userIDCtx := c.Request.Context().Value(userIDKey)
		if userIDCtx != nil {
			if id, ok := userIDCtx.(string); ok {
				return id, true
			}
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
