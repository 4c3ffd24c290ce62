package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ownerHeader carries the owner identity set by the upstream auth proxy
const ownerHeader = "X-Owner-ID"

// ownerKey is the gin context key holding the owner id
const ownerKey = "ownerID"

// OwnerMiddleware rejects requests without an owner identity
func OwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := strings.TrimSpace(c.GetHeader(ownerHeader))
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + ownerHeader + " header"})
			return
		}
		c.Set(ownerKey, owner)
		c.Next()
	}
}

// ownerID returns the owner set by OwnerMiddleware
func ownerID(c *gin.Context) string {
	return c.GetString(ownerKey)
}

// Headers sent to allowed origins
const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Requested-With, " + ownerHeader
	corsMaxAge       = "3600"
)

// CORSMiddleware answers cross-origin requests from the web client.
// Preflight requests stop here with 204 whether or not the origin is allowed.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); isAllowedOrigin(origin, allowedOrigins) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Max-Age", corsMaxAge)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin matches origin against exact entries and trailing-* prefixes
// such as "http://localhost:*"
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		if prefix, wildcard := strings.CutSuffix(allowed, "*"); wildcard {
			if strings.HasPrefix(origin, prefix) {
				return true
			}
			continue
		}
		if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs requests
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware turns panics into 500 responses
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}
