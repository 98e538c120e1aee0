package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront/internal/ratelimit"
)

const (
	SessionHeader  = "X-Session-ID"
	AdminKeyHeader = "X-Admin-Key"

	sessionKey      = "sessionID"
	maxSessionIDLen = 128
)

// NewEngine builds the gin engine with recovery and request logging. Forwarding
// headers are honoured only from trustedProxies; an empty list trusts none, so the
// client IP used for rate limiting is the TCP peer.
func NewEngine(trustedProxies []string, log logrus.FieldLogger) (*gin.Engine, error) {
	r := gin.New()
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), RequestLogger(log))
	return r, nil
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// Session reads the client session id, issuing a new one when it is missing or
// unusable. The id is echoed back on every response.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" || len(id) > maxSessionIDLen {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// RateLimit rejects a client that exceeded its allowance for the named route group.
func RateLimit(l *ratelimit.Limiter, group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(group + ":" + c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}
