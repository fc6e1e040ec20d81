package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventstaff_backend/internal/logger"
	"eventstaff_backend/pkg/contextkeys"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		fields := []any{
			"client_ip", c.ClientIP(),
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"size_bytes", c.Writer.Size(),
		}
		switch {
		case status >= 500:
			logger.CtxError(ctx, "http request", fields...)
		case status >= 400:
			logger.CtxWarn(ctx, "http request", fields...)
		default:
			logger.CtxInfo(ctx, "http request", fields...)
		}
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// DBMiddleware stores db bound to the request context so queries are
// cancelled with the request.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		setDB(c, db.WithContext(c.Request.Context()))
		c.Next()
	}
}

func setDB(c *gin.Context, db *gorm.DB) {
	c.Set(string(contextkeys.DBContextKey), db)
}

func dbFrom(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	panic("middleware: DBMiddleware must run before this handler")
}
