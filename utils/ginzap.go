package utils

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cppla/socialapi/apperr"
)

const (
	// ContextRequestIDKey holds the short request id in the gin context.
	ContextRequestIDKey = "request_id"
	// HeaderRequestID echoes the request id back to the caller.
	HeaderRequestID = "X-Request-ID"
)

// RequestID assigns every request an 8 character id shared by the access
// log and error responses.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = shortID()
		}
		ctx.Set(ContextRequestIDKey, id)
		ctx.Header(HeaderRequestID, id)
		ctx.Next()
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}

func requestID(ctx *gin.Context) string {
	if id := ctx.GetString(ContextRequestIDKey); id != "" {
		return id
	}
	return shortID()
}

// Ginzap writes one access log line per request.
func Ginzap(logger *zap.Logger, timeFormat string, utc bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		query := ctx.Request.URL.RawQuery
		ctx.Next()

		end := time.Now()
		if utc {
			end = end.UTC()
		}
		fields := []zap.Field{
			zap.Int("status", ctx.Writer.Status()),
			zap.String("method", ctx.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", ctx.ClientIP()),
			zap.String("user_agent", ctx.Request.UserAgent()),
			zap.String("request_id", ctx.GetString(ContextRequestIDKey)),
			zap.String("time", end.Format(timeFormat)),
			zap.Duration("latency", end.Sub(start)),
		}
		if len(ctx.Errors) > 0 {
			for _, e := range ctx.Errors.Errors() {
				logger.Error(e, fields...)
			}
			return
		}
		logger.Info(path, fields...)
	}
}

// RecoveryWithZap turns a panic into a SYSTEM_001 response and logs it.
func RecoveryWithZap(logger *zap.Logger, stack bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := []zap.Field{
					zap.Any("panic", rec),
					zap.String("path", ctx.Request.URL.Path),
					zap.String("request_id", ctx.GetString(ContextRequestIDKey)),
				}
				if stack {
					fields = append(fields, zap.ByteString("stack", debug.Stack()))
				}
				logger.Error("recovered from panic", fields...)

				if ctx.Writer.Written() {
					ctx.AbortWithStatus(http.StatusInternalServerError)
					return
				}
				Fail(ctx, apperr.Wrap(apperr.SystemInternal, fmt.Errorf("panic: %v", rec)))
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}
