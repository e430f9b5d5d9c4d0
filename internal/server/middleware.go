package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/eduvantage/internal/llm"
	"github.com/abhisek/eduvantage/internal/prompt"
)

// DefaultMaxBodyBytes fits a base64 image at prompt.MaxImageBytes plus
// room for the other JSON fields.
var DefaultMaxBodyBytes = int64(base64.StdEncoding.EncodedLen(prompt.MaxImageBytes)) + 64<<10

// RequestIDHeader carries the correlation ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation ID, honouring a valid
// incoming header. The ID reaches the LLM event log through the request
// context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set("request_id", id)
		c.Request = c.Request.WithContext(llm.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// AccessLog writes one zap line per request.
func AccessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("http request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// BodyLimit rejects request bodies above limit bytes with 413. Declared
// lengths are checked up front; chunked bodies are cut off while reading.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			RespondError(c, http.StatusRequestEntityTooLarge, CodeTooLarge,
				fmt.Errorf("request body exceeds %d bytes", limit))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
