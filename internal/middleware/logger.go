package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// GetLogger builds the application logger.
//
// Production logs are JSON on stderr. Development logs go to a console writer
// with the caller attached. LOG_LEVEL overrides the level of either.
func GetLogger(config configpkg.Config) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.InfoLevel
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "pet-ledger").Logger()

	if config.Environement == "development" {
		level = zerolog.TraceLevel
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Caller().
			Logger()
	}

	if config.LogLevel != "" {
		if parsed, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsed
		}
	}

	return logger.Level(level)
}

// RequestLogger stores a logger tagged with the request id in the request context
// and logs every request once it completes.
func RequestLogger(baseLogger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(RequestIDHeader, requestID)

		logger := baseLogger.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().Interface("panic", rec).Msg("request panicked")
				c.AbortWithStatus(http.StatusInternalServerError)
			}

			status := c.Writer.Status()

			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Error()
			}

			event.
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Int("status_code", status).
				Dur("latency", time.Since(start)).
				Msg(c.Errors.ByType(gin.ErrorTypePrivate).String())
		}()

		c.Next()
	}
}
