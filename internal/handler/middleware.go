package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/zizouhuweidi/trivia/internal/logger"
)

// RequestLogger stores a request-scoped logrus entry in the request context
// and logs one line per request. It must run after middleware.RequestID.
func RequestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			entry := log.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logger.NewContext(req.Context(), entry)))

			if err := next(c); err != nil {
				c.Error(err)
			}

			entry.WithFields(logrus.Fields{
				"method":  req.Method,
				"uri":     req.RequestURI,
				"status":  c.Response().Status,
				"latency": time.Since(start).String(),
				"remote":  c.RealIP(),
			}).Info("request")
			return nil
		}
	}
}
