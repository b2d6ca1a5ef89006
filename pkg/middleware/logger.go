package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"pacemaker/pkg/auth"
)

// RequestLogger writes one zap line per request.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if uid := auth.UserID(c); uid != "" {
				fields = append(fields, "uid", uid)
			}
			if v.Error != nil {
				zap.S().Errorw("request", append(fields, "err", v.Error)...)
				return nil
			}
			zap.S().Infow("request", fields...)
			return nil
		},
	})
}
