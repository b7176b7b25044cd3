package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"manufacturing/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const actorContextKey = "actor"

// TokenVerifier turns a bearer token into the acting user.
type TokenVerifier interface {
	Verify(token string) (kernel.Actor, error)
}

// RequestObserver records one served request.
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// Authenticate requires an "Authorization: Bearer <token>" header and stores
// the verified actor on the echo context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				return unauthorized(c)
			}

			actor, err := verifier.Verify(token)
			if err != nil {
				return unauthorized(c)
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Message: errUnauthenticated.Error(),
	})
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, errUnauthenticated
	}
	return actor, nil
}

// Metrics reports method, matched route and final status of every request.
// The route template keeps label cardinality bounded.
func Metrics(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveHTTPRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
