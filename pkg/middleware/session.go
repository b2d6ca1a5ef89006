package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pacemaker/pkg/auth"
)

// Session resolves the caller from the session cookies. An expired access token
// is refreshed and the cookies rewritten. The provider lookup is bounded by
// timeout; when it runs out the request continues anonymously.
func Session(p auth.Provider, ck auth.Cookies, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := auth.ReadSession(c)
			if tok == nil {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			if !tok.Valid() && tok.RefreshToken != "" {
				fresh, u, err := p.Refresh(ctx, tok.RefreshToken)
				if err == nil && fresh == nil {
					err = &auth.ProviderError{Status: http.StatusUnauthorized, Description: "refresh returned no session"}
				}
				if err != nil {
					sessionFailed(c, ck, "refresh", err)
					return next(c)
				}
				ck.WriteSession(c, fresh)
				tok = fresh
				if u != nil {
					auth.SetIdentity(c, auth.Identity{UserID: u.ID, Email: u.Email})
					return next(c)
				}
			}

			u, err := p.GetUser(ctx, tok.AccessToken)
			if err != nil {
				sessionFailed(c, ck, "get user", err)
				return next(c)
			}
			auth.SetIdentity(c, auth.Identity{UserID: u.ID, Email: u.Email})
			return next(c)
		}
	}
}

func sessionFailed(c echo.Context, ck auth.Cookies, step string, err error) {
	switch {
	case errors.Is(err, auth.ErrRejected):
		zap.S().Debugw("[auth] session rejected, clearing cookies", "step", step, "err", err)
		ck.Clear(c)
	case errors.Is(err, context.DeadlineExceeded):
		zap.S().Warnw("[auth] provider timed out, continuing anonymously", "step", step)
	default:
		zap.S().Errorw("[auth] session lookup failed", "step", step, "err", err)
	}
}
