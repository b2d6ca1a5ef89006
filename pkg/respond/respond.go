// Package respond maps service errors onto JSON responses.
package respond

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pacemaker/entities"
	"pacemaker/pkg/auth"
	"pacemaker/pkg/week"
)

func JSONError(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// Err writes the response for err. Unexpected errors are logged and hidden.
func Err(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, entities.ErrInvalidInput):
		return JSONError(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), entities.ErrInvalidInput.Error()+": "))
	case errors.Is(err, entities.ErrUnauthorized), errors.Is(err, auth.ErrRejected):
		return JSONError(c, http.StatusUnauthorized, err.Error())
	}
	zap.S().Errorw("request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
	return JSONError(c, http.StatusInternalServerError, "something went wrong")
}

func BadJSON(c echo.Context) error {
	return JSONError(c, http.StatusBadRequest, "bad json")
}

// Date reads the optional ?date=YYYY-MM-DD parameter in loc; now when absent.
func Date(c echo.Context, loc *time.Location, now time.Time) (time.Time, error) {
	raw := c.QueryParam("date")
	if raw == "" {
		return now.In(loc), nil
	}
	d, err := week.ParseDateKey(raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", entities.ErrInvalidInput)
	}
	return d, nil
}
