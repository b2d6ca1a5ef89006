package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pacemaker/pkg/auth"
	"pacemaker/pkg/respond"
	"pacemaker/pkg/review/service"
)

type ReviewCtrl struct {
	svc service.ReviewService
	loc *time.Location
	now func() time.Time
}

func New(svc service.ReviewService, loc *time.Location) *ReviewCtrl {
	return &ReviewCtrl{svc: svc, loc: loc, now: time.Now}
}

func (h *ReviewCtrl) Overview(c echo.Context) error {
	d, err := respond.Date(c, h.loc, h.now())
	if err != nil {
		return respond.Err(c, err)
	}
	ov, err := h.svc.Overview(c.Request().Context(), auth.UserID(c), d)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, ov)
}

func (h *ReviewCtrl) Get(c echo.Context) error {
	rv, err := h.svc.Get(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return respond.Err(c, err)
	}
	// null until the first save
	return c.JSON(http.StatusOK, rv)
}

func (h *ReviewCtrl) Save(c echo.Context) error {
	var req service.ReviewInput
	if err := c.Bind(&req); err != nil {
		return respond.BadJSON(c)
	}
	rv, err := h.svc.Save(c.Request().Context(), auth.UserID(c), c.Param("id"), req)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, rv)
}
