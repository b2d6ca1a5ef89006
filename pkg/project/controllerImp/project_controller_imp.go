package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pacemaker/pkg/auth"
	"pacemaker/pkg/project/service"
	"pacemaker/pkg/respond"
)

type ProjectCtrl struct{ svc service.ProjectService }

func New(svc service.ProjectService) *ProjectCtrl { return &ProjectCtrl{svc} }

func (h *ProjectCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProjectCtrl) Create(c echo.Context) error {
	var req service.ProjectInput
	if err := c.Bind(&req); err != nil {
		return respond.BadJSON(c)
	}
	p, err := h.svc.Create(c.Request().Context(), auth.UserID(c), req)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectCtrl) Get(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectCtrl) Update(c echo.Context) error {
	var req service.ProjectPatch
	if err := c.Bind(&req); err != nil {
		return respond.BadJSON(c)
	}
	p, err := h.svc.Update(c.Request().Context(), auth.UserID(c), c.Param("id"), req)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), auth.UserID(c), c.Param("id")); err != nil {
		return respond.Err(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary backs the home screen counters.
func (h *ProjectCtrl) Summary(c echo.Context) error {
	counts, err := h.svc.Counts(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, counts)
}
