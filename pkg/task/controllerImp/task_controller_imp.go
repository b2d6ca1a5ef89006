package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pacemaker/entities"
	"pacemaker/pkg/auth"
	"pacemaker/pkg/respond"
	"pacemaker/pkg/task/service"
)

type TaskCtrl struct{ svc service.TaskService }

func New(svc service.TaskService) *TaskCtrl { return &TaskCtrl{svc} }

func (h *TaskCtrl) ListByProject(c echo.Context) error {
	out, err := h.svc.ListByProject(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TaskCtrl) Create(c echo.Context) error {
	var req service.TaskInput
	if err := c.Bind(&req); err != nil {
		return respond.BadJSON(c)
	}
	t, err := h.svc.Create(c.Request().Context(), auth.UserID(c), c.Param("id"), req)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TaskCtrl) Get(c echo.Context) error {
	t, err := h.svc.Get(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TaskCtrl) Update(c echo.Context) error {
	var req service.TaskPatch
	if err := c.Bind(&req); err != nil {
		return respond.BadJSON(c)
	}
	t, err := h.svc.Update(c.Request().Context(), auth.UserID(c), c.Param("id"), req)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TaskCtrl) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), auth.UserID(c), c.Param("id")); err != nil {
		return respond.Err(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type toggleReq struct {
	CurrentIsDone *bool `json:"current_is_done"`
}

// Toggle flips completion. The client may send the state it rendered.
func (h *TaskCtrl) Toggle(c echo.Context) error {
	var req toggleReq
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return respond.BadJSON(c)
		}
	}
	ctx, uid, id := c.Request().Context(), auth.UserID(c), c.Param("id")
	var (
		t   *entities.Task
		err error
	)
	if req.CurrentIsDone != nil {
		t, err = h.svc.ToggleDone(ctx, uid, id, *req.CurrentIsDone)
	} else {
		t, err = h.svc.Toggle(ctx, uid, id)
	}
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TaskCtrl) Logs(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	out, err := h.svc.RecentLogs(c.Request().Context(), auth.UserID(c), days)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
