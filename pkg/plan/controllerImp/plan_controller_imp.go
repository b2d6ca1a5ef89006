package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pacemaker/pkg/auth"
	"pacemaker/pkg/plan/service"
	"pacemaker/pkg/respond"
)

type PlanCtrl struct {
	svc service.PlanService
	loc *time.Location
	now func() time.Time
}

func NewPlanCtrl(svc service.PlanService, loc *time.Location) *PlanCtrl {
	return &PlanCtrl{svc: svc, loc: loc, now: time.Now}
}

// Week returns the plan for ?date= (default today) with items and backlog.
func (h *PlanCtrl) Week(c echo.Context) error {
	d, err := respond.Date(c, h.loc, h.now())
	if err != nil {
		return respond.Err(c, err)
	}
	v, err := h.svc.Week(c.Request().Context(), auth.UserID(c), d)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlanCtrl) Items(c echo.Context) error {
	out, err := h.svc.ListItems(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type addReq struct {
	TaskID string `json:"task_id"`
}

func (h *PlanCtrl) AddItem(c echo.Context) error {
	var req addReq
	if err := c.Bind(&req); err != nil || req.TaskID == "" {
		return respond.JSONError(c, http.StatusBadRequest, "task_id is required")
	}
	it, err := h.svc.AddItem(c.Request().Context(), auth.UserID(c), c.Param("id"), req.TaskID)
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// reorderReq accepts either indexes or the dragged and target item ids.
type reorderReq struct {
	From   *int   `json:"from"`
	To     *int   `json:"to"`
	ItemID string `json:"item_id"`
	OverID string `json:"over_id"`
}

func (h *PlanCtrl) Reorder(c echo.Context) error {
	var req reorderReq
	if err := c.Bind(&req); err != nil {
		return respond.BadJSON(c)
	}
	ctx, uid, planID := c.Request().Context(), auth.UserID(c), c.Param("id")

	var (
		res *service.ReorderResult
		err error
	)
	switch {
	case req.ItemID != "" && req.OverID != "":
		res, err = h.svc.ReorderByID(ctx, uid, planID, req.ItemID, req.OverID)
	case req.From != nil && req.To != nil:
		res, err = h.svc.Reorder(ctx, uid, planID, *req.From, *req.To)
	default:
		return respond.JSONError(c, http.StatusBadRequest, "from/to or item_id/over_id required")
	}
	if err != nil {
		if res != nil && res.Resynced {
			// the client replaces its optimistic list with the stored one
			return c.JSON(http.StatusConflict, res)
		}
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PlanCtrl) RemoveItem(c echo.Context) error {
	if err := h.svc.RemoveItem(c.Request().Context(), auth.UserID(c), c.Param("id")); err != nil {
		return respond.Err(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanCtrl) Pick(c echo.Context) error {
	return h.setPick(c, true)
}

func (h *PlanCtrl) Unpick(c echo.Context) error {
	return h.setPick(c, false)
}

func (h *PlanCtrl) setPick(c echo.Context, pick bool) error {
	ctx, uid, id := c.Request().Context(), auth.UserID(c), c.Param("id")
	var err error
	if pick {
		err = h.svc.PickForToday(ctx, uid, id)
	} else {
		err = h.svc.Unpick(ctx, uid, id)
	}
	if err != nil {
		return respond.Err(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlanCtrl) Today(c echo.Context) error {
	out, err := h.svc.TodayItems(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return respond.Err(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
