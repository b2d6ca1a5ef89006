package controllerImp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacemaker/database"
	"pacemaker/entities"
	"pacemaker/pkg/auth"
	planrepo "pacemaker/pkg/plan/repository"
	planrepoImp "pacemaker/pkg/plan/repositoryImp"
	"pacemaker/pkg/plan/service"
	"pacemaker/pkg/plan/serviceImp"
	taskrepo "pacemaker/pkg/task/repository"
	taskrepoImp "pacemaker/pkg/task/repositoryImp"
)

var wed = time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC)

type brokenUpdates struct {
	planrepo.PlanRepository
	failID string
}

func (r *brokenUpdates) UpdateItem(ctx context.Context, id, uid string, upd map[string]any) error {
	if id == r.failID {
		return errors.New("connection reset")
	}
	return r.PlanRepository.UpdateItem(ctx, id, uid, upd)
}

type planFixture struct {
	plans  planrepo.PlanRepository
	tasks  taskrepo.TaskRepository
	planID string
	items  []entities.PlanItemView
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	proj := &entities.Project{UserID: "u1", Name: "Alpha"}
	require.NoError(t, db.Create(proj).Error)

	pr, tr := planrepoImp.New(db), taskrepoImp.New(db)
	svc := serviceImp.NewPlanService(pr, tr, time.UTC).WithClock(func() time.Time { return wed })
	plan, err := svc.GetOrCreatePlan(ctx, "u1", wed)
	require.NoError(t, err)
	for _, title := range []string{"a", "b", "c"} {
		tk := &entities.Task{UserID: "u1", ProjectID: proj.ID, Title: title}
		require.NoError(t, tr.Create(ctx, tk))
		_, err := svc.AddItem(ctx, "u1", plan.ID, tk.ID)
		require.NoError(t, err)
	}
	items, err := svc.ListItems(ctx, "u1", plan.ID)
	require.NoError(t, err)
	return &planFixture{plans: pr, tasks: tr, planID: plan.ID, items: items}
}

func (f *planFixture) ctrl(plans planrepo.PlanRepository) *PlanCtrl {
	return NewPlanCtrl(serviceImp.NewPlanService(plans, f.tasks, time.UTC), time.UTC)
}

func reorderCall(t *testing.T, h *PlanCtrl, planID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/plans/"+planID+"/reorder", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(planID)
	auth.SetIdentity(c, auth.Identity{UserID: "u1"})
	require.NoError(t, h.Reorder(c))
	return rec
}

func itemTitles(items []entities.PlanItemView) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Task.Title
	}
	return out
}

func TestReorderByItemID(t *testing.T) {
	f := newPlanFixture(t)
	h := f.ctrl(f.plans)

	rec := reorderCall(t, h, f.planID, `{"item_id":"`+f.items[0].ID+`","over_id":"`+f.items[2].ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res service.ReorderResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Resynced)
	assert.Equal(t, []string{"b", "c", "a"}, itemTitles(res.Items))

	stored, err := f.plans.ListItems(context.Background(), "u1", f.planID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, itemTitles(stored))
}

func TestReorderRejects(t *testing.T) {
	f := newPlanFixture(t)
	h := f.ctrl(f.plans)

	for _, tc := range []struct {
		name   string
		body   string
		status int
	}{
		{"no positions", `{}`, http.StatusBadRequest},
		{"only item id", `{"item_id":"` + f.items[0].ID + `"}`, http.StatusBadRequest},
		{"unknown target", `{"item_id":"` + f.items[0].ID + `","over_id":"nope"}`, http.StatusNotFound},
		{"index out of range", `{"from":0,"to":9}`, http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := reorderCall(t, h, f.planID, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestReorderConflictReturnsStoredOrder(t *testing.T) {
	f := newPlanFixture(t)
	// a's write fails while the others go through
	h := f.ctrl(&brokenUpdates{PlanRepository: f.plans, failID: f.items[0].ID})

	rec := reorderCall(t, h, f.planID, `{"item_id":"`+f.items[0].ID+`","over_id":"`+f.items[2].ID+`"}`)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var res service.ReorderResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Resynced)

	stored, err := f.plans.ListItems(context.Background(), "u1", f.planID)
	require.NoError(t, err)
	assert.Equal(t, itemTitles(stored), itemTitles(res.Items))
	assert.Len(t, res.Items, 3)
}
