package serviceImp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pacemaker/database"
	"pacemaker/entities"
	planrepo "pacemaker/pkg/plan/repository"
	planrepoImp "pacemaker/pkg/plan/repositoryImp"
	taskrepo "pacemaker/pkg/task/repository"
	taskrepoImp "pacemaker/pkg/task/repositoryImp"
)

var wed = time.Date(2026, 1, 14, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *PlanSvc
	plans planrepo.PlanRepository
	tasks taskrepo.TaskRepository
	proj  *entities.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	proj := &entities.Project{UserID: "u1", Name: "Alpha"}
	require.NoError(t, db.Create(proj).Error)

	pr, tr := planrepoImp.New(db), taskrepoImp.New(db)
	svc := NewPlanService(pr, tr, time.UTC).WithClock(func() time.Time { return wed })
	return &fixture{svc: svc, plans: pr, tasks: tr, proj: proj}
}

func (f *fixture) task(t *testing.T, title string) *entities.Task {
	t.Helper()
	tk := &entities.Task{UserID: "u1", ProjectID: f.proj.ID, Title: title}
	require.NoError(t, f.tasks.Create(context.Background(), tk))
	return tk
}

func TestGetOrCreatePlan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p1, err := f.svc.GetOrCreatePlan(ctx, "u1", wed)
	require.NoError(t, err)
	assert.Equal(t, "2026-03", p1.WeekKey)
	assert.Equal(t, "2026-01-12", p1.WeekStartDate)

	// any day of the same week resolves to the same plan
	p2, err := f.svc.GetOrCreatePlan(ctx, "u1", wed.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)

	p3, err := f.svc.GetOrCreatePlan(ctx, "u2", wed)
	require.NoError(t, err)
	assert.NotEqual(t, p1.ID, p3.ID)
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plan, err := f.svc.GetOrCreatePlan(ctx, "u1", wed)
	require.NoError(t, err)
	a, b := f.task(t, "a"), f.task(t, "b")

	t.Run("appends after the highest sort order", func(t *testing.T) {
		ia, err := f.svc.AddItem(ctx, "u1", plan.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, ia.SortOrder)

		ib, err := f.svc.AddItem(ctx, "u1", plan.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, ib.SortOrder)
	})

	t.Run("adding twice keeps one item", func(t *testing.T) {
		again, err := f.svc.AddItem(ctx, "u1", plan.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, again.SortOrder)

		items, err := f.svc.ListItems(ctx, "u1", plan.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("other users cannot add", func(t *testing.T) {
		_, err := f.svc.AddItem(ctx, "u2", plan.ID, a.ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("planned tasks leave the backlog", func(t *testing.T) {
		c := f.task(t, "c")
		view, err := f.svc.Week(ctx, "u1", wed)
		require.NoError(t, err)
		require.Len(t, view.Backlog, 1)
		assert.Equal(t, c.ID, view.Backlog[0].ID)
		require.NotNil(t, view.Backlog[0].Project)
		assert.Equal(t, "Alpha", view.Backlog[0].Project.Name)
		assert.Equal(t, "2026 week 3 (01/12 ~ 01/18)", view.Label)
		require.Len(t, view.Items, 2)
		assert.Equal(t, "a", view.Items[0].Task.Title)
		require.NotNil(t, view.Items[0].Task.Project)
		assert.Equal(t, "Alpha", view.Items[0].Task.Project.Name)
	})
}

func TestPickAndUnpick(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plan, err := f.svc.GetOrCreatePlan(ctx, "u1", wed)
	require.NoError(t, err)
	it, err := f.svc.AddItem(ctx, "u1", plan.ID, f.task(t, "a").ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.PickForToday(ctx, "u1", it.ID))
	today, err := f.svc.TodayItems(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.True(t, today[0].PickedForToday)
	require.NotNil(t, today[0].PickedDate)
	assert.Equal(t, "2026-01-14", *today[0].PickedDate)

	// a pick from yesterday is not today's
	f.svc.WithClock(func() time.Time { return wed.AddDate(0, 0, 1) })
	today, err = f.svc.TodayItems(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, today)

	require.NoError(t, f.svc.Unpick(ctx, "u1", it.ID))
	items, err := f.svc.ListItems(ctx, "u1", plan.ID)
	require.NoError(t, err)
	assert.False(t, items[0].PickedForToday)
	assert.Nil(t, items[0].PickedDate)

	assert.ErrorIs(t, f.svc.PickForToday(ctx, "u2", it.ID), entities.ErrNotFound)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plan, err := f.svc.GetOrCreatePlan(ctx, "u1", wed)
	require.NoError(t, err)
	tk := f.task(t, "a")
	it, err := f.svc.AddItem(ctx, "u1", plan.ID, tk.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.RemoveItem(ctx, "u2", it.ID), entities.ErrNotFound)
	require.NoError(t, f.svc.RemoveItem(ctx, "u1", it.ID))
	assert.ErrorIs(t, f.svc.RemoveItem(ctx, "u1", it.ID), entities.ErrNotFound)

	// the task itself survives
	_, err = f.tasks.FindByID(ctx, tk.ID, "u1")
	assert.NoError(t, err)
}

func seedItems(t *testing.T, f *fixture, n int) string {
	t.Helper()
	ctx := context.Background()
	plan, err := f.svc.GetOrCreatePlan(ctx, "u1", wed)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := f.svc.AddItem(ctx, "u1", plan.ID, f.task(t, string(rune('a'+i))).ID)
		require.NoError(t, err)
	}
	return plan.ID
}

func titles(items []entities.PlanItemView) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Task.Title
	}
	return out
}

func TestReorder(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the moved range", func(t *testing.T) {
		f := newFixture(t)
		planID := seedItems(t, f, 4)

		res, err := f.svc.Reorder(ctx, "u1", planID, 0, 2)
		require.NoError(t, err)
		assert.False(t, res.Resynced)
		assert.Len(t, res.Changes, 3)
		assert.Equal(t, []string{"b", "c", "a", "d"}, titles(res.Items))

		items, err := f.svc.ListItems(ctx, "u1", planID)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a", "d"}, titles(items))
		for i, it := range items {
			assert.Equal(t, i, it.SortOrder)
		}
	})

	t.Run("by id", func(t *testing.T) {
		f := newFixture(t)
		planID := seedItems(t, f, 3)
		items, err := f.svc.ListItems(ctx, "u1", planID)
		require.NoError(t, err)

		res, err := f.svc.ReorderByID(ctx, "u1", planID, items[2].ID, items[0].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, titles(res.Items))

		_, err = f.svc.ReorderByID(ctx, "u1", planID, "missing", items[0].ID)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("same position writes nothing", func(t *testing.T) {
		f := newFixture(t)
		planID := seedItems(t, f, 2)
		res, err := f.svc.Reorder(ctx, "u1", planID, 1, 1)
		require.NoError(t, err)
		assert.Empty(t, res.Changes)
	})

	t.Run("out of range", func(t *testing.T) {
		f := newFixture(t)
		planID := seedItems(t, f, 2)
		_, err := f.svc.Reorder(ctx, "u1", planID, 0, 5)
		assert.ErrorIs(t, err, entities.ErrInvalidInput)
	})

	t.Run("foreign plan", func(t *testing.T) {
		f := newFixture(t)
		planID := seedItems(t, f, 2)
		_, err := f.svc.Reorder(ctx, "u2", planID, 0, 1)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("failed write reloads from storage", func(t *testing.T) {
		f := newFixture(t)
		planID := seedItems(t, f, 3)
		items, err := f.svc.ListItems(ctx, "u1", planID)
		require.NoError(t, err)

		flaky := &failingUpdates{PlanRepository: f.plans, failID: items[0].ID}
		svc := NewPlanService(flaky, f.tasks, time.UTC)

		res, err := svc.Reorder(ctx, "u1", planID, 0, 2)
		require.Error(t, err)
		require.NotNil(t, res)
		assert.True(t, res.Resynced)

		// the reloaded list reflects whatever was actually stored
		stored, err := f.svc.ListItems(ctx, "u1", planID)
		require.NoError(t, err)
		assert.Equal(t, titles(stored), titles(res.Items))
	})
}

type failingUpdates struct {
	planrepo.PlanRepository
	failID string
}

func (r *failingUpdates) UpdateItem(ctx context.Context, id, uid string, upd map[string]any) error {
	if id == r.failID {
		return errors.New("connection reset")
	}
	return r.PlanRepository.UpdateItem(ctx, id, uid, upd)
}
