package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pacemaker/entities"
)

func item(done bool, p *entities.ProjectRef) entities.PlanItemView {
	return entities.PlanItemView{Task: entities.TaskRef{IsDone: done, Project: p}}
}

func TestCompute(t *testing.T) {
	a := &entities.ProjectRef{ID: "pa", Name: "A"}
	b := &entities.ProjectRef{ID: "pb", Name: "B"}

	t.Run("half done across two projects", func(t *testing.T) {
		st := Compute([]entities.PlanItemView{
			item(true, a), item(false, a), item(true, b), item(false, b),
		})
		assert.Equal(t, 4, st.TotalTasks)
		assert.Equal(t, 2, st.CompletedTasks)
		assert.InDelta(t, 0.5, st.CompletionRatio, 1e-9)
		assert.Equal(t, map[string]entities.ProjectCompletion{
			"pa": {Name: "A", Count: 1},
			"pb": {Name: "B", Count: 1},
		}, st.CompletionsByProject)
	})

	t.Run("empty week", func(t *testing.T) {
		st := Compute(nil)
		assert.Zero(t, st.TotalTasks)
		assert.Zero(t, st.CompletionRatio)
		assert.NotNil(t, st.CompletionsByProject)
		assert.Empty(t, st.CompletionsByProject)
	})

	t.Run("orphaned task still counts as completed", func(t *testing.T) {
		st := Compute([]entities.PlanItemView{item(true, nil), item(true, a)})
		assert.Equal(t, 2, st.CompletedTasks)
		assert.Equal(t, 1.0, st.CompletionRatio)
		assert.Len(t, st.CompletionsByProject, 1)
	})
}
