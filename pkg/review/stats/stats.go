package stats

import "pacemaker/entities"

// Compute summarizes a week's plan items in one pass. Items without a project
// count toward the totals but not toward the per-project breakdown.
func Compute(items []entities.PlanItemView) entities.WeeklyStats {
	st := entities.WeeklyStats{
		TotalTasks:           len(items),
		CompletionsByProject: map[string]entities.ProjectCompletion{},
	}
	for _, it := range items {
		if !it.Task.IsDone {
			continue
		}
		st.CompletedTasks++
		p := it.Task.Project
		if p == nil {
			continue
		}
		pc := st.CompletionsByProject[p.ID]
		pc.Name = p.Name
		pc.Count++
		st.CompletionsByProject[p.ID] = pc
	}
	if st.TotalTasks > 0 {
		st.CompletionRatio = float64(st.CompletedTasks) / float64(st.TotalTasks)
	}
	return st
}
