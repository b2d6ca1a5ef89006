package entities

import "time"

// PlanItemView is a plan item joined with its task and the task's project.
type PlanItemView struct {
	ID             string    `json:"id"`
	WeeklyPlanID   string    `json:"weekly_plan_id"`
	TaskID         string    `json:"task_id"`
	SortOrder      int       `json:"sort_order"`
	PickedForToday bool      `json:"picked_for_today"`
	PickedDate     *string   `json:"picked_date"`
	UpdatedAt      time.Time `json:"updated_at"`
	Task           TaskRef   `json:"task"`
}

type TaskRef struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Notes     *string     `json:"notes"`
	IsDone    bool        `json:"is_done"`
	DoneAt    *time.Time  `json:"done_at"`
	ProjectID string      `json:"project_id"`
	Project   *ProjectRef `json:"project"`
}

type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProjectCompletion struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type WeeklyStats struct {
	TotalTasks           int                          `json:"total_tasks"`
	CompletedTasks       int                          `json:"completed_tasks"`
	CompletionRatio      float64                      `json:"completion_ratio"`
	CompletionsByProject map[string]ProjectCompletion `json:"completions_by_project"`
}

type Counts struct {
	Projects int64 `json:"projects"`
	Tasks    int64 `json:"tasks"`
}
