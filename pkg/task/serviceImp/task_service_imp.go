package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"pacemaker/database"
	"pacemaker/entities"
	projectrepo "pacemaker/pkg/project/repository"
	repo "pacemaker/pkg/task/repository"
	"pacemaker/pkg/task/service"
	"pacemaker/pkg/week"
)

const maxTitleLen = 300

type TaskSvc struct {
	tasks    repo.TaskRepository
	projects projectrepo.ProjectRepository
	loc      *time.Location
	now      func() time.Time
}

var _ service.TaskService = (*TaskSvc)(nil)

func NewTaskService(t repo.TaskRepository, p projectrepo.ProjectRepository, loc *time.Location) *TaskSvc {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskSvc{tasks: t, projects: p, loc: loc, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *TaskSvc) WithClock(now func() time.Time) *TaskSvc {
	s.now = now
	return s
}

func (s *TaskSvc) Create(ctx context.Context, uid, projectID string, in service.TaskInput) (*entities.Task, error) {
	title, err := cleanTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if _, err := s.projects.FindByID(ctx, projectID, uid); err != nil {
		return nil, err
	}
	t := &entities.Task{UserID: uid, ProjectID: projectID, Title: title, Notes: trimmed(in.Notes)}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskSvc) Get(ctx context.Context, uid, id string) (*entities.Task, error) {
	return s.tasks.FindByID(ctx, id, uid)
}

func (s *TaskSvc) ListByProject(ctx context.Context, uid, projectID string) ([]entities.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID, uid); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID, uid)
}

func (s *TaskSvc) Update(ctx context.Context, uid, id string, p service.TaskPatch) (*entities.Task, error) {
	upd := map[string]any{}
	if p.Title != nil {
		title, err := cleanTitle(*p.Title)
		if err != nil {
			return nil, err
		}
		upd["title"] = title
	}
	if p.Notes != nil {
		upd["notes"] = trimmed(p.Notes)
	}
	if len(upd) == 0 {
		return s.tasks.FindByID(ctx, id, uid)
	}
	return s.tasks.Update(ctx, id, uid, upd)
}

func (s *TaskSvc) Delete(ctx context.Context, uid, id string) error {
	return s.tasks.Delete(ctx, id, uid)
}

func (s *TaskSvc) ToggleDone(ctx context.Context, uid, id string, currentIsDone bool) (*entities.Task, error) {
	now := s.now().In(s.loc)
	action := entities.ActionComplete
	var doneAt *time.Time
	if currentIsDone {
		action = entities.ActionUncomplete
	} else {
		doneAt = &now
	}
	if err := s.tasks.SetDone(ctx, id, uid, !currentIsDone, doneAt); err != nil {
		return nil, err
	}

	log := &entities.TaskLog{
		UserID:       uid,
		TaskID:       id,
		Action:       action,
		OccurredAt:   now,
		OccurredDate: week.DateKey(now),
	}
	if err := s.tasks.InsertLog(ctx, log); err != nil {
		if !database.IsUniqueViolation(err) {
			return nil, err
		}
		zap.S().Debugw("task log already recorded today", "task_id", id, "action", action)
	}
	return s.tasks.FindByID(ctx, id, uid)
}

func (s *TaskSvc) Toggle(ctx context.Context, uid, id string) (*entities.Task, error) {
	cur, err := s.tasks.FindByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	return s.ToggleDone(ctx, uid, id, cur.IsDone)
}

func (s *TaskSvc) RecentLogs(ctx context.Context, uid string, days int) ([]entities.TaskLog, error) {
	if days <= 0 {
		days = 7
	}
	from := s.now().In(s.loc).AddDate(0, 0, -days)
	return s.tasks.LogsSince(ctx, uid, week.DateKey(from))
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", entities.ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", fmt.Errorf("%w: title is longer than %d characters", entities.ErrInvalidInput, maxTitleLen)
	}
	return title, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
