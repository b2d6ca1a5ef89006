package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"pacemaker/entities"
	repo "pacemaker/pkg/project/repository"
	"pacemaker/pkg/project/service"
)

const maxNameLen = 200

type projectSvc struct{ r repo.ProjectRepository }

func NewProjectService(r repo.ProjectRepository) service.ProjectService { return &projectSvc{r} }

func (s *projectSvc) Create(ctx context.Context, uid string, in service.ProjectInput) (*entities.Project, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return nil, err
	}
	p := &entities.Project{UserID: uid, Name: name, Description: trimmed(in.Description), Status: entities.ProjectActive}
	if err := s.r.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectSvc) Get(ctx context.Context, uid, id string) (*entities.Project, error) {
	return s.r.FindByID(ctx, id, uid)
}

func (s *projectSvc) List(ctx context.Context, uid string) ([]entities.Project, error) {
	return s.r.ListActive(ctx, uid)
}

func (s *projectSvc) Update(ctx context.Context, uid, id string, p service.ProjectPatch) (*entities.Project, error) {
	upd := map[string]any{}
	if p.Name != nil {
		name, err := cleanName(*p.Name)
		if err != nil {
			return nil, err
		}
		upd["name"] = name
	}
	if p.Description != nil {
		upd["description"] = trimmed(p.Description)
	}
	if p.Status != nil {
		if *p.Status != entities.ProjectActive {
			return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidInput, *p.Status)
		}
		upd["status"] = *p.Status
	}
	if len(upd) == 0 {
		return s.r.FindByID(ctx, id, uid)
	}
	return s.r.Update(ctx, id, uid, upd)
}

func (s *projectSvc) Delete(ctx context.Context, uid, id string) error {
	return s.r.Delete(ctx, id, uid)
}

func (s *projectSvc) Counts(ctx context.Context, uid string) (entities.Counts, error) {
	return s.r.Counts(ctx, uid)
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", entities.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", fmt.Errorf("%w: name is longer than %d characters", entities.ErrInvalidInput, maxNameLen)
	}
	return name, nil
}

// trimmed turns blank optional text into NULL.
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
