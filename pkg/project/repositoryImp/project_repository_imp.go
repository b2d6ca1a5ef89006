package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pacemaker/database"
	"pacemaker/entities"
	"pacemaker/pkg/project/repository"
)

type projectRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProjectRepository { return &projectRepo{db} }

func (r *projectRepo) Create(ctx context.Context, p *entities.Project) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *projectRepo) FindByID(ctx context.Context, id, uid string) (*entities.Project, error) {
	var p entities.Project
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&p).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

func (r *projectRepo) ListActive(ctx context.Context, uid string) ([]entities.Project, error) {
	var out []entities.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", uid, entities.ProjectActive).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

func (r *projectRepo) Update(ctx context.Context, id, uid string, upd map[string]any) (*entities.Project, error) {
	res := r.db.WithContext(ctx).Model(&entities.Project{}).Where("id = ? AND user_id = ?", id, uid).Updates(upd)
	if res.Error != nil {
		return nil, fmt.Errorf("update project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrNotFound
	}
	return r.FindByID(ctx, id, uid)
}

func (r *projectRepo) Delete(ctx context.Context, id, uid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p entities.Project
		if err := tx.Where("id = ? AND user_id = ?", id, uid).First(&p).Error; err != nil {
			if database.IsNotFound(err) {
				return entities.ErrNotFound
			}
			return fmt.Errorf("find project: %w", err)
		}
		taskIDs := func() *gorm.DB {
			return tx.Model(&entities.Task{}).Select("id").Where("project_id = ? AND user_id = ?", id, uid)
		}
		if err := tx.Where("user_id = ? AND task_id IN (?)", uid, taskIDs()).Delete(&entities.WeeklyPlanItem{}).Error; err != nil {
			return fmt.Errorf("delete plan items: %w", err)
		}
		if err := tx.Where("user_id = ? AND task_id IN (?)", uid, taskIDs()).Delete(&entities.TaskLog{}).Error; err != nil {
			return fmt.Errorf("delete task logs: %w", err)
		}
		if err := tx.Where("project_id = ? AND user_id = ?", id, uid).Delete(&entities.Task{}).Error; err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
}

func (r *projectRepo) Counts(ctx context.Context, uid string) (entities.Counts, error) {
	var c entities.Counts
	db := r.db.WithContext(ctx)
	if err := db.Model(&entities.Project{}).Where("user_id = ? AND status = ?", uid, entities.ProjectActive).Count(&c.Projects).Error; err != nil {
		return c, fmt.Errorf("count projects: %w", err)
	}
	if err := db.Model(&entities.Task{}).Where("user_id = ?", uid).Count(&c.Tasks).Error; err != nil {
		return c, fmt.Errorf("count tasks: %w", err)
	}
	return c, nil
}
