package repo

import (
	"errors"

	"gorm.io/gorm"

	"devtasks/internal/domain"
)

type TaskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) *TaskRepo { return &TaskRepo{db: db} }

func (r *TaskRepo) Create(t *domain.Task) error { return r.db.Create(t).Error }

// FindOwned owner 条件折叠进查询，别人的任务和不存在的任务都查不到
func (r *TaskRepo) FindOwned(ownerID, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.First(&t, "id = ? AND user_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *TaskRepo) ListByOwner(ownerID string, f domain.TaskFilter) ([]domain.Task, error) {
	q := r.db.Where("user_id = ?", ownerID)
	switch f {
	case domain.FilterActive:
		q = q.Where("completed = ?", false)
	case domain.FilterCompleted:
		q = q.Where("completed = ?", true)
	}
	var tasks []domain.Task
	err := q.Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepo) RecentByOwner(ownerID string, limit int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.Where("user_id = ?", ownerID).
		Order("created_at desc").Limit(limit).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepo) Update(t *domain.Task) error { return r.db.Save(t).Error }

func (r *TaskRepo) DeleteOwned(ownerID, id string) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&domain.Task{})
	return res.RowsAffected, res.Error
}

func (r *TaskRepo) CountsByOwner(ownerID string) (domain.TaskCounts, error) {
	return r.counts(r.db.Model(&domain.Task{}).Where("user_id = ?", ownerID))
}

func (r *TaskRepo) CountsAll() (domain.TaskCounts, error) {
	return r.counts(r.db.Model(&domain.Task{}))
}

func (r *TaskRepo) counts(q *gorm.DB) (domain.TaskCounts, error) {
	var c domain.TaskCounts
	if err := q.Session(&gorm.Session{}).Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := q.Session(&gorm.Session{}).Where("completed = ?", true).Count(&c.Completed).Error; err != nil {
		return c, err
	}
	c.Active = c.Total - c.Completed
	return c, nil
}
