package postgres

import (
	"context"
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateTask(ctx context.Context, t *model.Task) error {
	res := s.db.WithContext(ctx).Create(t)
	return mapError(res.Error, "CreateTask")
}

func (s *Store) GetTask(ctx context.Context, userID string, id uint) (model.Task, error) {
	var t model.Task
	res := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&t)
	if err := res.Error; err != nil {
		return model.Task{}, mapError(err, "GetTask")
	}
	return t, nil
}

// ListTasks orders by a tasks.* or labels.* column. Ordering by a label
// column keeps tasks without a label.
func (s *Store) ListTasks(ctx context.Context, userID string, p model.ListParams) ([]model.Task, error) {
	q := s.db.WithContext(ctx).Model(&model.Task{}).Select("tasks.*")
	if strings.HasPrefix(p.Column, "labels.") {
		q = q.Joins("LEFT JOIN labels ON labels.id = tasks.label_id")
	}

	var tasks []model.Task
	res := q.Where("tasks.user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: p.Column}, Desc: p.Desc}).
		Order("tasks.id").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&tasks)
	if err := res.Error; err != nil {
		return nil, mapError(err, "ListTasks")
	}
	return tasks, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *model.Task) error {
	res := s.db.WithContext(ctx).Save(t)
	return mapError(res.Error, "UpdateTask")
}

// SaveStatuses writes only the status column and leaves updated_at alone.
func (s *Store) SaveStatuses(ctx context.Context, tasks []model.Task) error {
	for _, t := range tasks {
		err := s.db.WithContext(ctx).Model(&model.Task{}).
			Where("id = ?", t.ID).
			UpdateColumn("status", t.Status).Error
		if err != nil {
			return mapError(err, "SaveStatuses")
		}
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, userID string, id uint) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&model.Task{})
	if err := res.Error; err != nil {
		return mapError(err, "DeleteTask")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
