package postgres

import (
	"context"

	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateLabel(ctx context.Context, l *model.Label) error {
	res := s.db.WithContext(ctx).Omit(clause.Associations).Create(l)
	return mapError(res.Error, "CreateLabel")
}

func (s *Store) GetLabel(ctx context.Context, userID string, id uint) (model.Label, error) {
	var l model.Label
	res := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&l)
	if err := res.Error; err != nil {
		return model.Label{}, mapError(err, "GetLabel")
	}
	return l, nil
}

func (s *Store) ListLabels(ctx context.Context, userID string, p model.ListParams) ([]model.Label, error) {
	var labels []model.Label
	res := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: p.Column}, Desc: p.Desc}).
		Order("id").
		Limit(p.Limit).
		Offset(p.Offset).
		Find(&labels)
	if err := res.Error; err != nil {
		return nil, mapError(err, "ListLabels")
	}
	return labels, nil
}

func (s *Store) UpdateLabel(ctx context.Context, l *model.Label) error {
	res := s.db.WithContext(ctx).Omit(clause.Associations).Save(l)
	return mapError(res.Error, "UpdateLabel")
}

// DeleteLabel detaches the label from tasks and then removes it.
func (s *Store) DeleteLabel(ctx context.Context, userID string, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Task{}).
			Where("user_id = ? AND label_id = ?", userID, id).
			UpdateColumn("label_id", gorm.Expr("NULL")).Error
		if err != nil {
			return mapError(err, "DeleteLabel tasks")
		}

		res := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&model.Label{})
		if err := res.Error; err != nil {
			return mapError(err, "DeleteLabel")
		}
		if res.RowsAffected == 0 {
			return customErrors.ErrNotFound
		}
		return nil
	})
}
