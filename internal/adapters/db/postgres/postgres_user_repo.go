package postgres

import (
	"context"

	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	res := s.db.WithContext(ctx).Omit(clause.Associations).Create(u)
	return mapError(res.Error, "CreateUser")
}

func (s *Store) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return s.firstUser(ctx, "GetUserByID", "id = ?", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.firstUser(ctx, "GetUserByUsername", "username = ?", username)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.firstUser(ctx, "GetUserByEmail", "email = ?", email)
}

func (s *Store) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error) {
	return s.firstUser(ctx, "FindUserByUsernameOrEmail", "username = ? OR email = ?", username, email)
}

func (s *Store) firstUser(ctx context.Context, op string, query string, args ...any) (model.User, error) {
	var u model.User
	res := s.db.WithContext(ctx).Where(query, args...).Order("created_at").First(&u)
	if err := res.Error; err != nil {
		return model.User{}, mapError(err, op)
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *model.User) error {
	res := s.db.WithContext(ctx).Omit(clause.Associations).Save(u)
	return mapError(res.Error, "UpdateUser")
}

// DeleteUser removes owned tasks and labels before the user so the result
// does not depend on the schema's ON DELETE rules.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return mapError(err, "DeleteUser tasks")
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Label{}).Error; err != nil {
			return mapError(err, "DeleteUser labels")
		}

		res := tx.Where("id = ?", id).Delete(&model.User{})
		if err := res.Error; err != nil {
			return mapError(err, "DeleteUser")
		}
		if res.RowsAffected == 0 {
			return customErrors.ErrNotFound
		}
		return nil
	})
}
