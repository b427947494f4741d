package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *model.User) error

	GetUserByID(ctx context.Context, id string) (model.User, error)

	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	// FindUserByUsernameOrEmail returns the first user holding either value.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (model.User, error)

	UpdateUser(ctx context.Context, u *model.User) error

	// DeleteUser removes the user together with every owned label and task.
	DeleteUser(ctx context.Context, id string) error
}

type LabelRepo interface {
	CreateLabel(ctx context.Context, l *model.Label) error

	GetLabel(ctx context.Context, userID string, id uint) (model.Label, error)

	ListLabels(ctx context.Context, userID string, p model.ListParams) ([]model.Label, error)

	UpdateLabel(ctx context.Context, l *model.Label) error

	// DeleteLabel removes the label and clears it from every task referencing it.
	DeleteLabel(ctx context.Context, userID string, id uint) error
}

type TaskRepo interface {
	CreateTask(ctx context.Context, t *model.Task) error

	GetTask(ctx context.Context, userID string, id uint) (model.Task, error)

	ListTasks(ctx context.Context, userID string, p model.ListParams) ([]model.Task, error)

	UpdateTask(ctx context.Context, t *model.Task) error

	// SaveStatuses persists only the status column of the given tasks.
	SaveStatuses(ctx context.Context, tasks []model.Task) error

	DeleteTask(ctx context.Context, userID string, id uint) error
}

// Store is the persistence boundary used by the application services.
type Store interface {
	UserRepo
	LabelRepo
	TaskRepo

	// WithTx runs fn against a transactional Store. The transaction commits
	// when fn returns nil and rolls back on error or panic.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
