package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/lifecycle"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/repo"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/clock"
	"github.com/go-playground/validator/v10"
)

const (
	defaultTaskOrder = "task_id-asc"

	msgCreatePastExpiry = "Expires_at is in the past"
	msgUpdatePastExpiry = "The datetime entered is in the past"
)

// Columns prefixed with labels. are ordered through a LEFT JOIN on labels.
var taskColumns = map[string]string{
	"task_id":          "tasks.id",
	"task_title":       "tasks.title",
	"task_description": "tasks.description",
	"task_status":      "tasks.status",
	"task_expires_at":  "tasks.expires_at",
	"label_id":         "labels.id",
	"label_title":      "labels.title",
	"label_color":      "labels.color",
	"label_priority":   "labels.priority",
}

type TaskService interface {
	Create(ctx context.Context, userID string, in dto.CreateTaskDTO) (model.Task, error)
	Get(ctx context.Context, userID string, id uint) (model.Task, error)
	List(ctx context.Context, userID string, q dto.ListQuery) ([]model.Task, error)
	Update(ctx context.Context, userID string, id uint, in dto.UpdateTaskDTO) (model.Task, error)
	Delete(ctx context.Context, userID string, id uint) error
}

type taskService struct {
	store repo.Store
	clock clock.Clock
	v     *validator.Validate
}

func NewTaskService(s repo.Store, clk clock.Clock, v *validator.Validate) TaskService {
	return &taskService{store: s, clock: clk, v: v}
}

func (s *taskService) Create(ctx context.Context, userID string, in dto.CreateTaskDTO) (model.Task, error) {
	if err := validate(s.v, in); err != nil {
		return model.Task{}, err
	}

	now := s.clock.Now()
	if err := lifecycle.ValidateExpiry(in.ExpiresAt, now, msgCreatePastExpiry); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.StatusPending,
		ExpiresAt:   in.ExpiresAt.In(now.Location()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		if id := deref(in.LabelID); id != 0 {
			if _, err := tx.GetLabel(ctx, userID, id); err != nil {
				return notFoundAs(err, msgLabelNotFound)
			}
			task.LabelID = &id
		}
		return tx.CreateTask(ctx, &task)
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Get returns the task with its effective status, persisting the status when
// it changed.
func (s *taskService) Get(ctx context.Context, userID string, id uint) (model.Task, error) {
	var task model.Task
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		var err error
		task, err = tx.GetTask(ctx, userID, id)
		if err != nil {
			return notFoundAs(err, msgTaskNotFound)
		}

		if lifecycle.Apply(&task, s.clock.Now()) {
			return tx.SaveStatuses(ctx, []model.Task{task})
		}
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, userID string, q dto.ListQuery) ([]model.Task, error) {
	params, err := listParams(s.v, q, defaultTaskOrder, taskColumns)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	err = s.store.WithTx(ctx, func(tx repo.Store) error {
		var err error
		tasks, err = tx.ListTasks(ctx, userID, params)
		if err != nil {
			return err
		}

		if changed := lifecycle.ApplyAll(tasks, s.clock.Now()); len(changed) > 0 {
			return tx.SaveStatuses(ctx, changed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) Update(ctx context.Context, userID string, id uint, in dto.UpdateTaskDTO) (model.Task, error) {
	if err := validate(s.v, in); err != nil {
		return model.Task{}, err
	}

	now := s.clock.Now()

	var task model.Task
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		var err error
		task, err = tx.GetTask(ctx, userID, id)
		if err != nil {
			return notFoundAs(err, msgTaskNotFound)
		}

		if in.ExpiresAt != nil {
			if err := lifecycle.ValidateExpiry(*in.ExpiresAt, now, msgUpdatePastExpiry); err != nil {
				return err
			}
		}

		if in.LabelID != nil {
			if *in.LabelID == 0 {
				task.LabelID = nil
			} else {
				if _, err := tx.GetLabel(ctx, userID, *in.LabelID); err != nil {
					return notFoundAs(err, msgLabelNotFound)
				}
				labelID := *in.LabelID
				task.LabelID = &labelID
			}
		}
		if in.Title != nil && *in.Title != "" {
			task.Title = *in.Title
		}
		if in.Description != nil {
			task.Description = in.Description
		}
		if in.Status != nil {
			task.Status = *in.Status
		}
		if in.ExpiresAt != nil {
			task.ExpiresAt = in.ExpiresAt.In(now.Location())
		}

		lifecycle.Apply(&task, now)
		task.UpdatedAt = now

		return tx.UpdateTask(ctx, &task)
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID string, id uint) error {
	return s.store.WithTx(ctx, func(tx repo.Store) error {
		return notFoundAs(tx.DeleteTask(ctx, userID, id), msgTaskNotFound)
	})
}
