package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/repo"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/clock"
	"github.com/go-playground/validator/v10"
)

const defaultLabelOrder = "priority-desc"

var labelColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"color":      "color",
	"priority":   "priority",
	"created_at": "created_at",
}

type LabelService interface {
	Create(ctx context.Context, userID string, in dto.CreateLabelDTO) (model.Label, error)
	Get(ctx context.Context, userID string, id uint) (model.Label, error)
	List(ctx context.Context, userID string, q dto.ListQuery) ([]model.Label, error)
	Update(ctx context.Context, userID string, id uint, in dto.UpdateLabelDTO) (model.Label, error)
	Delete(ctx context.Context, userID string, id uint) error
}

type labelService struct {
	store repo.Store
	clock clock.Clock
	v     *validator.Validate
}

func NewLabelService(s repo.Store, clk clock.Clock, v *validator.Validate) LabelService {
	return &labelService{store: s, clock: clk, v: v}
}

func (s *labelService) Create(ctx context.Context, userID string, in dto.CreateLabelDTO) (model.Label, error) {
	if err := validate(s.v, in); err != nil {
		return model.Label{}, err
	}

	now := s.clock.Now()
	label := model.Label{
		UserID:    userID,
		Title:     in.Title,
		Color:     in.Color,
		Priority:  in.Priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		return tx.CreateLabel(ctx, &label)
	})
	if err != nil {
		return model.Label{}, err
	}
	return label, nil
}

func (s *labelService) Get(ctx context.Context, userID string, id uint) (model.Label, error) {
	label, err := s.store.GetLabel(ctx, userID, id)
	if err != nil {
		return model.Label{}, notFoundAs(err, msgLabelNotFound)
	}
	return label, nil
}

func (s *labelService) List(ctx context.Context, userID string, q dto.ListQuery) ([]model.Label, error) {
	params, err := listParams(s.v, q, defaultLabelOrder, labelColumns)
	if err != nil {
		return nil, err
	}
	return s.store.ListLabels(ctx, userID, params)
}

func (s *labelService) Update(ctx context.Context, userID string, id uint, in dto.UpdateLabelDTO) (model.Label, error) {
	if err := validate(s.v, in); err != nil {
		return model.Label{}, err
	}
	if deref(in.Title) == "" && deref(in.Color) == "" && in.Priority == nil {
		return model.Label{}, customErrors.NewInvalidArgument(msgNothingToUpdate)
	}

	var label model.Label
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		var err error
		label, err = tx.GetLabel(ctx, userID, id)
		if err != nil {
			return notFoundAs(err, msgLabelNotFound)
		}

		if t := deref(in.Title); t != "" {
			label.Title = t
		}
		if c := deref(in.Color); c != "" {
			label.Color = c
		}
		if in.Priority != nil {
			label.Priority = *in.Priority
		}
		label.UpdatedAt = s.clock.Now()

		return tx.UpdateLabel(ctx, &label)
	})
	if err != nil {
		return model.Label{}, err
	}
	return label, nil
}

func (s *labelService) Delete(ctx context.Context, userID string, id uint) error {
	return s.store.WithTx(ctx, func(tx repo.Store) error {
		return notFoundAs(tx.DeleteLabel(ctx, userID, id), msgLabelNotFound)
	})
}
