package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/repo"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/infra/clock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgUsernameTaken = "Username already exists"
	msgEmailTaken    = "Email already exists"
)

type UserService interface {
	Register(context.Context, dto.RegisterDTO) (model.User, error)
	Update(context.Context, model.User, dto.UpdateUserDTO) (model.User, error)
	Delete(context.Context, model.User) error
}

type userService struct {
	store  repo.Store
	hasher PasswordHasher
	clock  clock.Clock
	v      *validator.Validate
}

func NewUserService(s repo.Store, h PasswordHasher, clk clock.Clock, v *validator.Validate) UserService {
	return &userService{store: s, hasher: h, clock: clk, v: v}
}

func (s *userService) Register(ctx context.Context, in dto.RegisterDTO) (model.User, error) {
	if err := validate(s.v, in); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Register")
	}

	now := s.clock.Now()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.store.WithTx(ctx, func(tx repo.Store) error {
		existing, err := tx.FindUserByUsernameOrEmail(ctx, in.Username, in.Email)
		switch {
		case err == nil:
			return takenBy(existing, in.Username)
		case !customErrors.IsNotFound(err):
			return err
		}
		return tx.CreateUser(ctx, &user)
	})
	if err != nil {
		if _, ok := customErrors.Message(err); !ok && customErrors.IsAlreadyExists(err) {
			// Lost an insert race; the aborted transaction cannot be queried.
			return model.User{}, s.racedDuplicate(ctx, in)
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *userService) racedDuplicate(ctx context.Context, in dto.RegisterDTO) error {
	existing, err := s.store.FindUserByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return customErrors.NewAlreadyExists(msgUsernameTaken)
	}
	return takenBy(existing, in.Username)
}

func takenBy(existing model.User, username string) error {
	if existing.Username == username {
		return customErrors.NewAlreadyExists(msgUsernameTaken)
	}
	return customErrors.NewAlreadyExists(msgEmailTaken)
}

func (s *userService) Update(ctx context.Context, current model.User, in dto.UpdateUserDTO) (model.User, error) {
	if err := validate(s.v, in); err != nil {
		return model.User{}, err
	}

	username, email, password := deref(in.Username), deref(in.Email), deref(in.Password)
	if username == "" && email == "" && password == "" {
		return model.User{}, customErrors.NewInvalidArgument(msgNothingToUpdate)
	}

	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return model.User{}, customErrors.WrapInternal(err, "Update")
		}
		current.PasswordHash = hash
	}

	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		if username != "" && username != current.Username {
			if err := ensureFree(tx.GetUserByUsername(ctx, username)); err != nil {
				return alreadyExistsAs(err, msgUsernameTaken)
			}
			current.Username = username
		}

		if email != "" && email != current.Email {
			if err := ensureFree(tx.GetUserByEmail(ctx, email)); err != nil {
				return alreadyExistsAs(err, msgEmailTaken)
			}
			current.Email = email
		}

		current.UpdatedAt = s.clock.Now()
		if err := tx.UpdateUser(ctx, &current); err != nil {
			return alreadyExistsAs(err, msgUsernameTaken)
		}
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return current, nil
}

func (s *userService) Delete(ctx context.Context, current model.User) error {
	return s.store.WithTx(ctx, func(tx repo.Store) error {
		return tx.DeleteUser(ctx, current.ID)
	})
}

// ensureFree turns a successful lookup into ErrAlreadyExists and an absent
// row into nil.
func ensureFree(_ model.User, err error) error {
	switch {
	case err == nil:
		return customErrors.ErrAlreadyExists
	case customErrors.IsNotFound(err):
		return nil
	}
	return err
}

func alreadyExistsAs(err error, msg string) error {
	if customErrors.IsAlreadyExists(err) {
		return customErrors.NewAlreadyExists(msg)
	}
	return err
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
