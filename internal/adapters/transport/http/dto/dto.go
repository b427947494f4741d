package dto

import (
	"time"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
)

type LoginDTO struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=255"`
	Email    string `json:"email"    validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserDTO fields left nil or empty are not changed.
type UpdateUserDTO struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email,max=320"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type CreateLabelDTO struct {
	Title    string `json:"title"    validate:"required,max=100"`
	Color    string `json:"color"    validate:"required,hexcolor6"`
	Priority int    `json:"priority" validate:"required,gte=1,lte=10"`
}

type UpdateLabelDTO struct {
	Title    *string `json:"title"    validate:"omitempty,max=100"`
	Color    *string `json:"color"    validate:"omitempty,hexcolor6"`
	Priority *int    `json:"priority" validate:"omitempty,gte=1,lte=10"`
}

type CreateTaskDTO struct {
	Title       string    `json:"title"       validate:"required,max=255"`
	Description *string   `json:"description"`
	ExpiresAt   time.Time `json:"expires_at"  validate:"required"`
	LabelID     *uint     `json:"label_id"`
}

// UpdateTaskDTO is a partial update. A label_id of 0 detaches the label.
type UpdateTaskDTO struct {
	Title       *string           `json:"title"       validate:"omitempty,max=255"`
	Description *string           `json:"description"`
	Status      *model.TaskStatus `json:"status"      validate:"omitempty,oneof=pending doing done expired"`
	ExpiresAt   *time.Time        `json:"expires_at"`
	LabelID     *uint             `json:"label_id"`
}

// ListQuery is one page of a listing. Page is a row offset.
type ListQuery struct {
	PageSize int    `form:"page_size,default=10" json:"page_size" validate:"gt=0"`
	Page     int    `form:"page,default=0"       json:"page"      validate:"gte=0"`
	OrderBy  string `form:"order_by"             json:"order_by"`
}

type TokenResponse struct {
	AccessToken  model.Token `json:"access_token"`
	RefreshToken model.Token `json:"refresh_token"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LabelResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LabelsResponse struct {
	Labels []LabelResponse `json:"labels"`
}

type TaskResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Status      model.TaskStatus `json:"status"`
	LabelID     *uint            `json:"label_id"`
	ExpiresAt   time.Time        `json:"expires_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type SuccessResponse struct {
	Success string `json:"success"`
}

type ErrorResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func NewTokenResponse(p model.TokenPair) TokenResponse {
	return TokenResponse{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

// NewLabelResponse renders timestamps in loc so every response uses one zone.
func NewLabelResponse(l model.Label, loc *time.Location) LabelResponse {
	return LabelResponse{
		ID:        l.ID,
		Title:     l.Title,
		Color:     l.Color,
		Priority:  l.Priority,
		CreatedAt: inZone(l.CreatedAt, loc),
		UpdatedAt: inZone(l.UpdatedAt, loc),
	}
}

func NewLabelsResponse(ls []model.Label, loc *time.Location) LabelsResponse {
	out := LabelsResponse{Labels: make([]LabelResponse, 0, len(ls))}
	for _, l := range ls {
		out.Labels = append(out.Labels, NewLabelResponse(l, loc))
	}
	return out
}

// NewTaskResponse renders timestamps in loc so every response uses one zone.
func NewTaskResponse(t model.Task, loc *time.Location) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		LabelID:     t.LabelID,
		ExpiresAt:   inZone(t.ExpiresAt, loc),
		CreatedAt:   inZone(t.CreatedAt, loc),
		UpdatedAt:   inZone(t.UpdatedAt, loc),
	}
}

func NewTasksResponse(ts []model.Task, loc *time.Location) TasksResponse {
	out := TasksResponse{Tasks: make([]TaskResponse, 0, len(ts))}
	for _, t := range ts {
		out.Tasks = append(out.Tasks, NewTaskResponse(t, loc))
	}
	return out
}

// inZone leaves t untouched when loc is nil.
func inZone(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}
