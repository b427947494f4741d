package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/Miraines/MoonyAndStarry/task-service/internal/app/service"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
	"github.com/gin-gonic/gin"
)

const detailInvalidBody = "Invalid request body"

type Handler struct {
	auth   appsvc.AuthService
	users  appsvc.UserService
	labels appsvc.LabelService
	tasks  appsvc.TaskService
	loc    *time.Location
}

// NewHandler renders response timestamps in loc, the canonical zone.
func NewHandler(
	auth appsvc.AuthService,
	users appsvc.UserService,
	labels appsvc.LabelService,
	tasks appsvc.TaskService,
	loc *time.Location,
) *Handler {
	return &Handler{auth: auth, users: users, labels: labels, tasks: tasks, loc: loc}
}

/* ─────────────────────────────── auth ─────────────────────────────── */

// login accepts the credentials as a form or as JSON.
func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBind(&body); err != nil {
		badRequest(c, detailInvalidBody, err)
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair))
}

func (h *Handler) refreshToken(c *gin.Context) {
	user := mustUser(c)
	pair, err := h.auth.Refresh(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTokenResponse(pair))
}

/* ─────────────────────────────── user ─────────────────────────────── */

func (h *Handler) createUser(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, detailInvalidBody, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

func (h *Handler) showUser(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewUserResponse(mustUser(c)))
}

func (h *Handler) updateUser(c *gin.Context) {
	var body dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, detailInvalidBody, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), mustUser(c), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), mustUser(c)); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "User deleted successfully"})
}

/* ─────────────────────────────── label ─────────────────────────────── */

func (h *Handler) createLabel(c *gin.Context) {
	var body dto.CreateLabelDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, detailInvalidBody, err)
		return
	}

	label, err := h.labels.Create(c.Request.Context(), mustUser(c).ID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewLabelResponse(label, h.loc))
}

func (h *Handler) listLabels(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}

	labels, err := h.labels.List(c.Request.Context(), mustUser(c).ID, q)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLabelsResponse(labels, h.loc))
}

func (h *Handler) showLabel(c *gin.Context) {
	id, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	label, err := h.labels.Get(c.Request.Context(), mustUser(c).ID, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLabelResponse(label, h.loc))
}

func (h *Handler) updateLabel(c *gin.Context) {
	id, ok := pathID(c, "label_id")
	if !ok {
		return
	}
	var body dto.UpdateLabelDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, detailInvalidBody, err)
		return
	}

	label, err := h.labels.Update(c.Request.Context(), mustUser(c).ID, id, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLabelResponse(label, h.loc))
}

func (h *Handler) deleteLabel(c *gin.Context) {
	id, ok := pathID(c, "label_id")
	if !ok {
		return
	}

	if err := h.labels.Delete(c.Request.Context(), mustUser(c).ID, id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "Label deleted successfully"})
}

/* ─────────────────────────────── task ─────────────────────────────── */

func (h *Handler) createTask(c *gin.Context) {
	var body dto.CreateTaskDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, detailInvalidBody, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), mustUser(c).ID, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewTaskResponse(task, h.loc))
}

func (h *Handler) listTasks(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), mustUser(c).ID, q)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTasksResponse(tasks, h.loc))
}

func (h *Handler) showTask(c *gin.Context) {
	id, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), mustUser(c).ID, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task, h.loc))
}

func (h *Handler) updateTask(c *gin.Context) {
	id, ok := pathID(c, "task_id")
	if !ok {
		return
	}
	var body dto.UpdateTaskDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, detailInvalidBody, err)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), mustUser(c).ID, id, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskResponse(task, h.loc))
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := pathID(c, "task_id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), mustUser(c).ID, id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: "Task deleted successfully"})
}

/* ─────────────────────────────── helpers ─────────────────────────────── */

// mustUser is only used behind RequireToken.
func mustUser(c *gin.Context) model.User {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		panic("http: handler mounted without RequireToken")
	}
	return u
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		handleError(c, customErrors.NewValidation("Invalid input", map[string]string{
			name: "must be a positive integer",
		}))
		return 0, false
	}
	return uint(id), true
}

func bindList(c *gin.Context) (dto.ListQuery, bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return dto.ListQuery{}, false
	}
	return q, true
}
