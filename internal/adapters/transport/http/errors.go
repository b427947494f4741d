package http

import (
	"net/http"

	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/adapters/transport/http/middleware"
	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/gin-gonic/gin"
)

const (
	detailInvalidCredentials = "Incorrect username or password"
	detailInternal           = "internal server error"
)

// handleError writes the response for a failed use case.
func handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsUnauthorized(err), customErrors.IsInvalidToken(err):
		middleware.Unauthorized(c)
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: detailInvalidCredentials})
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, errorBody(err))
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, errorBody(err))
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorBody(err))
	case customErrors.IsConflict(err):
		c.JSON(http.StatusConflict, errorBody(err))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: detailInternal})
	}
}

func errorBody(err error) dto.ErrorResponse {
	msg, ok := customErrors.Message(err)
	if !ok {
		msg = err.Error()
	}
	return dto.ErrorResponse{Detail: msg, Fields: customErrors.Fields(err)}
}

func badRequest(c *gin.Context, detail string, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: detail})
}
