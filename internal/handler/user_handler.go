package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/userdirectory/user-service/shared/cqrs"
	"github.com/userdirectory/user-service/shared/middleware"
	"github.com/userdirectory/user-service/shared/models"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	CreateUser(context.Context, cqrs.CreateUserCommand) (*models.User, error)
	UpdateUser(context.Context, cqrs.UpdateUserCommand) (*models.User, error)
	DeleteUser(context.Context, cqrs.DeleteUserCommand) (*models.User, error)
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	ListUsers(context.Context, cqrs.ListUsersQuery) ([]models.User, error)
	SearchUsers(context.Context, cqrs.SearchUsersQuery) ([]models.User, error)
	GetUser(context.Context, cqrs.GetUserQuery) (*models.User, error)
	CountUsers(context.Context, cqrs.CountUsersQuery) (int64, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

const userNotFoundMessage = "User not found"

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// RegisterRoutes mounts the user API under /api.
func (h *UserHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/users", h.ListUsers)
		api.GET("/user", h.SearchUsers)
		api.POST("/users", h.CreateUser)
		api.GET("/users/count", h.CountUsers)
		api.GET("/users/activeCount", h.CountActiveUsers)
		api.GET("/users/:userId", h.GetUser)
		api.PUT("/users/:userId", h.UpdateUser)
		api.DELETE("/users/:userId", h.DeleteUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.queries.ListUsers(c.Request.Context(), cqrs.ListUsersQuery{})
	if err != nil {
		middleware.RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.queries.SearchUsers(c.Request.Context(), cqrs.SearchUsersQuery{Term: c.Query("search")})
	if err != nil {
		middleware.RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.commands.CreateUser(c.Request.Context(), cqrs.CreateUserCommand{Fields: fields})
	if err != nil {
		middleware.RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CountUsers(c *gin.Context) {
	total, err := h.queries.CountUsers(c.Request.Context(), cqrs.CountUsersQuery{})
	if err != nil {
		middleware.RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *UserHandler) CountActiveUsers(c *gin.Context) {
	activeCount, err := h.queries.CountUsers(c.Request.Context(), cqrs.CountUsersQuery{ActiveOnly: true})
	if err != nil {
		middleware.RespondWithInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeCount": activeCount})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	if !middleware.ValidateUserID(userID) {
		middleware.RespondWithError(c, http.StatusNotFound, userNotFoundMessage)
		return
	}

	user, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{UserID: userID})
	if err != nil {
		h.respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")
	if !middleware.ValidateUserID(userID) {
		middleware.RespondWithError(c, http.StatusNotFound, userNotFoundMessage)
		return
	}

	fields, err := bindFields(c)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.commands.UpdateUser(c.Request.Context(), cqrs.UpdateUserCommand{
		UserID: userID,
		Fields: fields,
	})
	if err != nil {
		h.respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")
	if !middleware.ValidateUserID(userID) {
		middleware.RespondWithError(c, http.StatusNotFound, userNotFoundMessage)
		return
	}

	user, err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{UserID: userID})
	if err != nil {
		h.respondWithUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) respondWithUserError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrUserNotFound) {
		middleware.RespondWithError(c, http.StatusNotFound, userNotFoundMessage)
		return
	}
	middleware.RespondWithInternalError(c, err)
}

// bindFields decodes a JSON object body. A missing body is an empty object.
func bindFields(c *gin.Context) (map[string]any, error) {
	fields := map[string]any{}
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return fields, nil
	}
	if err := c.ShouldBindJSON(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if fields == nil {
		// A literal null body.
		fields = map[string]any{}
	}
	return fields, nil
}
