package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opsconsole/admin-api/internal/api/metrics"
	"github.com/opsconsole/admin-api/internal/core/domain"
	"github.com/opsconsole/admin-api/internal/core/ports"
)

// UserHandler exposes the user directory CRUD operations.
type UserHandler struct {
	directory ports.DirectoryService
}

func NewUserHandler(directory ports.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// Passwords have no shape rule beyond non-empty; anything stricter would
// reject a request before the service's authorization checks run.
type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=user admin"`
}

type updateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// List returns all users, password hashes excluded.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	caller, _, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.directory.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create adds a user to the directory.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	caller, _, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.directory.Create(c.Request().Context(), caller, ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		metrics.DirectoryOpsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.DirectoryOpsTotal.WithLabelValues("create", "success").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update changes a user's username and/or role.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	caller, _, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdateUserInput{Username: req.Username}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.directory.Update(c.Request().Context(), caller, c.Param("id"), in)
	if err != nil {
		metrics.DirectoryOpsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.DirectoryOpsTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword rotates a user's password. Admins may target anyone; a
// regular user only their own account.
//
// @Summary      Change a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User id"
// @Param        body  body      changePasswordRequest  true  "New password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/change-password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	caller, session, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	revoked, err := h.directory.ChangePassword(c.Request().Context(), caller, session.ID, c.Param("id"), req.Password)
	if err != nil {
		metrics.DirectoryOpsTotal.WithLabelValues("change_password", "error").Inc()
		return err
	}

	metrics.DirectoryOpsTotal.WithLabelValues("change_password", "success").Inc()
	metrics.SessionsRevokedTotal.WithLabelValues("password_change").Add(float64(revoked))
	return c.JSON(http.StatusOK, map[string]string{"message": "password changed"})
}

// Delete removes a user and revokes all their sessions.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, _, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	revoked, err := h.directory.Delete(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		metrics.DirectoryOpsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.DirectoryOpsTotal.WithLabelValues("delete", "success").Inc()
	metrics.SessionsRevokedTotal.WithLabelValues("user_deleted").Add(float64(revoked))
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
