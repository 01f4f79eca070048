package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/export"
	"engagement-admin-backend/internal/features/user/mapper"
	"engagement-admin-backend/internal/features/user/models"
	"engagement-admin-backend/internal/features/user/service"
)

const usersExportFile = "users_data.xlsx"

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes mounts the user routes. router must already carry the
// session middleware.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	// владелец аккаунта тоже может менять свое имя
	router.PUT("/update-user", middleware.RequireRole(models.RoleAdmin, models.RoleUser), h.UpdateUser)

	admin := router.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/fetch-users", h.ListUsers)
		admin.DELETE("/remove-user", h.RemoveUser)
		admin.GET("/downloadUsersData", h.ExportUsers)
	}
}

// @Summary List users
// @Description Lists every non-admin console user
// @Tags users
// @Produce json
// @Success 200 {object} models.UsersResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /fetch-users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.UsersResponse{
		Status:  "success",
		Message: "Users Fetched Succesfuly!",
		Users:   mapper.ToUserResponses(users),
	})
}

// @Summary Update a user
// @Description Updates first and last name. Only admins may change verified or edit other users.
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateUserRequest true "Update data"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /update-user [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	actor := service.Actor{ID: middleware.GetUserID(c), Role: middleware.GetUserRole(c)}
	user, err := h.service.Update(c.Request.Context(), actor, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Info Updated Succesfuly!",
		"user":    mapper.ToUserResponse(user),
	})
}

// @Summary Remove a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.RemoveUserRequest true "User to remove"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /remove-user [delete]
func (h *UserHandler) RemoveUser(c *gin.Context) {
	var req models.RemoveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.UserID); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{
		Status:  "success",
		Message: "User Removed Succesfuly!",
	})
}

// @Summary Export users
// @Description Downloads all console users as an xlsx workbook
// @Tags users
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /downloadUsersData [get]
func (h *UserHandler) ExportUsers(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	export.Attachment(c, usersExportFile, data)
}
