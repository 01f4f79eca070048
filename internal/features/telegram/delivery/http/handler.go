package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/export"
	"engagement-admin-backend/internal/features/telegram/models"
	"engagement-admin-backend/internal/features/telegram/service"
	userModels "engagement-admin-backend/internal/features/user/models"
)

const telegramExportFile = "users_data.xlsx"

type TelegramUserHandler struct {
	service service.TelegramUserService
}

func NewTelegramUserHandler(service service.TelegramUserService) *TelegramUserHandler {
	return &TelegramUserHandler{
		service: service,
	}
}

// RegisterRoutes mounts the console routes. router must already carry the
// session middleware.
func (h *TelegramUserHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("")
	admin.Use(middleware.RequireRole(userModels.RoleAdmin))
	{
		admin.GET("/fetch-telegram-users", h.ListTelegramUsers)
		admin.GET("/downloadTeleUsersData", h.ExportTelegramUsers)
	}
}

// RegisterMiniAppRoutes mounts the routes called from the Telegram mini app.
// initData is the init data validation middleware.
func (h *TelegramUserHandler) RegisterMiniAppRoutes(router *gin.RouterGroup, initData gin.HandlerFunc) {
	router.GET("/telegram-user/me", initData, h.GetMe)
}

// @Summary List Telegram users
// @Tags telegram
// @Produce json
// @Success 200 {object} models.TelegramUsersResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /fetch-telegram-users [get]
func (h *TelegramUserHandler) ListTelegramUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TelegramUsersResponse{
		Status:        "success",
		TelegramUsers: users,
	})
}

// @Summary Export Telegram users
// @Description Downloads all bot users as an xlsx workbook
// @Tags telegram
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /downloadTeleUsersData [get]
func (h *TelegramUserHandler) ExportTelegramUsers(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	export.Attachment(c, telegramExportFile, data)
}

// @Summary Current Telegram user
// @Description Returns the bot record of the user behind the mini-app init data
// @Tags telegram
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.TelegramUserResponse
// @Failure 401 {object} middleware.ErrorResponse "Missing or invalid init data"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /telegram-user/me [get]
func (h *TelegramUserHandler) GetMe(c *gin.Context) {
	tgUser, ok := middleware.GetTelegramUser(c)
	if !ok {
		_ = c.Error(errors.NewUnauthorizedError("telegram init data required"))
		return
	}

	user, err := h.service.GetByTelegramID(c.Request.Context(), tgUser.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"user":   user,
	})
}
