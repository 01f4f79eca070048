package http

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/errors"
	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/features/announcement/models"
	"engagement-admin-backend/internal/features/announcement/service"
	userModels "engagement-admin-backend/internal/features/user/models"
	"engagement-admin-backend/internal/platform/uploads"
)

// ImageSaver stores an uploaded image and returns its public path.
type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type AnnouncementHandler struct {
	service        service.AnnouncementService
	images         ImageSaver
	maxUploadBytes int64
}

func NewAnnouncementHandler(service service.AnnouncementService, images ImageSaver, maxUploadBytes int64) *AnnouncementHandler {
	return &AnnouncementHandler{
		service:        service,
		images:         images,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the announcement admin routes. router must already
// carry the session middleware.
func (h *AnnouncementHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("")
	admin.Use(middleware.RequireRole(userModels.RoleAdmin))
	{
		admin.POST("/create-annoucement", h.CreateAnnouncement)
		admin.GET("/fetch-annoucements", h.ListAnnouncements)
		admin.PUT("/update-annoucement", h.UpdateAnnouncement)
		admin.DELETE("/remove-annoucement/:id", h.DeleteAnnouncement)
		admin.POST("/toggle-annoucement", h.ToggleAnnouncement)
	}
}

// @Summary List announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} models.AnnouncementsResponse
// @Router /fetch-annoucements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.AnnouncementsResponse{
		Status:        "success",
		Announcements: list,
	})
}

// @Summary Create an announcement
// @Description Multipart form with the announcement fields and a required image file
// @Tags announcements
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param subtitle formData string true "Subtitle"
// @Param description formData string true "Description"
// @Param reward formData int false "Reward"
// @Param imageName formData string false "Image display name"
// @Param status formData bool false "Active"
// @Param image formData file true "Image"
// @Success 201 {object} models.AnnouncementResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Another announcement is already active"
// @Router /create-annoucement [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var in models.CreateAnnouncementInput
	if err := c.ShouldBind(&in); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(errors.NewValidationError("image", "file is required"))
		return
	}

	path, err := h.images.Save(file)
	if err != nil {
		if stderrors.Is(err, uploads.ErrUnsupportedType) {
			_ = c.Error(errors.NewValidationError("image", "must be a png, jpeg, gif or webp image"))
			return
		}
		_ = c.Error(errors.NewInternalError("save image", err))
		return
	}
	in.Image = path

	a, err := h.service.Create(c.Request.Context(), &in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":       "success",
		"message":      "Announcement created successfully!",
		"announcement": a,
	})
}

// @Summary Update an announcement
// @Description Applies updateData to the announcement. Activating obeys the single-active rule.
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body models.UpdateAnnouncementRequest true "Patch"
// @Success 200 {object} models.AnnouncementResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /update-annoucement [put]
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	var req models.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	a, err := h.service.Update(c.Request.Context(), req.ID, &req.UpdateData)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.AnnouncementResponse{
		Status:  "success",
		Message: "Announcement updated successfully!",
		Data:    a,
	})
}

// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} models.AnnouncementResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /remove-annoucement/{id} [delete]
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	a, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.AnnouncementResponse{
		Status:  "success",
		Message: "Annoucement deleted successfully!",
		Data:    a,
	})
}

// @Summary Toggle announcement status
// @Description Turns the announcement on or off. Turning on fails while another one is active.
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body models.ToggleAnnouncementRequest true "Announcement"
// @Success 200 {object} models.AnnouncementResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Another announcement is already active"
// @Router /toggle-annoucement [post]
func (h *AnnouncementHandler) ToggleAnnouncement(c *gin.Context) {
	var req models.ToggleAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	a, err := h.service.ToggleStatus(c.Request.Context(), req.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.AnnouncementResponse{
		Status:  "success",
		Message: "Announcement status updated successfully!",
		Data:    a,
	})
}
