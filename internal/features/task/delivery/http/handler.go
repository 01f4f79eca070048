package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"engagement-admin-backend/internal/common/middleware"
	"engagement-admin-backend/internal/common/validation"
	"engagement-admin-backend/internal/features/task/models"
	"engagement-admin-backend/internal/features/task/service"
	userModels "engagement-admin-backend/internal/features/user/models"
)

// routes holds the console paths of one task collection.
type routes struct {
	create  string
	fetch   string
	update  string
	deletes []string
}

var routesByKind = map[models.Kind]routes{
	models.KindSocial: {
		create:  "/create-social-task",
		fetch:   "/fetch-social-task",
		update:  "/update-social-task/:id",
		deletes: []string{"/delete-task/:id", "/delete-social-task/:id"},
	},
	models.KindDaily: {
		create:  "/create-daily-task",
		fetch:   "/fetch-daily-task",
		update:  "/update-daily-task/:id",
		deletes: []string{"/delete-daily/:id", "/delete-daily-task/:id"},
	},
}

type TaskHandler struct {
	service service.TaskService
}

func NewTaskHandler(service service.TaskService) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

// RegisterRoutes mounts the collection's admin routes. router must already
// carry the session middleware.
func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	r := routesByKind[h.service.Kind()]

	admin := router.Group("")
	admin.Use(middleware.RequireRole(userModels.RoleAdmin))
	{
		admin.POST(r.create, h.CreateTask)
		admin.GET(r.fetch, h.ListTasks)
		admin.POST(r.update, h.UpdateTask)
		admin.PUT(r.update, h.UpdateTask)
		for _, path := range r.deletes {
			admin.DELETE(path, h.DeleteTask)
		}
	}
}

// @Summary List tasks
// @Description Lists a task collection ordered by priority
// @Tags tasks
// @Produce json
// @Success 200 {object} models.TasksResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /fetch-social-task [get]
// @Router /fetch-daily-task [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TasksResponse{
		Status: "success",
		Tasks:  tasks,
	})
}

// @Summary Create a task
// @Description Priority must be unique within the collection
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body models.TaskInput true "Task"
// @Success 201 {object} models.TaskResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Priority already taken"
// @Router /create-social-task [post]
// @Router /create-daily-task [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var in models.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	task, err := h.service.Create(c.Request.Context(), &in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, models.TaskResponse{
		Status:  "success",
		Message: "Task created successfully!",
		Task:    task,
	})
}

// @Summary Update a task
// @Description The priority check ignores the task being updated
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body models.TaskInput true "Task"
// @Success 200 {object} models.TaskResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Priority already taken"
// @Router /update-social-task/{id} [put]
// @Router /update-daily-task/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var in models.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(validation.FromBinding(err))
		return
	}

	task, err := h.service.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TaskResponse{
		Status:  "success",
		Message: "Task updated successfully!",
		Task:    task,
	})
}

// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.TaskResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /delete-task/{id} [delete]
// @Router /delete-daily/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.TaskResponse{
		Status:  "success",
		Message: "Task deleted successfully!",
		Task:    task,
	})
}
