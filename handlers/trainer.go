// File: reservodojo/handlers/trainer.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"reservodojo/middleware"
	"reservodojo/models"
	"reservodojo/services/scenario"
	"reservodojo/services/trainer"
	"reservodojo/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrainerHandler serves config editing, scenario generation and task review.
type TrainerHandler struct {
	Service trainer.TrainerService
}

func NewTrainerHandler(svc trainer.TrainerService) *TrainerHandler {
	return &TrainerHandler{Service: svc}
}

func identity(c *gin.Context) (utils.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
	}
	return id, ok
}

// bindRawConfig reads a trainer config document from the body. Absent keys
// stay absent so normalization can default them.
func bindRawConfig(c *gin.Context) (scenario.RawConfig, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return scenario.RawConfig{}, false
	}
	raw, err := scenario.DecodeRawConfig(body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return scenario.RawConfig{}, false
	}
	return raw, true
}

// GetConfigHandler returns the accommodation's config with its validation errors.
func (h *TrainerHandler) GetConfigHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	view, err := h.Service.GetConfig(c.Request.Context(), id.AccommodationID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SaveConfigHandler normalizes, validates and stores a config.
func (h *TrainerHandler) SaveConfigHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	raw, ok := bindRawConfig(c)
	if !ok {
		return
	}
	view, err := h.Service.SaveConfig(c.Request.Context(), id.AccommodationID, raw)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	getLogger(c).Info("Config updated")
	c.JSON(http.StatusOK, view)
}

// ValidateConfigHandler reports problems without storing anything.
func (h *TrainerHandler) ValidateConfigHandler(c *gin.Context) {
	raw, ok := bindRawConfig(c)
	if !ok {
		return
	}
	cfg, problems := h.Service.ValidateConfig(raw)
	c.JSON(http.StatusOK, gin.H{"config": cfg, "errors": problems})
}

type newScenarioRequest struct {
	Difficulty string `json:"difficulty"`
	Seed       *int64 `json:"seed"`
}

// NewScenarioHandler generates a scenario and keeps it as a draft.
func (h *TrainerHandler) NewScenarioHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req newScenarioRequest
	// An empty body means a hard scenario with a fresh seed.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	draft, err := h.Service.NewScenario(c.Request.Context(), id.AccommodationID, id.UserID, req.Difficulty, req.Seed)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draftResponse(draft))
}

// GetScenarioHandler returns a pending draft.
func (h *TrainerHandler) GetScenarioHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	draft, err := h.Service.GetDraft(c.Request.Context(), id.AccommodationID, id.UserID, c.Param("generatedId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// DiscardScenarioHandler drops a pending draft.
func (h *TrainerHandler) DiscardScenarioHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Service.DiscardDraft(c.Request.Context(), id.AccommodationID, id.UserID, c.Param("generatedId")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type finishRequest struct {
	BookingNumber string `json:"bookingNumber"`
}

// FinishScenarioHandler stores the task with the PMS booking number.
func (h *TrainerHandler) FinishScenarioHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req finishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	res, err := h.Service.FinishScenario(c.Request.Context(), id.AccommodationID, id.UserID, c.Param("generatedId"), req.BookingNumber)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	getLogger(c).Info("Task finished", zap.String("taskId", res.Task.ID))
	c.JSON(http.StatusCreated, res)
}

// ListTasksHandler lists the newest tasks, optionally hiding approved ones.
func (h *TrainerHandler) ListTasksHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var filter models.TaskFilter
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input", "limit must be a number")
			return
		}
		filter.Limit = limit
	}
	if v := c.Query("hideOkay"); v != "" {
		hide, err := strconv.ParseBool(v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input", "hideOkay must be true or false")
			return
		}
		filter.HideOkay = hide
	}
	tasks, err := h.Service.ListTasks(c.Request.Context(), id.AccommodationID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TrainerHandler) GetTaskHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	task, err := h.Service.GetTask(c.Request.Context(), id.AccommodationID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type reviewRequest struct {
	ReviewStatus string `json:"reviewStatus" binding:"required"`
}

// ReviewTaskHandler sets a task's review status.
func (h *TrainerHandler) ReviewTaskHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	task, err := h.Service.SetReviewStatus(c.Request.Context(), id.AccommodationID, c.Param("id"), req.ReviewStatus)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DownloadTaskHandler sends the rendered task as a text attachment.
func (h *TrainerHandler) DownloadTaskHandler(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	rendered, err := h.Service.RenderTask(c.Request.Context(), id.AccommodationID, c.Param("id"), c.DefaultQuery("format", trainer.FormatCompact))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", rendered.FileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rendered.Content))
}

func draftResponse(d *models.ScenarioDraft) gin.H {
	return gin.H{
		"generatedId": d.GeneratedID,
		"difficulty":  d.Difficulty,
		"seed":        d.Seed,
		"scenario":    d.Scenario,
		"createdAt":   d.CreatedAt,
	}
}
