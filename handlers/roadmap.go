package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerai/backend/auth"
	"github.com/careerai/backend/models"
	"github.com/careerai/backend/pipeline"
)

// RoadmapHandler handles roadmap fetch and generation requests
type RoadmapHandler struct {
	view *pipeline.RoadmapView
}

// NewRoadmapHandler creates a new roadmap handler
func NewRoadmapHandler(view *pipeline.RoadmapView) *RoadmapHandler {
	return &RoadmapHandler{view: view}
}

// Get returns the user's latest roadmap, generating one when none exists
// @Summary Get the latest roadmap
// @Description Fetch the most recently generated roadmap with its steps in order; when none exists one is generated from the user's stored skills
// @Tags Roadmaps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.RoadmapResponse "Roadmap"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 409 {object} models.ErrorResponse "No skills on record"
// @Failure 502 {object} models.ErrorResponse "Upstream service failed"
// @Router /roadmap [get]
func (h *RoadmapHandler) Get(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	roadmap, err := h.view.Load(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("[RoadmapHandler] Load failed for user %s: %v", claims.UserID, err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RoadmapResponse{Roadmap: roadmap})
}

// Generate creates a new roadmap from the user's stored skills
// @Summary Generate a roadmap
// @Description Generate a fresh personalized learning roadmap from the user's extracted skills; requires at least one stored skill
// @Tags Roadmaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.GenerateRoadmapRequest false "Generation options"
// @Success 200 {object} models.GenerateRoadmapResponse "Generated roadmap"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 409 {object} models.ErrorResponse "No skills on record"
// @Failure 502 {object} models.ErrorResponse "AI roadmap generation failed"
// @Router /generate-roadmap [post]
func (h *RoadmapHandler) Generate(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	var req models.GenerateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	roadmap, err := h.view.Generate(c.Request.Context(), claims.UserID, req.TargetRole, req.CurrentLevel)
	if err != nil {
		log.Printf("[RoadmapHandler] Generation failed for user %s: %v", claims.UserID, err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GenerateRoadmapResponse{
		Success: true,
		Roadmap: roadmap,
	})
}
