package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerai/backend/models"
	"github.com/careerai/backend/pipeline"
)

// respondPipelineError maps pipeline errors onto HTTP responses. Upstream
// details are logged by the pipeline; only the sanitized message reaches
// the client.
func respondPipelineError(c *gin.Context, err error) {
	var validationErr *pipeline.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: validationErr.Message,
			Code:  http.StatusBadRequest,
		})
		return
	}

	var authErr *pipeline.AuthenticationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: authErr.Message,
			Code:  http.StatusUnauthorized,
		})
		return
	}

	var noSkillsErr *pipeline.NoSkillsError
	if errors.As(err, &noSkillsErr) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:    noSkillsErr.Title,
			Code:     http.StatusConflict,
			Details:  noSkillsErr.Message,
			Redirect: noSkillsErr.Redirect,
		})
		return
	}

	var contractErr *pipeline.ContractViolationError
	if errors.As(err, &contractErr) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "AI response did not match the expected schema",
			Code:    http.StatusBadGateway,
			Details: contractErr.Message,
		})
		return
	}

	var upstreamErr *pipeline.UpstreamServiceError
	if errors.As(err, &upstreamErr) {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: upstreamErr.Message,
			Code:  http.StatusBadGateway,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "Internal server error",
		Code:  http.StatusInternalServerError,
	})
}
