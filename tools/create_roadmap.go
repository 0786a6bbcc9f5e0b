package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careerai/backend/gemini"
	"github.com/careerai/backend/models"
	"github.com/careerai/backend/pipeline"
)

// CreateRoadmapTool generates a learning roadmap from a skill list using
// Gemini. Like the extraction tool it persists nothing.
type CreateRoadmapTool struct {
	geminiClient *gemini.Client
}

// NewCreateRoadmapTool creates a new roadmap generation tool
func NewCreateRoadmapTool(geminiClient *gemini.Client) *CreateRoadmapTool {
	return &CreateRoadmapTool{
		geminiClient: geminiClient,
	}
}

func (t *CreateRoadmapTool) Name() string {
	return "create_roadmap"
}

func (t *CreateRoadmapTool) Description() string {
	return `Create a personalized learning roadmap from a list of skills using AI.
Input is the user's current skills, a target role, and a current level.
Returns a roadmap with a title, description, duration in weeks, and ordered steps with learning resources.`
}

func (t *CreateRoadmapTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"skills": map[string]interface{}{
				"type":        "array",
				"description": "Current skills, each with skill_name, category and proficiency_level",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"skill_name":        map[string]interface{}{"type": "string"},
						"category":          map[string]interface{}{"type": "string"},
						"proficiency_level": map[string]interface{}{"type": "string"},
					},
					"required": []string{"skill_name"},
				},
			},
			"target_role": map[string]interface{}{
				"type":        "string",
				"description": "Role the user wants to reach",
			},
			"current_level": map[string]interface{}{
				"type":        "string",
				"description": "Current experience level (e.g. Entry, Intermediate, Senior)",
			},
		},
		"required": []string{"skills", "target_role"},
	}
}

// CreateRoadmapInput represents the input for roadmap generation
type CreateRoadmapInput struct {
	Skills       []models.Skill `json:"skills"`
	TargetRole   string         `json:"target_role"`
	CurrentLevel string         `json:"current_level"`
}

// CreateRoadmapOutput represents the generation result
type CreateRoadmapOutput struct {
	Plan *models.RoadmapPlan `json:"plan"`
}

func (t *CreateRoadmapTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var roadmapInput CreateRoadmapInput
	if err := json.Unmarshal(input, &roadmapInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if len(roadmapInput.Skills) == 0 {
		return NewErrorResult("at least one skill is required")
	}
	if roadmapInput.TargetRole == "" {
		return NewErrorResult("target_role is required")
	}

	plan, err := t.geminiClient.GenerateRoadmap(ctx, roadmapInput.Skills, roadmapInput.TargetRole, roadmapInput.CurrentLevel)
	if err != nil {
		return NewErrorResult(fmt.Sprintf("generation failed: %v", err))
	}

	if err := pipeline.ValidateRoadmapPlan(plan); err != nil {
		return NewErrorResult(fmt.Sprintf("model returned malformed roadmap: %v", err))
	}

	return NewSuccessResult(CreateRoadmapOutput{Plan: plan})
}
