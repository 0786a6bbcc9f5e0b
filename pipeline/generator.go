package pipeline

import (
	"context"
	"log"

	"github.com/careerai/backend/models"
)

// RoadmapModel is the AI backend that turns a skill set into a learning plan
type RoadmapModel interface {
	GenerateRoadmap(ctx context.Context, skills []models.Skill, targetRole, currentLevel string) (*models.RoadmapPlan, error)
}

// RoadmapStore persists roadmap headers and their steps
type RoadmapStore interface {
	CreateRoadmap(ctx context.Context, roadmap *models.Roadmap) (string, error)
	InsertRoadmapSteps(ctx context.Context, roadmapID string, steps []models.RoadmapStep) error
}

// Generator implements the roadmap-generation service: one structured model
// call, schema validation, then header-first persistence. Each call creates
// an independent roadmap which becomes the new latest.
type Generator struct {
	model RoadmapModel
	store RoadmapStore
}

// NewGenerator creates a new roadmap generator
func NewGenerator(model RoadmapModel, store RoadmapStore) *Generator {
	return &Generator{
		model: model,
		store: store,
	}
}

// Generate produces and persists a roadmap for the user's skill set.
// Zero skills never reaches the model.
func (g *Generator) Generate(ctx context.Context, userID string, skills []models.Skill, targetRole, currentLevel string) (*models.Roadmap, error) {
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	plan, err := g.model.GenerateRoadmap(ctx, skills, targetRole, currentLevel)
	if err != nil {
		return nil, &UpstreamServiceError{
			Service: "ai-gateway",
			Message: "AI roadmap generation failed",
			Err:     err,
		}
	}

	if err := ValidateRoadmapPlan(plan); err != nil {
		return nil, err
	}

	roadmap := &models.Roadmap{
		UserID:        userID,
		Title:         plan.Title,
		Description:   plan.Description,
		TargetRole:    targetRole,
		DurationWeeks: plan.DurationWeeks,
	}

	roadmapID, err := g.store.CreateRoadmap(ctx, roadmap)
	if err != nil {
		return nil, &UpstreamServiceError{
			Service: "database",
			Message: "Failed to save roadmap",
			Err:     err,
		}
	}

	// If step persistence fails here the header is left orphaned; it is
	// superseded by the next successful generation rather than rolled back.
	if err := g.store.InsertRoadmapSteps(ctx, roadmapID, plan.Steps); err != nil {
		return nil, &UpstreamServiceError{
			Service: "database",
			Message: "Failed to save roadmap steps",
			Err:     err,
		}
	}

	roadmap.Steps = plan.Steps
	roadmap.SortSteps()

	log.Printf("[Generator] Created roadmap %s with %d steps for user %s", roadmapID, len(plan.Steps), userID)

	return roadmap, nil
}
