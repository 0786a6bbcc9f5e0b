package pipeline

import (
	"context"
	"log"

	"github.com/careerai/backend/models"
)

// SkillSource reads a user's stored skills
type SkillSource interface {
	SkillsByUser(ctx context.Context, userID string) ([]models.Skill, error)
}

// RoadmapFetcher reads the user's latest roadmap, nil when none exists
type RoadmapFetcher interface {
	LatestRoadmap(ctx context.Context, userID string) (*models.Roadmap, error)
}

// PlanGenerator produces and persists a new roadmap
type PlanGenerator interface {
	Generate(ctx context.Context, userID string, skills []models.Skill, targetRole, currentLevel string) (*models.Roadmap, error)
}

// RoadmapView drives the fetch-or-generate policy for the roadmap view
type RoadmapView struct {
	skills    SkillSource
	fetcher   RoadmapFetcher
	generator PlanGenerator

	defaultTargetRole   string
	defaultCurrentLevel string
}

// NewRoadmapView creates a roadmap view orchestrator
func NewRoadmapView(skills SkillSource, fetcher RoadmapFetcher, generator PlanGenerator, defaultTargetRole, defaultCurrentLevel string) *RoadmapView {
	return &RoadmapView{
		skills:              skills,
		fetcher:             fetcher,
		generator:           generator,
		defaultTargetRole:   defaultTargetRole,
		defaultCurrentLevel: defaultCurrentLevel,
	}
}

// Load returns the user's latest roadmap, generating one automatically when
// none exists. A generation failure surfaces as an error; it never loops
// back into another fetch-generate round.
func (v *RoadmapView) Load(ctx context.Context, userID string) (*models.Roadmap, error) {
	roadmap, err := v.fetcher.LatestRoadmap(ctx, userID)
	if err != nil {
		return nil, &UpstreamServiceError{
			Service: "database",
			Message: "Failed to fetch roadmap",
			Err:     err,
		}
	}

	if roadmap != nil {
		roadmap.SortSteps()
		return roadmap, nil
	}

	log.Printf("[RoadmapView] No roadmap for user %s, generating", userID)
	return v.Generate(ctx, userID, "", "")
}

// Generate triggers a new, independent roadmap generation. It requires at
// least one stored skill; with zero skills no service call is made and
// ErrNoSkills carries the redirect toward the upload flow.
func (v *RoadmapView) Generate(ctx context.Context, userID, targetRole, currentLevel string) (*models.Roadmap, error) {
	skills, err := v.skills.SkillsByUser(ctx, userID)
	if err != nil {
		return nil, &UpstreamServiceError{
			Service: "database",
			Message: "Failed to fetch skills",
			Err:     err,
		}
	}

	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	if targetRole == "" {
		targetRole = v.defaultTargetRole
	}
	if currentLevel == "" {
		currentLevel = v.defaultCurrentLevel
	}

	return v.generator.Generate(ctx, userID, skills, targetRole, currentLevel)
}
