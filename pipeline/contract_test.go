package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerai/backend/models"
)

func validPlan() *models.RoadmapPlan {
	return &models.RoadmapPlan{
		Title:         "Path to Senior Engineer",
		Description:   "A staged plan toward the target role",
		DurationWeeks: 12,
		Steps: []models.RoadmapStep{
			{
				StepNumber:     1,
				Title:          "Strengthen fundamentals",
				Description:    "Review core concepts",
				EstimatedHours: 20,
				Resources: []models.Resource{
					{Title: "Go Course", URL: "https://www.coursera.org/learn/golang", Type: models.ResourceCourse},
				},
			},
			{
				StepNumber:     2,
				Title:          "Build a project",
				Description:    "Apply the fundamentals",
				EstimatedHours: 30,
			},
		},
	}
}

func TestValidateSkillsAcceptsValidAndEmpty(t *testing.T) {
	assert.NoError(t, ValidateSkills(nil))
	assert.NoError(t, ValidateSkills([]models.Skill{}))
	assert.NoError(t, ValidateSkills(testSkills()))
}

func TestValidateSkillsRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name  string
		skill models.Skill
	}{
		{
			name:  "empty name",
			skill: models.Skill{SkillName: "  ", Category: models.CategoryTechnical, Proficiency: models.ProficiencyBeginner},
		},
		{
			name:  "unknown category",
			skill: models.Skill{SkillName: "Go", Category: "Programming", Proficiency: models.ProficiencyBeginner},
		},
		{
			name:  "unknown proficiency",
			skill: models.Skill{SkillName: "Go", Category: models.CategoryTechnical, Proficiency: "Master"},
		},
		{
			name:  "lowercase category is not coerced",
			skill: models.Skill{SkillName: "Go", Category: "technical", Proficiency: models.ProficiencyBeginner},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSkills([]models.Skill{tt.skill})
			var contractErr *ContractViolationError
			require.ErrorAs(t, err, &contractErr)
		})
	}
}

func TestValidateRoadmapPlanAcceptsValid(t *testing.T) {
	assert.NoError(t, ValidateRoadmapPlan(validPlan()))
}

func TestValidateRoadmapPlanRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RoadmapPlan)
	}{
		{"empty title", func(p *models.RoadmapPlan) { p.Title = "" }},
		{"empty description", func(p *models.RoadmapPlan) { p.Description = " " }},
		{"zero duration", func(p *models.RoadmapPlan) { p.DurationWeeks = 0 }},
		{"no steps", func(p *models.RoadmapPlan) { p.Steps = nil }},
		{"duplicate step numbers", func(p *models.RoadmapPlan) { p.Steps[1].StepNumber = 1 }},
		{"gap in step sequence", func(p *models.RoadmapPlan) { p.Steps[1].StepNumber = 3 }},
		{"zero step number", func(p *models.RoadmapPlan) { p.Steps[0].StepNumber = 0 }},
		{"empty step title", func(p *models.RoadmapPlan) { p.Steps[0].Title = "" }},
		{"empty step description", func(p *models.RoadmapPlan) { p.Steps[1].Description = "" }},
		{"non-positive hours", func(p *models.RoadmapPlan) { p.Steps[0].EstimatedHours = 0 }},
		{"empty resource title", func(p *models.RoadmapPlan) { p.Steps[0].Resources[0].Title = "" }},
		{"unknown resource type", func(p *models.RoadmapPlan) { p.Steps[0].Resources[0].Type = "podcast" }},
		{"resource URL without scheme", func(p *models.RoadmapPlan) { p.Steps[0].Resources[0].URL = "coursera.org/learn" }},
		{"resource URL with bad scheme", func(p *models.RoadmapPlan) { p.Steps[0].Resources[0].URL = "ftp://example.com/x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(plan)

			err := ValidateRoadmapPlan(plan)
			var contractErr *ContractViolationError
			require.ErrorAs(t, err, &contractErr)
		})
	}
}

func TestValidateRoadmapPlanNil(t *testing.T) {
	err := ValidateRoadmapPlan(nil)
	var contractErr *ContractViolationError
	require.ErrorAs(t, err, &contractErr)
}

func TestValidateRoadmapPlanStepsOutOfOrder(t *testing.T) {
	// Order in the payload does not matter, density does
	plan := validPlan()
	plan.Steps[0].StepNumber = 2
	plan.Steps[1].StepNumber = 1

	assert.NoError(t, ValidateRoadmapPlan(plan))
}
