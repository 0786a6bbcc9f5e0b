package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/careerai/backend/models"
)

// ValidateSkills checks an extraction payload against the skills schema.
// Values outside the fixed enums are rejected, never coerced. A zero-skill
// payload is valid.
func ValidateSkills(skills []models.Skill) error {
	for i, s := range skills {
		if strings.TrimSpace(s.SkillName) == "" {
			return &ContractViolationError{
				Message: fmt.Sprintf("skill %d has an empty name", i+1),
			}
		}
		if !models.ValidSkillCategory(s.Category) {
			return &ContractViolationError{
				Message: fmt.Sprintf("skill %q has unknown category %q", s.SkillName, s.Category),
			}
		}
		if !models.ValidProficiency(s.Proficiency) {
			return &ContractViolationError{
				Message: fmt.Sprintf("skill %q has unknown proficiency %q", s.SkillName, s.Proficiency),
			}
		}
	}
	return nil
}

// ValidateRoadmapPlan checks a generation payload against the roadmap
// schema: non-empty header fields, a dense ascending 1-based step sequence
// with no gaps or duplicates, positive estimates, and well-formed resources.
func ValidateRoadmapPlan(plan *models.RoadmapPlan) error {
	if plan == nil {
		return &ContractViolationError{Message: "roadmap payload is empty"}
	}
	if strings.TrimSpace(plan.Title) == "" {
		return &ContractViolationError{Message: "roadmap title is empty"}
	}
	if strings.TrimSpace(plan.Description) == "" {
		return &ContractViolationError{Message: "roadmap description is empty"}
	}
	if plan.DurationWeeks <= 0 {
		return &ContractViolationError{
			Message: fmt.Sprintf("roadmap duration_weeks %d is not positive", plan.DurationWeeks),
		}
	}
	if len(plan.Steps) == 0 {
		return &ContractViolationError{Message: "roadmap has no steps"}
	}

	seen := make(map[int]bool, len(plan.Steps))
	for i, step := range plan.Steps {
		if step.StepNumber <= 0 {
			return &ContractViolationError{
				Message: fmt.Sprintf("step %d has non-positive step_number %d", i+1, step.StepNumber),
			}
		}
		if step.StepNumber > len(plan.Steps) {
			return &ContractViolationError{
				Message: fmt.Sprintf("step_number %d exceeds step count %d", step.StepNumber, len(plan.Steps)),
			}
		}
		if seen[step.StepNumber] {
			return &ContractViolationError{
				Message: fmt.Sprintf("duplicate step_number %d", step.StepNumber),
			}
		}
		seen[step.StepNumber] = true

		if strings.TrimSpace(step.Title) == "" {
			return &ContractViolationError{
				Message: fmt.Sprintf("step %d has an empty title", step.StepNumber),
			}
		}
		if strings.TrimSpace(step.Description) == "" {
			return &ContractViolationError{
				Message: fmt.Sprintf("step %d has an empty description", step.StepNumber),
			}
		}
		if step.EstimatedHours <= 0 {
			return &ContractViolationError{
				Message: fmt.Sprintf("step %d has non-positive estimated_hours %d", step.StepNumber, step.EstimatedHours),
			}
		}

		for _, res := range step.Resources {
			if err := validateResource(step.StepNumber, res); err != nil {
				return err
			}
		}
	}

	// seen holds len(plan.Steps) distinct values in [1, len]; together with
	// the bounds check above that makes the sequence dense.
	return nil
}

func validateResource(stepNumber int, res models.Resource) error {
	if strings.TrimSpace(res.Title) == "" {
		return &ContractViolationError{
			Message: fmt.Sprintf("step %d has a resource with an empty title", stepNumber),
		}
	}
	if !models.ValidResourceType(res.Type) {
		return &ContractViolationError{
			Message: fmt.Sprintf("step %d resource %q has unknown type %q", stepNumber, res.Title, res.Type),
		}
	}

	u, err := url.Parse(res.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ContractViolationError{
			Message: fmt.Sprintf("step %d resource %q has invalid URL %q", stepNumber, res.Title, res.URL),
		}
	}

	return nil
}
