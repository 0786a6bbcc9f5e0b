package models

import (
	"sort"
	"time"
)

// Resource types accepted in roadmap steps
const (
	ResourceCourse        = "course"
	ResourceDocumentation = "documentation"
	ResourceTutorial      = "tutorial"
	ResourceBook          = "book"
	ResourceVideo         = "video"
	ResourceProject       = "project"
)

// ResourceTypes lists every accepted resource type
var ResourceTypes = []string{
	ResourceCourse,
	ResourceDocumentation,
	ResourceTutorial,
	ResourceBook,
	ResourceVideo,
	ResourceProject,
}

// Resource is one recommended learning material within a step
// @Description Learning resource link
type Resource struct {
	Title string `json:"title" firestore:"title" example:"Go: The Complete Developer's Guide"`
	URL   string `json:"url" firestore:"url" example:"https://www.udemy.com/course/go-the-complete-developers-guide/"`
	Type  string `json:"type" firestore:"type" example:"course"`
}

// RoadmapStep is one ordered stage of a roadmap
// @Description Single step of a learning roadmap
type RoadmapStep struct {
	ID             string     `json:"id,omitempty" firestore:"-"`
	RoadmapID      string     `json:"roadmap_id,omitempty" firestore:"roadmap_id"`
	StepNumber     int        `json:"step_number" firestore:"step_number" example:"1"`
	Title          string     `json:"title" firestore:"title" example:"Master Go fundamentals"`
	Description    string     `json:"description" firestore:"description"`
	EstimatedHours int        `json:"estimated_hours" firestore:"estimated_hours" example:"20"`
	Resources      []Resource `json:"resources" firestore:"resources"`
	Completed      bool       `json:"completed" firestore:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" firestore:"completed_at,omitempty"`
}

// Roadmap is one generated learning plan
// @Description Generated learning roadmap with ordered steps
type Roadmap struct {
	ID            string        `json:"id" firestore:"-"`
	UserID        string        `json:"user_id" firestore:"user_id"`
	Title         string        `json:"title" firestore:"title" example:"Path to Senior Software Engineer"`
	Description   string        `json:"description" firestore:"description"`
	TargetRole    string        `json:"target_role" firestore:"target_role" example:"Software Engineer"`
	DurationWeeks int           `json:"duration_weeks" firestore:"duration_weeks" example:"16"`
	Completed     bool          `json:"completed" firestore:"completed"`
	GeneratedAt   time.Time     `json:"generated_at" firestore:"generated_at"`
	Steps         []RoadmapStep `json:"steps" firestore:"-"`
}

// RoadmapPlan is the structured payload returned by the generation model,
// before it is persisted as a Roadmap plus its steps
type RoadmapPlan struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	DurationWeeks int           `json:"duration_weeks"`
	Steps         []RoadmapStep `json:"steps"`
}

// SortSteps orders the steps by step_number. Storage is not assumed to
// return them ordered.
func (r *Roadmap) SortSteps() {
	sort.Slice(r.Steps, func(i, j int) bool {
		return r.Steps[i].StepNumber < r.Steps[j].StepNumber
	})
}

// ValidResourceType reports whether t is one of the fixed enum values
func ValidResourceType(t string) bool {
	for _, rt := range ResourceTypes {
		if t == rt {
			return true
		}
	}
	return false
}
