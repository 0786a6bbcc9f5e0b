package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/careerai/backend/gemini"
	"github.com/careerai/backend/models"
	"github.com/careerai/backend/pipeline"
)

// ExtractSkillsTool extracts categorized skills from resume text using Gemini.
// The tool is stateless: nothing is persisted, callers own storage.
type ExtractSkillsTool struct {
	geminiClient *gemini.Client
}

// NewExtractSkillsTool creates a new skill extraction tool
func NewExtractSkillsTool(geminiClient *gemini.Client) *ExtractSkillsTool {
	return &ExtractSkillsTool{
		geminiClient: geminiClient,
	}
}

func (t *ExtractSkillsTool) Name() string {
	return "extract_skills"
}

func (t *ExtractSkillsTool) Description() string {
	return `Extract skills from resume text using AI.
Input is the plain text of a resume.
Returns a list of skills, each with a name, a category (Technical, Soft Skills, Tools, Languages, Certifications) and a proficiency level (Beginner, Intermediate, Advanced, Expert).`
}

func (t *ExtractSkillsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"resume_text": map[string]interface{}{
				"type":        "string",
				"description": "Plain text content of the resume",
			},
		},
		"required": []string{"resume_text"},
	}
}

// ExtractSkillsInput represents the input for skill extraction
type ExtractSkillsInput struct {
	ResumeText string `json:"resume_text"`
}

// ExtractSkillsOutput represents the extraction result
type ExtractSkillsOutput struct {
	Skills []models.Skill `json:"skills"`
	Count  int            `json:"count"`
}

func (t *ExtractSkillsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var extractInput ExtractSkillsInput
	if err := json.Unmarshal(input, &extractInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if extractInput.ResumeText == "" {
		return NewErrorResult("resume_text is required")
	}

	skills, err := t.geminiClient.ExtractSkills(ctx, extractInput.ResumeText)
	if err != nil {
		return NewErrorResult(fmt.Sprintf("extraction failed: %v", err))
	}

	if err := pipeline.ValidateSkills(skills); err != nil {
		return NewErrorResult(fmt.Sprintf("model returned malformed skills: %v", err))
	}

	return NewSuccessResult(ExtractSkillsOutput{
		Skills: skills,
		Count:  len(skills),
	})
}
