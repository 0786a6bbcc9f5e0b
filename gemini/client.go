package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/careerai/backend/config"
	"github.com/careerai/backend/models"
)

// Client wraps the Vertex AI Gemini client. Both operations force a single
// structured function call so the model can only answer in the declared
// schema; callers still validate the payload before trusting it.
type Client struct {
	client    *genai.Client
	projectID string
	location  string
	modelName string
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		projectID: cfg.ProjectID,
		location:  cfg.Location,
		modelName: cfg.GeminiModel,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// model builds a generative model constrained to one forced function call
func (c *Client) model(tool *genai.Tool, functionName string) *genai.GenerativeModel {
	model := c.client.GenerativeModel(c.modelName)

	model.SetTemperature(0.2) // Lower temperature for more consistent outputs
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)

	model.Tools = []*genai.Tool{tool}
	model.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode:                 genai.FunctionCallingAny,
			AllowedFunctionNames: []string{functionName},
		},
	}

	return model
}

var extractSkillsTool = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{
		{
			Name:        "extract_skills",
			Description: "Extract and categorize skills from a resume",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"skills": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"skill_name": {Type: genai.TypeString},
								"category": {
									Type: genai.TypeString,
									Enum: models.SkillCategories,
								},
								"proficiency_level": {
									Type: genai.TypeString,
									Enum: models.ProficiencyLevels,
								},
							},
							Required: []string{"skill_name", "category", "proficiency_level"},
						},
					},
				},
				Required: []string{"skills"},
			},
		},
	},
}

var createRoadmapTool = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{
		{
			Name:        "create_roadmap",
			Description: "Create a structured learning roadmap with sequential steps",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":          {Type: genai.TypeString},
					"description":    {Type: genai.TypeString},
					"duration_weeks": {Type: genai.TypeInteger},
					"steps": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"step_number":     {Type: genai.TypeInteger},
								"title":           {Type: genai.TypeString},
								"description":     {Type: genai.TypeString},
								"estimated_hours": {Type: genai.TypeInteger},
								"resources": {
									Type: genai.TypeArray,
									Items: &genai.Schema{
										Type: genai.TypeObject,
										Properties: map[string]*genai.Schema{
											"title": {Type: genai.TypeString},
											"url":   {Type: genai.TypeString},
											"type": {
												Type: genai.TypeString,
												Enum: models.ResourceTypes,
											},
										},
										Required: []string{"title", "url", "type"},
									},
								},
							},
							Required: []string{"step_number", "title", "description", "estimated_hours", "resources"},
						},
					},
				},
				Required: []string{"title", "description", "duration_weeks", "steps"},
			},
		},
	},
}

// extractSkillsResult mirrors the extract_skills function arguments
type extractSkillsResult struct {
	Skills []models.Skill `json:"skills"`
}

// ExtractSkills extracts categorized, leveled skills from resume text
func (c *Client) ExtractSkills(ctx context.Context, resumeText string) ([]models.Skill, error) {
	prompt := fmt.Sprintf(`Analyze this resume and extract all skills. Categorize them as: Technical, Soft Skills, Tools, Languages, Certifications. For each skill, estimate proficiency (Beginner, Intermediate, Advanced, Expert) based on context (years of experience, job titles, projects).

Resume:
%s`, resumeText)

	model := c.model(extractSkillsTool, "extract_skills")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	call, err := functionCall(resp, "extract_skills")
	if err != nil {
		return nil, fmt.Errorf("no skills extracted from resume: %w", err)
	}

	var result extractSkillsResult
	if err := decodeArgs(call.Args, &result); err != nil {
		log.Printf("[Gemini] Failed to decode extract_skills args: %v", err)
		return nil, fmt.Errorf("failed to parse skills payload: %w", err)
	}

	log.Printf("[Gemini] Extracted %d skills", len(result.Skills))
	return result.Skills, nil
}

// GenerateRoadmap generates a multi-step learning plan for a target role
func (c *Client) GenerateRoadmap(ctx context.Context, skills []models.Skill, targetRole, currentLevel string) (*models.RoadmapPlan, error) {
	if currentLevel == "" {
		currentLevel = "Entry"
	}

	skillsList := make([]string, 0, len(skills))
	for _, s := range skills {
		skillsList = append(skillsList, fmt.Sprintf("%s (%s)", s.SkillName, s.Proficiency))
	}

	prompt := fmt.Sprintf(`Create a detailed learning roadmap for someone who wants to become a %s. Current experience level: %s. Current skills: %s.

Generate a comprehensive roadmap with 8-12 sequential steps. Each step should build on previous steps and include:
- Clear learning objectives
- Estimated time to complete (in hours)
- Recommended courses and resources from Coursera and Udemy
- Additional resources like documentation, tutorials, and practical projects

IMPORTANT: For resources, prioritize actual Coursera and Udemy courses. Use real course names and provide proper URLs in the format:
- Coursera: https://www.coursera.org/learn/[course-slug]
- Udemy: https://www.udemy.com/course/[course-slug]

Include a mix of resource types: courses (Coursera/Udemy), documentation, tutorials, videos, and hands-on projects.`,
		targetRole, currentLevel, strings.Join(skillsList, ", "))

	model := c.model(createRoadmapTool, "create_roadmap")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	call, err := functionCall(resp, "create_roadmap")
	if err != nil {
		return nil, fmt.Errorf("failed to generate roadmap: %w", err)
	}

	var plan models.RoadmapPlan
	if err := decodeArgs(call.Args, &plan); err != nil {
		log.Printf("[Gemini] Failed to decode create_roadmap args: %v", err)
		return nil, fmt.Errorf("failed to parse roadmap payload: %w", err)
	}

	log.Printf("[Gemini] Generated roadmap %q with %d steps", plan.Title, len(plan.Steps))
	return &plan, nil
}

// Helper functions

// functionCall pulls the named function call out of the first candidate
func functionCall(resp *genai.GenerateContentResponse, name string) (*genai.FunctionCall, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from Gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if fc, ok := part.(genai.FunctionCall); ok && fc.Name == name {
			return &fc, nil
		}
	}

	return nil, fmt.Errorf("model returned no %s call", name)
}

// decodeArgs round-trips function-call arguments through JSON into v
func decodeArgs(args map[string]any, v interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
