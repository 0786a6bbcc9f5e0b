package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerai/backend/models"
)

type fakeRoadmapModel struct {
	plan  *models.RoadmapPlan
	err   error
	calls int
}

func (f *fakeRoadmapModel) GenerateRoadmap(ctx context.Context, skills []models.Skill, targetRole, currentLevel string) (*models.RoadmapPlan, error) {
	f.calls++
	return f.plan, f.err
}

type fakeRoadmapStore struct {
	headers     int
	stepBatches int
	headerErr   error
	stepsErr    error
}

func (f *fakeRoadmapStore) CreateRoadmap(ctx context.Context, roadmap *models.Roadmap) (string, error) {
	f.headers++
	if f.headerErr != nil {
		return "", f.headerErr
	}
	roadmap.ID = "rm-1"
	return "rm-1", nil
}

func (f *fakeRoadmapStore) InsertRoadmapSteps(ctx context.Context, roadmapID string, steps []models.RoadmapStep) error {
	f.stepBatches++
	return f.stepsErr
}

func TestGeneratorHappyPath(t *testing.T) {
	model := &fakeRoadmapModel{plan: validPlan()}
	store := &fakeRoadmapStore{}
	g := NewGenerator(model, store)

	roadmap, err := g.Generate(context.Background(), "user-1", testSkills(), "Senior Engineer", "Intermediate")
	require.NoError(t, err)

	assert.Equal(t, "rm-1", roadmap.ID)
	assert.Equal(t, "user-1", roadmap.UserID)
	assert.Equal(t, "Senior Engineer", roadmap.TargetRole)
	assert.Equal(t, 1, store.headers)
	assert.Equal(t, 1, store.stepBatches)

	require.Len(t, roadmap.Steps, 2)
	assert.Equal(t, 1, roadmap.Steps[0].StepNumber)
	assert.Equal(t, 2, roadmap.Steps[1].StepNumber)
}

func TestGeneratorZeroSkills(t *testing.T) {
	model := &fakeRoadmapModel{plan: validPlan()}
	g := NewGenerator(model, &fakeRoadmapStore{})

	_, err := g.Generate(context.Background(), "user-1", nil, "Senior Engineer", "Intermediate")

	var noSkillsErr *NoSkillsError
	require.ErrorAs(t, err, &noSkillsErr)
	assert.Zero(t, model.calls)
}

func TestGeneratorModelFailure(t *testing.T) {
	model := &fakeRoadmapModel{err: errors.New("deadline exceeded")}
	store := &fakeRoadmapStore{}
	g := NewGenerator(model, store)

	_, err := g.Generate(context.Background(), "user-1", testSkills(), "Senior Engineer", "")

	var upstreamErr *UpstreamServiceError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "AI roadmap generation failed", upstreamErr.Message)
	assert.Zero(t, store.headers)
}

func TestGeneratorRejectsMalformedPlan(t *testing.T) {
	plan := validPlan()
	plan.Steps[1].StepNumber = 5 // gap
	store := &fakeRoadmapStore{}
	g := NewGenerator(&fakeRoadmapModel{plan: plan}, store)

	_, err := g.Generate(context.Background(), "user-1", testSkills(), "Senior Engineer", "")

	var contractErr *ContractViolationError
	require.ErrorAs(t, err, &contractErr)
	assert.Zero(t, store.headers, "a malformed plan must never be persisted")
}

func TestGeneratorStepPersistenceFailure(t *testing.T) {
	store := &fakeRoadmapStore{stepsErr: errors.New("batch commit failed")}
	g := NewGenerator(&fakeRoadmapModel{plan: validPlan()}, store)

	_, err := g.Generate(context.Background(), "user-1", testSkills(), "Senior Engineer", "")

	var upstreamErr *UpstreamServiceError
	require.ErrorAs(t, err, &upstreamErr)
	// The header was written before steps failed; it stays until superseded
	assert.Equal(t, 1, store.headers)
}

func TestGeneratorEachCallCreatesNewRoadmap(t *testing.T) {
	store := &fakeRoadmapStore{}
	g := NewGenerator(&fakeRoadmapModel{plan: validPlan()}, store)

	_, err := g.Generate(context.Background(), "user-1", testSkills(), "Senior Engineer", "")
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), "user-1", testSkills(), "Senior Engineer", "")
	require.NoError(t, err)

	assert.Equal(t, 2, store.headers)
}
