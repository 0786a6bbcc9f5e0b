package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/careerai/backend/models"
)

// CreateRoadmap inserts the roadmap header and returns its assigned id.
// Steps are persisted separately once the header id exists.
func (f *FirestoreClient) CreateRoadmap(ctx context.Context, roadmap *models.Roadmap) (string, error) {
	roadmap.ID = uuid.NewString()
	roadmap.GeneratedAt = time.Now()

	_, err := f.client.Collection(roadmapsCollection).Doc(roadmap.ID).Set(ctx, roadmap)
	if err != nil {
		return "", fmt.Errorf("failed to create roadmap: %w", err)
	}

	return roadmap.ID, nil
}

// InsertRoadmapSteps persists all steps of a roadmap in one write batch
func (f *FirestoreClient) InsertRoadmapSteps(ctx context.Context, roadmapID string, steps []models.RoadmapStep) error {
	batch := f.client.Batch()

	for i := range steps {
		steps[i].ID = uuid.NewString()
		steps[i].RoadmapID = roadmapID
		ref := f.client.Collection(roadmapStepsCollection).Doc(steps[i].ID)
		batch.Set(ref, steps[i])
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to insert roadmap steps: %w", err)
	}

	return nil
}

// LatestRoadmap returns the user's most recently generated roadmap with its
// steps, or nil when the user has none. Steps are sorted by step number
// after the fetch; storage order is not relied on.
func (f *FirestoreClient) LatestRoadmap(ctx context.Context, userID string) (*models.Roadmap, error) {
	iter := f.client.Collection(roadmapsCollection).
		Where("user_id", "==", userID).
		OrderBy("generated_at", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query roadmaps: %w", err)
	}

	var roadmap models.Roadmap
	if err := doc.DataTo(&roadmap); err != nil {
		return nil, fmt.Errorf("failed to parse roadmap data: %w", err)
	}
	roadmap.ID = doc.Ref.ID

	steps, err := f.roadmapSteps(ctx, roadmap.ID)
	if err != nil {
		return nil, err
	}
	roadmap.Steps = steps
	roadmap.SortSteps()

	return &roadmap, nil
}

func (f *FirestoreClient) roadmapSteps(ctx context.Context, roadmapID string) ([]models.RoadmapStep, error) {
	iter := f.client.Collection(roadmapStepsCollection).
		Where("roadmap_id", "==", roadmapID).
		Documents(ctx)
	defer iter.Stop()

	var steps []models.RoadmapStep
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list roadmap steps: %w", err)
		}

		var step models.RoadmapStep
		if err := doc.DataTo(&step); err != nil {
			return nil, fmt.Errorf("failed to parse roadmap step: %w", err)
		}
		step.ID = doc.Ref.ID
		steps = append(steps, step)
	}

	return steps, nil
}
