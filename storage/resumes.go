package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careerai/backend/models"
)

// CreateResume inserts a resume record and returns its assigned id.
// The analyzed flag always starts false.
func (f *FirestoreClient) CreateResume(ctx context.Context, resume *models.Resume) (string, error) {
	resume.ID = uuid.NewString()
	resume.Analyzed = false
	resume.UploadDate = time.Now()
	resume.CreatedAt = time.Now()

	_, err := f.client.Collection(resumesCollection).Doc(resume.ID).Set(ctx, resume)
	if err != nil {
		return "", fmt.Errorf("failed to create resume: %w", err)
	}

	return resume.ID, nil
}

// GetResume retrieves a resume by id, nil when none exists
func (f *FirestoreClient) GetResume(ctx context.Context, resumeID string) (*models.Resume, error) {
	doc, err := f.client.Collection(resumesCollection).Doc(resumeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	var resume models.Resume
	if err := doc.DataTo(&resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume data: %w", err)
	}

	resume.ID = doc.Ref.ID
	return &resume, nil
}

// ListResumes returns a user's resumes, newest first
func (f *FirestoreClient) ListResumes(ctx context.Context, userID string) ([]models.Resume, error) {
	iter := f.client.Collection(resumesCollection).
		Where("user_id", "==", userID).
		OrderBy("upload_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var resumes []models.Resume
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list resumes: %w", err)
		}

		var resume models.Resume
		if err := doc.DataTo(&resume); err != nil {
			return nil, fmt.Errorf("failed to parse resume data: %w", err)
		}
		resume.ID = doc.Ref.ID
		resumes = append(resumes, resume)
	}

	return resumes, nil
}

// SaveExtractedSkills persists the extracted skills and flips the resume's
// analyzed flag in a single write batch. A successful return means both
// effects happened; callers never see skills without the flag.
func (f *FirestoreClient) SaveExtractedSkills(ctx context.Context, resumeID string, skills []models.Skill) error {
	batch := f.client.Batch()

	now := time.Now()
	for i := range skills {
		skills[i].ID = uuid.NewString()
		skills[i].ResumeID = resumeID
		skills[i].ExtractedAt = now
		ref := f.client.Collection(skillsCollection).Doc(skills[i].ID)
		batch.Set(ref, skills[i])
	}

	resumeRef := f.client.Collection(resumesCollection).Doc(resumeID)
	batch.Update(resumeRef, []firestore.Update{
		{Path: "analyzed", Value: true},
	})

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to save extracted skills: %w", err)
	}

	return nil
}

// DeleteResume removes the resume record and every skill extracted from it
// in a single write batch
func (f *FirestoreClient) DeleteResume(ctx context.Context, resumeID string) error {
	iter := f.client.Collection(skillsCollection).
		Where("resume_id", "==", resumeID).
		Documents(ctx)
	defer iter.Stop()

	batch := f.client.Batch()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list resume skills: %w", err)
		}
		batch.Delete(doc.Ref)
	}

	batch.Delete(f.client.Collection(resumesCollection).Doc(resumeID))

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	return nil
}

// SkillsByUser returns every skill extracted for a user
func (f *FirestoreClient) SkillsByUser(ctx context.Context, userID string) ([]models.Skill, error) {
	iter := f.client.Collection(skillsCollection).
		Where("user_id", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var skills []models.Skill
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list skills: %w", err)
		}

		var skill models.Skill
		if err := doc.DataTo(&skill); err != nil {
			return nil, fmt.Errorf("failed to parse skill data: %w", err)
		}
		skill.ID = doc.Ref.ID
		skills = append(skills, skill)
	}

	return skills, nil
}
