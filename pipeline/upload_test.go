package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerai/backend/models"
	"github.com/careerai/backend/session"
)

type fakeBlobStore struct {
	uploads int
	fail    bool
}

func (f *fakeBlobStore) UploadResume(ctx context.Context, userID, filename string, content []byte) (string, error) {
	f.uploads++
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	return "https://storage.googleapis.com/test-bucket/resumes/" + userID + "/" + filename, nil
}

type fakeResumeStore struct {
	created int
	fail    bool
}

func (f *fakeResumeStore) CreateResume(ctx context.Context, resume *models.Resume) (string, error) {
	f.created++
	if f.fail {
		return "", errors.New("firestore write failed")
	}
	return "resume-1", nil
}

type fakeExtractor struct {
	text string
	fail bool
}

func (f *fakeExtractor) IsSupportedFormat(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".pdf") ||
		strings.HasSuffix(lower, ".doc") ||
		strings.HasSuffix(lower, ".docx") ||
		strings.HasSuffix(lower, ".txt")
}

func (f *fakeExtractor) ExtractText(filename string, content []byte) (string, error) {
	if f.fail {
		return "", errors.New("corrupt document")
	}
	return f.text, nil
}

type fakeAnalyzer struct {
	skills []models.Skill
	err    error
	calls  int
}

func (f *fakeAnalyzer) AnalyzeResume(ctx context.Context, userID, resumeID, resumeText string) (*Analysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &Analysis{Skills: f.skills, Count: len(f.skills)}, nil
}

func testSkills() []models.Skill {
	return []models.Skill{
		{SkillName: "Go", Category: models.CategoryTechnical, Proficiency: models.ProficiencyAdvanced},
		{SkillName: "Docker", Category: models.CategoryTools, Proficiency: models.ProficiencyIntermediate},
	}
}

func newTestUploader(blobs *fakeBlobStore, resumes *fakeResumeStore, extractor *fakeExtractor, analyzer *fakeAnalyzer) *Uploader {
	return NewUploader(
		session.NewStatic(&session.Session{UserID: "user-1", Email: "user@example.com"}),
		blobs, resumes, extractor, analyzer,
		10*1024*1024,
	)
}

func TestUploaderHappyPath(t *testing.T) {
	blobs := &fakeBlobStore{}
	resumes := &fakeResumeStore{}
	extractor := &fakeExtractor{text: "Go developer with five years of experience"}
	analyzer := &fakeAnalyzer{skills: testSkills()}
	u := newTestUploader(blobs, resumes, extractor, analyzer)

	require.Equal(t, StateIdle, u.State())

	err := u.Select(FileInput{
		Name:        "resume.pdf",
		Size:        2 * 1024 * 1024,
		ContentType: "application/pdf",
		Data:        bytes.Repeat([]byte("x"), 128),
	})
	require.NoError(t, err)
	require.Equal(t, StateFileSelected, u.State())

	require.NoError(t, u.Run(context.Background()))

	assert.Equal(t, StateComplete, u.State())
	assert.Equal(t, 100, u.Progress())
	assert.Equal(t, "resume-1", u.ResumeID())
	assert.NotEmpty(t, u.FileURL())
	assert.Len(t, u.Skills(), u.Count())
	assert.Equal(t, 2, u.Count())
	assert.Equal(t, 1, analyzer.calls)
}

func TestUploaderRejectsOversizeFile(t *testing.T) {
	blobs := &fakeBlobStore{}
	u := newTestUploader(blobs, &fakeResumeStore{}, &fakeExtractor{}, &fakeAnalyzer{})

	err := u.Select(FileInput{Name: "huge.pdf", Size: 11 * 1024 * 1024})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "10 MB")
	assert.Equal(t, StateIdle, u.State())
	assert.Zero(t, blobs.uploads)
}

func TestUploaderRejectsUnsupportedType(t *testing.T) {
	blobs := &fakeBlobStore{}
	u := newTestUploader(blobs, &fakeResumeStore{}, &fakeExtractor{}, &fakeAnalyzer{})

	err := u.Select(FileInput{Name: "resume.exe", Size: 1024})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, StateIdle, u.State())
	assert.Zero(t, blobs.uploads)
}

func TestUploaderRunWithoutFile(t *testing.T) {
	u := newTestUploader(&fakeBlobStore{}, &fakeResumeStore{}, &fakeExtractor{}, &fakeAnalyzer{})

	err := u.Run(context.Background())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUploaderUnauthenticated(t *testing.T) {
	blobs := &fakeBlobStore{}
	u := NewUploader(
		session.NewStatic(nil),
		blobs, &fakeResumeStore{}, &fakeExtractor{text: "text"}, &fakeAnalyzer{},
		10*1024*1024,
	)

	require.NoError(t, u.Select(FileInput{Name: "resume.pdf", Size: 1024}))
	err := u.Run(context.Background())

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Not authenticated", authErr.Message)
	// The file stays staged so a retry after sign-in works without reselecting
	assert.Equal(t, StateFileSelected, u.State())
	assert.Zero(t, u.Progress())
	assert.Zero(t, blobs.uploads)
}

func TestUploaderAnalysisFailure(t *testing.T) {
	resumes := &fakeResumeStore{}
	analyzer := &fakeAnalyzer{
		err: &UpstreamServiceError{Service: "ai-gateway", Message: "AI analysis failed"},
	}
	u := newTestUploader(&fakeBlobStore{}, resumes, &fakeExtractor{text: "text"}, analyzer)

	require.NoError(t, u.Select(FileInput{Name: "resume.pdf", Size: 1024}))
	err := u.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, StateError, u.State())
	assert.Zero(t, u.Progress())
	assert.Contains(t, u.Err(), "AI analysis failed")
	// The resume record was created before analysis; it stays, unanalyzed
	assert.Equal(t, 1, resumes.created)
}

func TestUploaderStorageFailure(t *testing.T) {
	resumes := &fakeResumeStore{}
	u := newTestUploader(&fakeBlobStore{fail: true}, resumes, &fakeExtractor{text: "text"}, &fakeAnalyzer{})

	require.NoError(t, u.Select(FileInput{Name: "resume.pdf", Size: 1024}))
	err := u.Run(context.Background())

	var upstreamErr *UpstreamServiceError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "storage", upstreamErr.Service)
	assert.Equal(t, StateError, u.State())
	assert.Zero(t, resumes.created)
}

func TestUploaderReselectClearsPriorResults(t *testing.T) {
	u := newTestUploader(&fakeBlobStore{}, &fakeResumeStore{}, &fakeExtractor{text: "text"}, &fakeAnalyzer{skills: testSkills()})

	require.NoError(t, u.Select(FileInput{Name: "first.pdf", Size: 1024}))
	require.NoError(t, u.Run(context.Background()))
	require.Equal(t, StateComplete, u.State())
	require.NotEmpty(t, u.Skills())

	require.NoError(t, u.Select(FileInput{Name: "second.docx", Size: 2048}))

	assert.Equal(t, StateFileSelected, u.State())
	assert.Empty(t, u.Skills())
	assert.Zero(t, u.Count())
	assert.Empty(t, u.ResumeID())
	assert.Zero(t, u.Progress())
}

func TestUploaderResetReturnsToIdle(t *testing.T) {
	u := newTestUploader(&fakeBlobStore{}, &fakeResumeStore{}, &fakeExtractor{}, &fakeAnalyzer{})

	require.NoError(t, u.Select(FileInput{Name: "resume.txt", Size: 512}))
	u.Reset()

	assert.Equal(t, StateIdle, u.State())
	assert.Zero(t, u.Progress())
	assert.Empty(t, u.Err())
}

func TestUploaderTopSkills(t *testing.T) {
	u := newTestUploader(&fakeBlobStore{}, &fakeResumeStore{}, &fakeExtractor{text: "text"}, &fakeAnalyzer{skills: testSkills()})

	require.NoError(t, u.Select(FileInput{Name: "resume.pdf", Size: 1024}))
	require.NoError(t, u.Run(context.Background()))

	// Truncation only, no reordering
	top := u.TopSkills(1)
	require.Len(t, top, 1)
	assert.Equal(t, "Go", top[0].SkillName)

	assert.Len(t, u.TopSkills(5), 2)
}

func TestUploaderProgressNeverDecreases(t *testing.T) {
	u := newTestUploader(&fakeBlobStore{}, &fakeResumeStore{}, &fakeExtractor{text: "text"}, &fakeAnalyzer{skills: testSkills()})

	u.setProgress(40)
	u.setProgress(20)
	assert.Equal(t, 40, u.Progress())

	u.setProgress(70)
	assert.Equal(t, 70, u.Progress())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "file_selected", StateFileSelected.String())
	assert.Equal(t, "uploading", StateUploading.String())
	assert.Equal(t, "analyzing", StateAnalyzing.String())
	assert.Equal(t, "complete", StateComplete.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(99).String())
}
