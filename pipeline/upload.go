package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/careerai/backend/models"
	"github.com/careerai/backend/session"
)

// State is the upload pipeline state
type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateUploading
	StateAnalyzing
	StateComplete
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file_selected"
	case StateUploading:
		return "uploading"
	case StateAnalyzing:
		return "analyzing"
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Progress checkpoints for each pipeline stage, mirroring the upload UI
const (
	progressStart     = 10
	progressSession   = 20
	progressStored    = 40
	progressReference = 50
	progressRecorded  = 60
	progressExtracted = 70
	progressComplete  = 100
)

// FileInput is a staged resume file
type FileInput struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// BlobStore sends raw resume bytes to durable storage
type BlobStore interface {
	UploadResume(ctx context.Context, userID, filename string, content []byte) (string, error)
}

// ResumeStore creates resume records
type ResumeStore interface {
	CreateResume(ctx context.Context, resume *models.Resume) (string, error)
}

// TextExtractor converts a document into plain text
type TextExtractor interface {
	IsSupportedFormat(filename string) bool
	ExtractText(filename string, content []byte) (string, error)
}

// ResumeAnalyzer runs skill extraction; it owns persistence of the result
type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, userID, resumeID, resumeText string) (*Analysis, error)
}

// Uploader drives the resume pipeline: select, upload, extract, analyze.
// One run at a time; a new run needs a reset after Complete or Error.
type Uploader struct {
	sessions  session.Provider
	blobs     BlobStore
	resumes   ResumeStore
	extractor TextExtractor
	analyzer  ResumeAnalyzer
	maxSize   int64

	mu       sync.Mutex
	running  bool
	state    State
	staged   *FileInput
	progress int
	errMsg   string
	resumeID string
	fileURL  string
	skills   []models.Skill
	count    int
}

// NewUploader creates an upload pipeline in the Idle state
func NewUploader(
	sessions session.Provider,
	blobs BlobStore,
	resumes ResumeStore,
	extractor TextExtractor,
	analyzer ResumeAnalyzer,
	maxSize int64,
) *Uploader {
	return &Uploader{
		sessions:  sessions,
		blobs:     blobs,
		resumes:   resumes,
		extractor: extractor,
		analyzer:  analyzer,
		maxSize:   maxSize,
		state:     StateIdle,
	}
}

// Select stages a single file for analysis. Files over the size limit or
// outside the document allow-list are rejected and the state is unchanged.
// Staging a new file replaces the previous one and clears prior skills.
func (u *Uploader) Select(file FileInput) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.running {
		return &ValidationError{Message: "an analysis is already in progress"}
	}

	if file.Size > u.maxSize {
		return &ValidationError{
			Message: fmt.Sprintf("file exceeds the %d MB limit", u.maxSize/(1024*1024)),
		}
	}
	if !u.extractor.IsSupportedFormat(file.Name) {
		return &ValidationError{
			Message: fmt.Sprintf("unsupported file type: %s", file.Name),
		}
	}

	u.staged = &file
	u.state = StateFileSelected
	u.progress = 0
	u.errMsg = ""
	u.skills = nil
	u.count = 0
	u.resumeID = ""
	u.fileURL = ""
	return nil
}

// Reset clears the staged file and all progress, returning to Idle
func (u *Uploader) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.running {
		return
	}

	u.staged = nil
	u.state = StateIdle
	u.progress = 0
	u.errMsg = ""
	u.skills = nil
	u.count = 0
	u.resumeID = ""
	u.fileURL = ""
}

// Run executes the pipeline for the staged file. It requires an
// authenticated session; without one the state returns to FileSelected.
func (u *Uploader) Run(ctx context.Context) error {
	u.mu.Lock()
	if u.running {
		u.mu.Unlock()
		return &ValidationError{Message: "an analysis is already in progress"}
	}
	if u.state != StateFileSelected || u.staged == nil {
		u.mu.Unlock()
		return &ValidationError{Message: "no file selected"}
	}
	u.running = true
	u.state = StateUploading
	u.progress = progressStart
	file := *u.staged
	u.mu.Unlock()

	sess := u.sessions.Current()
	if sess == nil {
		u.mu.Lock()
		u.running = false
		u.state = StateFileSelected
		u.progress = 0
		u.mu.Unlock()
		return &AuthenticationError{Message: "Not authenticated"}
	}
	u.setProgress(progressSession)

	err := u.run(ctx, sess.UserID, file)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.running = false
	if err != nil {
		u.state = StateError
		u.progress = 0
		u.errMsg = err.Error()
		return err
	}
	u.state = StateComplete
	u.progress = progressComplete
	return nil
}

func (u *Uploader) run(ctx context.Context, userID string, file FileInput) error {
	// Upload the raw file and obtain the durable reference
	fileURL, err := u.blobs.UploadResume(ctx, userID, file.Name, file.Data)
	if err != nil {
		return &UpstreamServiceError{
			Service: "storage",
			Message: "Failed to upload resume",
			Err:     err,
		}
	}
	u.setProgress(progressStored)
	u.setProgress(progressReference)

	// Create the resume record; a failure here leaves the stored file
	// orphaned, which is tolerated
	resume := &models.Resume{
		UserID:   userID,
		FileName: file.Name,
		FileURL:  fileURL,
	}
	resumeID, err := u.resumes.CreateResume(ctx, resume)
	if err != nil {
		return &UpstreamServiceError{
			Service: "database",
			Message: "Failed to save resume record",
			Err:     err,
		}
	}

	u.mu.Lock()
	u.resumeID = resumeID
	u.fileURL = fileURL
	u.state = StateAnalyzing
	u.progress = progressRecorded
	u.mu.Unlock()

	// Extract plain text locally
	text, err := u.extractor.ExtractText(file.Name, file.Data)
	if err != nil {
		return &UpstreamServiceError{
			Service: "extractor",
			Message: "Failed to extract text from resume",
			Err:     err,
		}
	}
	u.setProgress(progressExtracted)

	// The analyzer persists skills and flips the analyzed flag itself
	analysis, err := u.analyzer.AnalyzeResume(ctx, userID, resumeID, text)
	if err != nil {
		return err
	}

	u.mu.Lock()
	u.skills = analysis.Skills
	u.count = analysis.Count
	u.mu.Unlock()

	log.Printf("[Uploader] Resume %s analyzed: %d skills", resumeID, analysis.Count)
	return nil
}

func (u *Uploader) setProgress(p int) {
	u.mu.Lock()
	if p > u.progress {
		u.progress = p
	}
	u.mu.Unlock()
}

// State returns the current pipeline state
func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Progress returns the current progress percentage
func (u *Uploader) Progress() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.progress
}

// Err returns the surfaced error message, if any
func (u *Uploader) Err() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.errMsg
}

// ResumeID returns the created resume record id
func (u *Uploader) ResumeID() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.resumeID
}

// FileURL returns the durable storage reference
func (u *Uploader) FileURL() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.fileURL
}

// Skills returns the full extracted skill list
func (u *Uploader) Skills() []models.Skill {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.skills
}

// Count returns the reported skill count
func (u *Uploader) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.count
}

// TopSkills returns the first n skills in the order the service returned
// them; the service does no ranking, so truncation is the display rule.
func (u *Uploader) TopSkills(n int) []models.Skill {
	u.mu.Lock()
	defer u.mu.Unlock()
	if n > len(u.skills) {
		n = len(u.skills)
	}
	return u.skills[:n]
}
