package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/careerai/backend/auth"
	"github.com/careerai/backend/models"
	"github.com/careerai/backend/pipeline"
	"github.com/careerai/backend/session"
	"github.com/careerai/backend/storage"
)

// ResumeHandler handles resume upload and analysis requests
type ResumeHandler struct {
	firestoreClient *storage.FirestoreClient
	storageClient   *storage.CloudStorageClient
	extractor       pipeline.TextExtractor
	analyzer        *pipeline.Analyzer
	maxUploadBytes  int64
}

// NewResumeHandler creates a new resume handler
func NewResumeHandler(
	firestoreClient *storage.FirestoreClient,
	storageClient *storage.CloudStorageClient,
	extractor pipeline.TextExtractor,
	analyzer *pipeline.Analyzer,
	maxUploadBytes int64,
) *ResumeHandler {
	return &ResumeHandler{
		firestoreClient: firestoreClient,
		storageClient:   storageClient,
		extractor:       extractor,
		analyzer:        analyzer,
		maxUploadBytes:  maxUploadBytes,
	}
}

// Upload runs the full resume pipeline: store the file, create the record,
// extract text, and analyze skills
// @Summary Upload and analyze a resume
// @Description Upload a resume file (PDF, DOC, DOCX, TXT), store it, and extract categorized skills using AI
// @Tags Resumes
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param resume_file formData file true "Resume file"
// @Success 200 {object} models.UploadResumeResponse "Resume analyzed"
// @Failure 400 {object} models.ErrorResponse "Invalid file"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 502 {object} models.ErrorResponse "Upstream service failed"
// @Router /resumes [post]
func (h *ResumeHandler) Upload(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	file, header, err := c.Request.FormFile("resume_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Resume file is required",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	// Reject over-limit uploads before buffering the body
	if header.Size > h.maxUploadBytes {
		respondPipelineError(c, &pipeline.ValidationError{
			Message: fmt.Sprintf("file exceeds the %d MB limit", h.maxUploadBytes/(1024*1024)),
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Failed to read resume file",
			Code:  http.StatusBadRequest,
		})
		return
	}

	uploader := pipeline.NewUploader(
		session.NewStatic(&session.Session{UserID: claims.UserID, Email: claims.Email}),
		h.storageClient,
		h.firestoreClient,
		h.extractor,
		h.analyzer,
		h.maxUploadBytes,
	)

	if err := uploader.Select(pipeline.FileInput{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}); err != nil {
		respondPipelineError(c, err)
		return
	}

	if err := uploader.Run(c.Request.Context()); err != nil {
		log.Printf("[ResumeHandler] Pipeline failed for %s: %v", header.Filename, err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UploadResumeResponse{
		ResumeID: uploader.ResumeID(),
		FileURL:  uploader.FileURL(),
		Skills:   uploader.Skills(),
		Count:    uploader.Count(),
		Message:  "Resume analyzed successfully",
	})
}

// Analyze extracts skills from already-extracted resume text
// @Summary Analyze resume text
// @Description Extract categorized skills from resume text and persist them against the resume record
// @Tags Resumes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AnalyzeResumeRequest true "Analysis request"
// @Success 200 {object} models.AnalyzeResumeResponse "Extracted skills"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 502 {object} models.ErrorResponse "AI analysis failed"
// @Router /analyze-resume [post]
func (h *ResumeHandler) Analyze(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	var req models.AnalyzeResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	analysis, err := h.analyzer.AnalyzeResume(c.Request.Context(), claims.UserID, req.ResumeID, req.ResumeText)
	if err != nil {
		log.Printf("[ResumeHandler] Analysis failed for resume %s: %v", req.ResumeID, err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResumeResponse{
		Success: true,
		Skills:  analysis.Skills,
		Count:   analysis.Count,
	})
}

// List returns the user's uploaded resumes
// @Summary List resumes
// @Description List the authenticated user's uploaded resumes, newest first
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ResumeListResponse "Resumes"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /resumes [get]
func (h *ResumeHandler) List(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	resumes, err := h.firestoreClient.ListResumes(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("[ResumeHandler] Failed to list resumes: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to list resumes",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.ResumeListResponse{
		Resumes: resumes,
		Total:   len(resumes),
	})
}

// Skills returns the user's extracted skills
// @Summary List skills
// @Description List every skill extracted for the authenticated user
// @Tags Skills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SkillListResponse "Skills"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /skills [get]
func (h *ResumeHandler) Skills(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	skills, err := h.firestoreClient.SkillsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("[ResumeHandler] Failed to list skills: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to list skills",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.SkillListResponse{
		Skills: skills,
		Total:  len(skills),
	})
}

// ownedResume loads a resume and verifies it belongs to the caller.
// Foreign ids get the same 404 as missing ones.
func (h *ResumeHandler) ownedResume(c *gin.Context, userID, resumeID string) (*models.Resume, bool) {
	resume, err := h.firestoreClient.GetResume(c.Request.Context(), resumeID)
	if err != nil {
		log.Printf("[ResumeHandler] Failed to load resume %s: %v", resumeID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to load resume",
			Code:  http.StatusInternalServerError,
		})
		return nil, false
	}
	if resume == nil || resume.UserID != userID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Resume not found",
			Code:  http.StatusNotFound,
		})
		return nil, false
	}
	return resume, true
}

// Download streams the original resume file back to its owner
// @Summary Download a resume
// @Description Download the original uploaded resume file
// @Tags Resumes
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Resume id"
// @Success 200 {file} binary "Resume file"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Resume not found"
// @Failure 502 {object} models.ErrorResponse "Storage failed"
// @Router /resumes/{id}/download [get]
func (h *ResumeHandler) Download(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	resume, ok := h.ownedResume(c, claims.UserID, c.Param("id"))
	if !ok {
		return
	}

	data, err := h.storageClient.DownloadResume(c.Request.Context(), resume.FileURL)
	if err != nil {
		log.Printf("[ResumeHandler] Failed to download resume %s: %v", resume.ID, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: "Failed to download resume",
			Code:  http.StatusBadGateway,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.FileName))
	c.Data(http.StatusOK, storage.ContentTypeForExt(filepath.Ext(resume.FileName)), data)
}

// Delete removes a resume, its stored file, and its extracted skills
// @Summary Delete a resume
// @Description Delete an uploaded resume, its stored file, and every skill extracted from it
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resume id"
// @Success 200 {object} models.DeleteResumeResponse "Resume deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Resume not found"
// @Failure 502 {object} models.ErrorResponse "Storage failed"
// @Router /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error: "Unauthorized",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	resume, ok := h.ownedResume(c, claims.UserID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.storageClient.DeleteResume(c.Request.Context(), resume.FileURL); err != nil {
		log.Printf("[ResumeHandler] Failed to delete stored file for %s: %v", resume.ID, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: "Failed to delete resume file",
			Code:  http.StatusBadGateway,
		})
		return
	}

	if err := h.firestoreClient.DeleteResume(c.Request.Context(), resume.ID); err != nil {
		log.Printf("[ResumeHandler] Failed to delete resume record %s: %v", resume.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to delete resume",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[ResumeHandler] Resume %s deleted", resume.ID)
	c.JSON(http.StatusOK, models.DeleteResumeResponse{
		Message: "Resume deleted successfully",
	})
}
