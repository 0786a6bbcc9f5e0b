package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerai/backend/auth"
	"github.com/careerai/backend/models"
)

func multipartResume(t *testing.T, name string, size int) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("resume_file", name)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func uploadContext(t *testing.T, body *bytes.Buffer, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/resumes", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Set(auth.AuthClaimsKey, &auth.Claims{UserID: "user-1", Email: "user@example.com"})

	return c, w
}

func TestUploadRejectsOversizeFileBeforeReading(t *testing.T) {
	const maxBytes = 1024 * 1024

	body, contentType := multipartResume(t, "resume.pdf", maxBytes+1)
	c, w := uploadContext(t, body, contentType)

	// Nil clients prove the request is refused before any downstream work
	h := NewResumeHandler(nil, nil, nil, nil, maxBytes)
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "file exceeds the 1 MB limit", resp.Error)
}

func TestUploadRequiresAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/resumes", nil)

	h := NewResumeHandler(nil, nil, nil, nil, 1024)
	h.Upload(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadRequiresFile(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.Close())

	c, w := uploadContext(t, &buf, writer.FormDataContentType())

	h := NewResumeHandler(nil, nil, nil, nil, 1024)
	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Resume file is required", resp.Error)
}
