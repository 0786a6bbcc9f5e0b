package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	name := ResumeObjectName("user-1", "resume.pdf", now)
	assert.Equal(t, "resumes/user-1/1700000000000.pdf", name)

	// Extension carries over, base name does not
	name = ResumeObjectName("user-2", "My CV (final).docx", now)
	assert.Equal(t, "resumes/user-2/1700000000000.docx", name)
}

func TestResumeObjectNameUniquePerUpload(t *testing.T) {
	first := ResumeObjectName("user-1", "resume.pdf", time.UnixMilli(1))
	second := ResumeObjectName("user-1", "resume.pdf", time.UnixMilli(2))
	assert.NotEqual(t, first, second)
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".pdf", "application/pdf"},
		{".PDF", "application/pdf"},
		{".doc", "application/msword"},
		{".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{".txt", "text/plain"},
		{".bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("ext %s", tt.ext), func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeForExt(tt.ext))
		})
	}
}

func TestObjectNameFromURL(t *testing.T) {
	name, err := objectNameFromURL("test-bucket", "https://storage.googleapis.com/test-bucket/resumes/user-1/1700000000000.pdf")
	require.NoError(t, err)
	assert.Equal(t, "resumes/user-1/1700000000000.pdf", name)

	_, err = objectNameFromURL("test-bucket", "https://storage.googleapis.com/other-bucket/resumes/user-1/1.pdf")
	assert.Error(t, err)

	_, err = objectNameFromURL("test-bucket", "https://example.com/resumes/user-1/1.pdf")
	assert.Error(t, err)
}

func TestUploadDownloadURLRoundTrip(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	object := ResumeObjectName("user-1", "resume.pdf", now)
	fileURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", "test-bucket", object)

	name, err := objectNameFromURL("test-bucket", fileURL)
	require.NoError(t, err)
	assert.Equal(t, object, name)
}
