package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedFormat(t *testing.T) {
	e := NewDocumentExtractor()

	assert.True(t, e.IsSupportedFormat("resume.pdf"))
	assert.True(t, e.IsSupportedFormat("Resume.PDF"))
	assert.True(t, e.IsSupportedFormat("resume.doc"))
	assert.True(t, e.IsSupportedFormat("resume.docx"))
	assert.True(t, e.IsSupportedFormat("resume.txt"))

	assert.False(t, e.IsSupportedFormat("resume.exe"))
	assert.False(t, e.IsSupportedFormat("resume.png"))
	assert.False(t, e.IsSupportedFormat("resume"))
}

func TestExtractTextPlainText(t *testing.T) {
	e := NewDocumentExtractor()

	text, err := e.ExtractText("resume.txt", []byte("Go developer with cloud experience"))
	require.NoError(t, err)
	assert.Equal(t, "Go developer with cloud experience", text)
}

func TestExtractTextEmptyDocument(t *testing.T) {
	e := NewDocumentExtractor()

	_, err := e.ExtractText("resume.txt", []byte("  \n\t  "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text could be extracted")
}

func TestExtractTextUnsupportedType(t *testing.T) {
	e := NewDocumentExtractor()

	_, err := e.ExtractText("resume.exe", []byte("binary"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractTextCorruptPDF(t *testing.T) {
	e := NewDocumentExtractor()

	_, err := e.ExtractText("resume.pdf", []byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestExtractTextLegacyDocSalvagesASCII(t *testing.T) {
	e := NewDocumentExtractor()

	// Binary junk interleaved with readable text
	content := append([]byte{0x00, 0x01, 0xD0, 0xCF}, []byte("Senior Backend Engineer")...)
	content = append(content, 0x00, 0x02)

	text, err := e.ExtractText("resume.doc", content)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Backend Engineer")
}
