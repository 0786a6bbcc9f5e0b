// Package extract converts uploaded resume documents into plain text.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// DocumentExtractor extracts text from supported resume formats
type DocumentExtractor struct{}

// NewDocumentExtractor creates a new document extractor
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// supportedExtensions is the document-format allow-list
var supportedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// IsSupportedFormat checks if the file format is supported
func (e *DocumentExtractor) IsSupportedFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ExtractText extracts plain text from document bytes based on the file
// extension. Whitespace-only output is reported as empty.
func (e *DocumentExtractor) ExtractText(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	var err error

	switch ext {
	case ".txt":
		text = string(content)

	case ".pdf":
		text, err = extractPDFText(content)

	case ".docx":
		text, err = extractDocxText(content)

	case ".doc":
		// Legacy .doc has no dedicated parser; salvage readable ASCII
		text = extractReadable(content)

	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text could be extracted from %s", filename)
	}

	return text, nil
}

func extractPDFText(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(reader.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func extractDocxText(content []byte) (string, error) {
	r := bytes.NewReader(content)

	doc, err := docx.ReadDocxFromMemory(r, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

func extractReadable(content []byte) string {
	var cleanText strings.Builder
	reader := bytes.NewReader(content)
	for {
		r, _, err := reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if r >= 32 && r <= 126 || r == '\n' || r == '\r' || r == '\t' {
			cleanText.WriteRune(r)
		}
	}
	return cleanText.String()
}
