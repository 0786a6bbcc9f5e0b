package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/careerai/backend/config"
)

// CloudStorageClient wraps Google Cloud Storage operations for resume files
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

// NewCloudStorageClient creates a new Cloud Storage client
func NewCloudStorageClient(ctx context.Context, cfg *config.Config) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: cfg.ResumeBucketName,
	}, nil
}

// Close closes the Cloud Storage client
func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// ResumeObjectName builds the storage key for an uploaded resume. Keys are
// scoped under the owner's id and carry a millisecond timestamp so repeated
// uploads never overwrite each other.
func ResumeObjectName(userID, filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("resumes/%s/%d%s", userID, now.UnixMilli(), ext)
}

// UploadResume uploads resume bytes and returns the durable public URL
func (c *CloudStorageClient) UploadResume(ctx context.Context, userID, filename string, content []byte) (string, error) {
	objectName := ResumeObjectName(userID, filename, time.Now())

	bucket := c.client.Bucket(c.bucketName)
	obj := bucket.Object(objectName)

	wc := obj.NewWriter(ctx)
	wc.ContentType = ContentTypeForExt(filepath.Ext(filename))

	if _, err := wc.Write(content); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to write resume: %w", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName)
	return url, nil
}

// objectNameFromURL recovers the storage key from the public URL produced
// by UploadResume
func objectNameFromURL(bucketName, fileURL string) (string, error) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", bucketName)
	if !strings.HasPrefix(fileURL, prefix) {
		return "", fmt.Errorf("invalid resume URL format")
	}
	return strings.TrimPrefix(fileURL, prefix), nil
}

// DownloadResume downloads resume content by its public URL
func (c *CloudStorageClient) DownloadResume(ctx context.Context, fileURL string) ([]byte, error) {
	objectName, err := objectNameFromURL(c.bucketName, fileURL)
	if err != nil {
		return nil, err
	}

	bucket := c.client.Bucket(c.bucketName)
	obj := bucket.Object(objectName)

	rc, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}

	return data, nil
}

// DeleteResume deletes a resume file from Cloud Storage
func (c *CloudStorageClient) DeleteResume(ctx context.Context, fileURL string) error {
	objectName, err := objectNameFromURL(c.bucketName, fileURL)
	if err != nil {
		return err
	}

	bucket := c.client.Bucket(c.bucketName)
	obj := bucket.Object(objectName)

	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	return nil
}

// ContentTypeForExt maps a document extension to its MIME type
func ContentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
