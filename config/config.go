package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Server
	Port  string
	Debug bool

	// Gemini Model
	GeminiModel string

	// Upload limits
	MaxUploadSizeMB int

	// Roadmap defaults
	DefaultTargetRole   string
	DefaultCurrentLevel string

	// Authentication
	JWTSecret      string
	JWTExpiryHours int
	GoogleClientID string

	// Cloud Storage
	ResumeBucketName string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", ""),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// Gemini Model
		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		// Upload limits
		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 10),

		// Roadmap defaults
		DefaultTargetRole:   getEnv("DEFAULT_TARGET_ROLE", "Software Engineer"),
		DefaultCurrentLevel: getEnv("DEFAULT_CURRENT_LEVEL", "Intermediate"),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		// Cloud Storage
		ResumeBucketName: getEnv("RESUME_BUCKET_NAME", ""),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for Vertex AI and Firestore
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Vertex AI"}
	}

	// Bucket is required for resume uploads
	if c.ResumeBucketName == "" {
		return &ConfigError{Field: "RESUME_BUCKET_NAME", Message: "RESUME_BUCKET_NAME is required for resume storage"}
	}

	if c.MaxUploadSizeMB <= 0 {
		return &ConfigError{Field: "MAX_UPLOAD_SIZE_MB", Message: "MAX_UPLOAD_SIZE_MB must be positive"}
	}

	return nil
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) * 1024 * 1024
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
