package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	PairIndexName string // GSI1 - parent-pair lookups
	ListIndexName string // GSI2 - newest-first element listing

	// Icon storage
	IconBucket   string
	IconBaseURL  string // overrides the derived S3 URL when set (e.g. a CDN)
	SeedIconBase string // base URL for the four bundled root icons

	// OpenAI configuration
	OpenAIAPIKey string
	TextModel    string
	ImageModel   string

	// Reset guard
	ResetConfirmPhrase string

	// Logging and features
	LogLevel   string
	EnableCORS bool

	// Request handling
	FusionTimeoutSeconds int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "alchemy-elements")),
		PairIndexName: getEnv("PAIR_INDEX_NAME", "PairIndex"),
		ListIndexName: getEnv("LIST_INDEX_NAME", "CreatedIndex"),

		// Icon storage
		IconBucket:   getEnv("ICON_BUCKET", "alchemy-icons"),
		IconBaseURL:  getEnv("ICON_BASE_URL", ""),
		SeedIconBase: getEnv("SEED_ICON_BASE", "/icons"),

		// OpenAI
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		TextModel:    getEnv("OPENAI_TEXT_MODEL", "gpt-4o-mini"),
		ImageModel:   getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),

		// Reset guard: development accepts a loose token, production
		// demands this exact phrase (see the delete handler).
		ResetConfirmPhrase: getEnv("RESET_CONFIRM_PHRASE", "erase-every-discovery"),

		// Logging and features
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),

		FusionTimeoutSeconds: getEnvInt("FUSION_TIMEOUT_SECONDS", 120),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required")
		}
		if c.IconBucket == "" {
			return fmt.Errorf("ICON_BUCKET is required")
		}
		if c.ResetConfirmPhrase == "" {
			return fmt.Errorf("RESET_CONFIRM_PHRASE is required in production")
		}
	}
	if c.FusionTimeoutSeconds <= 0 {
		return fmt.Errorf("FUSION_TIMEOUT_SECONDS must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
