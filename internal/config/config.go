package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Region      string
	Bedrock     BedrockConfig
}

// BedrockConfig holds model invocation configuration
type BedrockConfig struct {
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Load loads configuration from environment variables. The result is
// immutable for the process lifetime; callers pass it into constructors
// rather than reading globals.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("BEDROCK_MODEL_ID", "anthropic.claude-3-sonnet-20240229-v1:0")
	viper.SetDefault("MAX_TOKENS", 1000)
	viper.SetDefault("TEMPERATURE", 0.7)
	viper.SetDefault("TOP_P", 0.9)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Region:      viper.GetString("AWS_REGION"),
		Bedrock: BedrockConfig{
			ModelID:     viper.GetString("BEDROCK_MODEL_ID"),
			MaxTokens:   viper.GetInt("MAX_TOKENS"),
			Temperature: viper.GetFloat64("TEMPERATURE"),
			TopP:        viper.GetFloat64("TOP_P"),
		},
	}

	return config, nil
}

// ConfigureLogging applies LOG_LEVEL to the global logger. Lambda
// invocations log JSON so CloudWatch can index the fields.
func ConfigureLogging(cfg *Config) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if IsLambda() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
