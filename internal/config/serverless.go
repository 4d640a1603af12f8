package config

import (
	"os"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
}

var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			IsLambda:     os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       GetEnv("AWS_REGION", "us-east-1"),
		}
	})
	return serverlessConfig
}

// IsLambda detects if the application is running in AWS Lambda
func IsLambda() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsLambda() {
		return "serverless"
	}
	return "server"
}
