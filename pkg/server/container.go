package server

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"bedrock-proxy-api/internal/bedrock"
	"bedrock-proxy-api/internal/config"
	"bedrock-proxy-api/internal/handlers"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Invoker *bedrock.Invoker
	Handler *handlers.GenerateHandler
}

// NewContainer wires the Bedrock client and services for one process.
// Everything in it is read-only after construction and safe to share
// across concurrent invocations.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := bedrockruntime.NewFromConfig(awsCfg)
	invoker := bedrock.NewInvoker(client, cfg.Bedrock)

	return &Container{
		Config:  cfg,
		Invoker: invoker,
		Handler: handlers.NewGenerateHandler(invoker),
	}, nil
}
