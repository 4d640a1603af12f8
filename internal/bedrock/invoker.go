package bedrock

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"bedrock-proxy-api/internal/config"
	"bedrock-proxy-api/internal/models"
)

// ModelAPI is the slice of the Bedrock runtime client used by the invoker.
// *bedrockruntime.Client satisfies it; tests substitute a fake.
type ModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

const (
	internalErrorCode    = "InternalError"
	internalErrorMessage = "An unexpected error occurred"
)

func internalError() *models.InvocationError {
	return &models.InvocationError{Code: internalErrorCode, Message: internalErrorMessage}
}

// Invoker sends generation requests to one configured Bedrock model and
// normalizes the family-specific response into an InvocationResult.
type Invoker struct {
	client ModelAPI
	cfg    config.BedrockConfig
	codec  family
}

// NewInvoker creates an invoker for the configured model. The model family
// is resolved once here rather than re-matched per call.
func NewInvoker(client ModelAPI, cfg config.BedrockConfig) *Invoker {
	return &Invoker{
		client: client,
		cfg:    cfg,
		codec:  resolveFamily(cfg.ModelID),
	}
}

// Invoke performs exactly one model call with no retries. Provider-reported
// errors come back with the provider's code and message verbatim; any other
// failure is reported as a generic internal error.
func (i *Invoker) Invoke(ctx context.Context, req *models.GenerationRequest) (*models.InvocationResult, *models.InvocationError) {
	p := params{
		Prompt:      req.Prompt,
		MaxTokens:   i.cfg.MaxTokens,
		Temperature: i.cfg.Temperature,
		TopP:        i.cfg.TopP,
	}
	if req.MaxTokens != nil {
		p.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		p.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		p.TopP = *req.TopP
	}

	payload, err := i.codec.format(p)
	if err != nil {
		logrus.WithError(err).Error("Failed to build model payload")
		return nil, internalError()
	}

	logrus.WithFields(logrus.Fields{
		"model_id": i.cfg.ModelID,
		"family":   i.codec.name,
	}).Info("Invoking Bedrock model")
	logrus.WithField("payload", string(payload)).Debug("Bedrock request body")

	out, err := i.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(i.cfg.ModelID),
		Body:        payload,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			logrus.WithFields(logrus.Fields{
				"code":  apiErr.ErrorCode(),
				"error": apiErr.ErrorMessage(),
			}).Error("Bedrock API error")
			return nil, &models.InvocationError{
				Code:    apiErr.ErrorCode(),
				Message: apiErr.ErrorMessage(),
			}
		}
		logrus.WithError(err).Error("Unexpected error invoking Bedrock")
		return nil, internalError()
	}

	content, err := i.codec.parse(out.Body)
	if err != nil {
		logrus.WithError(err).Error("Failed to parse Bedrock response")
		return nil, internalError()
	}

	usage := map[string]any{}
	var envelope struct {
		Usage map[string]any `json:"usage"`
	}
	if err := json.Unmarshal(out.Body, &envelope); err == nil && envelope.Usage != nil {
		usage = envelope.Usage
	}

	result := &models.InvocationResult{
		Content: content,
		ModelID: i.cfg.ModelID,
		Usage:   usage,
	}
	if requestID, ok := awsmiddleware.GetRequestIDMetadata(out.ResultMetadata); ok {
		result.RequestID = requestID
	}

	return result, nil
}
