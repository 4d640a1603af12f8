package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"bedrock-proxy-api/internal/models"
	"bedrock-proxy-api/internal/validation"
)

// ModelInvoker performs one model call per request.
type ModelInvoker interface {
	Invoke(ctx context.Context, req *models.GenerationRequest) (*models.InvocationResult, *models.InvocationError)
}

// GenerateHandler orchestrates validate -> invoke -> envelope for one
// inbound trigger event.
type GenerateHandler struct {
	invoker ModelInvoker
}

// NewGenerateHandler creates a new generate handler
func NewGenerateHandler(invoker ModelInvoker) *GenerateHandler {
	return &GenerateHandler{invoker: invoker}
}

// Handle processes one API Gateway event end-to-end. It always returns a
// well-formed envelope; nothing escapes to the trigger layer.
func (h *GenerateHandler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse) {
	start := time.Now()
	requestID := lambdaRequestID(ctx)

	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("Unexpected error in handler")
			resp = newResponse(http.StatusInternalServerError, models.ErrorResponse{
				Error: &models.InvocationError{
					Code:    "InternalServerError",
					Message: "An unexpected error occurred",
				},
				Metadata: buildMetadata(start, requestID),
			})
		}
	}()

	req, result := validation.ValidateRequest(event.HTTPMethod, event.Body)
	if !result.OK {
		// Expected client errors, not failures
		logrus.WithField("reason", result.Message).Warn("Rejected request")
		return newResponse(http.StatusBadRequest, models.ValidationErrorResponse{
			Error:     true,
			Message:   result.Message,
			Timestamp: time.Now().Unix(),
		})
	}

	if result.Preflight {
		return newResponse(http.StatusOK, models.PreflightResponse{
			Message:   "CORS preflight successful",
			Timestamp: time.Now().Unix(),
		})
	}

	invocation, invErr := h.invoker.Invoke(ctx, req)
	meta := buildMetadata(start, requestID)

	if invErr != nil {
		logrus.WithFields(logrus.Fields{
			"code":  invErr.Code,
			"error": invErr.Message,
		}).Error("Failed to process request")
		return newResponse(http.StatusInternalServerError, models.ErrorResponse{
			Error:    invErr,
			Metadata: meta,
		})
	}

	logrus.WithField("execution_time_ms", meta.ExecutionTimeMS).Info("Successfully processed request")
	return newResponse(http.StatusOK, models.GenerationResponse{
		Success:  true,
		Content:  invocation.Content,
		ModelID:  invocation.ModelID,
		Usage:    invocation.Usage,
		Metadata: meta,
	})
}

// buildMetadata computes elapsed milliseconds rounded to 2 decimal places.
func buildMetadata(start time.Time, requestID string) models.Metadata {
	elapsed := math.Round(float64(time.Since(start).Microseconds())/10) / 100

	meta := models.Metadata{
		ExecutionTimeMS: elapsed,
		Timestamp:       time.Now().Unix(),
	}
	if requestID != "" {
		meta.RequestID = &requestID
	}
	return meta
}

func lambdaRequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return lc.AwsRequestID
	}
	return ""
}
