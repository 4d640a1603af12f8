package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// corsHeaders is the fixed header set attached to every response,
// success or failure.
func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
	}
}

// newResponse builds a standardized API Gateway response.
func newResponse(statusCode int, body any) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode response body")
		statusCode = http.StatusInternalServerError
		encoded = []byte(`{"success":false,"error":{"code":"InternalServerError","message":"An unexpected error occurred"}}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    corsHeaders(),
		Body:       string(encoded),
	}
}
