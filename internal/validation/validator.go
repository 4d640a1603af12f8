package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"bedrock-proxy-api/internal/models"
)

// Result is the outcome of validating one inbound request.
type Result struct {
	OK        bool
	Message   string
	Preflight bool
}

var validate = validator.New()

func init() {
	// Report json field names instead of Go struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// fieldMessages are the messages returned when a known body field fails
// its type or range check.
var fieldMessages = map[string]string{
	"max_tokens":  "max_tokens must be a positive integer",
	"temperature": "temperature must be a number between 0 and 1",
	"top_p":       "top_p must be a number between 0 and 1",
}

// ValidateRequest checks the method and body of one inbound request.
// OPTIONS requests are reported as a valid preflight with no params;
// every other accepted request yields the parsed generation params.
// Validation never panics past this boundary.
func ValidateRequest(method, body string) (*models.GenerationRequest, Result) {
	if method == http.MethodOptions {
		return nil, Result{OK: true, Message: "CORS preflight", Preflight: true}
	}

	if method != http.MethodPost {
		return nil, Result{Message: "Only POST method is supported"}
	}

	if body == "" {
		return nil, Result{Message: "Request body is required"}
	}

	var req models.GenerationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		// A type mismatch on a known field gets that field's message so the
		// caller sees the same contract a post-parse type check would give.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if msg, ok := fieldMessages[typeErr.Field]; ok {
				return nil, Result{Message: msg}
			}
		}
		return nil, Result{Message: "Invalid JSON in request body"}
	}

	if req.Prompt == "" {
		return nil, Result{Message: "Prompt is required in request body"}
	}

	if err := validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			if msg, ok := fieldMessages[fieldErrs[0].Field()]; ok {
				return nil, Result{Message: msg}
			}
		}
		logrus.WithError(err).Error("Error validating request")
		return nil, Result{Message: "Internal validation error"}
	}

	return &req, Result{OK: true, Message: "Valid request"}
}
