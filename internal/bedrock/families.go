package bedrock

import (
	"encoding/json"
	"errors"
	"strings"
)

// anthropicVersion is the fixed API version Bedrock expects for Claude models.
const anthropicVersion = "bedrock-2023-05-31"

// params are the effective generation parameters after defaults are applied.
type params struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// family is a request formatter / response parser pair for one Bedrock
// model family. Each provider documents its own request and response JSON,
// so both directions branch together.
type family struct {
	name   string
	format func(p params) ([]byte, error)
	parse  func(body []byte) (string, error)
}

// resolveFamily picks the codec for a model id by substring match. Called
// once at invoker construction, not per request.
func resolveFamily(modelID string) family {
	switch {
	case strings.Contains(modelID, "anthropic"):
		return family{name: "anthropic", format: formatAnthropic, parse: parseAnthropic}
	case strings.Contains(modelID, "amazon.titan"):
		return family{name: "titan", format: formatTitan, parse: parseTitan}
	default:
		return family{name: "generic", format: formatGeneric, parse: parseGeneric}
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p"`
	Messages         []anthropicMessage `json:"messages"`
}

func formatAnthropic(p params) ([]byte, error) {
	return json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        p.MaxTokens,
		Temperature:      p.Temperature,
		TopP:             p.TopP,
		Messages:         []anthropicMessage{{Role: "user", Content: p.Prompt}},
	})
}

func parseAnthropic(body []byte) (string, error) {
	var resp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", errors.New("anthropic response has no content blocks")
	}
	return resp.Content[0].Text, nil
}

type titanGenerationConfig struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"topP"`
}

type titanRequest struct {
	InputText            string                `json:"inputText"`
	TextGenerationConfig titanGenerationConfig `json:"textGenerationConfig"`
}

func formatTitan(p params) ([]byte, error) {
	return json.Marshal(titanRequest{
		InputText: p.Prompt,
		TextGenerationConfig: titanGenerationConfig{
			MaxTokenCount: p.MaxTokens,
			Temperature:   p.Temperature,
			TopP:          p.TopP,
		},
	})
}

func parseTitan(body []byte) (string, error) {
	var resp struct {
		Results []struct {
			OutputText string `json:"outputText"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", errors.New("titan response has no results")
	}
	return resp.Results[0].OutputText, nil
}

type genericRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

func formatGeneric(p params) ([]byte, error) {
	return json.Marshal(genericRequest{
		Prompt:      p.Prompt,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
		TopP:        p.TopP,
	})
}

// parseGeneric tries the completion key, then text, then falls back to the
// whole response body so an unknown model still yields something usable.
func parseGeneric(body []byte) (string, error) {
	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if s, ok := resp["completion"].(string); ok {
		return s, nil
	}
	if s, ok := resp["text"].(string); ok {
		return s, nil
	}
	return string(body), nil
}
