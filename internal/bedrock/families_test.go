package bedrock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFamily(t *testing.T) {
	tests := []struct {
		modelID string
		want    string
	}{
		{"anthropic.claude-3-sonnet-20240229-v1:0", "anthropic"},
		{"anthropic.claude-instant-v1", "anthropic"},
		{"amazon.titan-text-express-v1", "titan"},
		{"meta.llama2-70b-chat-v1", "generic"},
		{"some.other.model", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.modelID, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveFamily(tt.modelID).name)
		})
	}
}

func TestFormatAnthropic(t *testing.T) {
	p := params{Prompt: "hello", MaxTokens: 100, Temperature: 0.7, TopP: 0.9}

	payload, err := formatAnthropic(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "bedrock-2023-05-31", decoded["anthropic_version"])
	assert.Equal(t, float64(100), decoded["max_tokens"])
	assert.Equal(t, 0.7, decoded["temperature"])
	assert.Equal(t, 0.9, decoded["top_p"])

	messages, ok := decoded["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	message := messages[0].(map[string]any)
	assert.Equal(t, "user", message["role"])
	assert.Equal(t, "hello", message["content"])
}

func TestFormatAnthropicDeterministic(t *testing.T) {
	p := params{Prompt: "same input", MaxTokens: 50, Temperature: 0.2, TopP: 0.5}

	first, err := formatAnthropic(p)
	require.NoError(t, err)
	second, err := formatAnthropic(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFormatTitan(t *testing.T) {
	p := params{Prompt: "hello", MaxTokens: 100, Temperature: 0.7, TopP: 0.9}

	payload, err := formatTitan(p)
	require.NoError(t, err)

	var decoded struct {
		InputText string `json:"inputText"`
		Config    struct {
			MaxTokenCount int     `json:"maxTokenCount"`
			Temperature   float64 `json:"temperature"`
			TopP          float64 `json:"topP"`
		} `json:"textGenerationConfig"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "hello", decoded.InputText)
	assert.Equal(t, 100, decoded.Config.MaxTokenCount)
	assert.Equal(t, 0.7, decoded.Config.Temperature)
	assert.Equal(t, 0.9, decoded.Config.TopP)
}

func TestFormatGeneric(t *testing.T) {
	p := params{Prompt: "hello", MaxTokens: 100, Temperature: 0.7, TopP: 0.9}

	payload, err := formatGeneric(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "hello", decoded["prompt"])
	assert.Equal(t, float64(100), decoded["max_tokens"])
}

func TestParseAnthropic(t *testing.T) {
	content, err := parseAnthropic([]byte(`{"content":[{"type":"text","text":"the reply"}],"usage":{"input_tokens":3}}`))
	require.NoError(t, err)
	assert.Equal(t, "the reply", content)
}

func TestParseAnthropicEmptyContent(t *testing.T) {
	_, err := parseAnthropic([]byte(`{"content":[]}`))
	assert.Error(t, err)
}

func TestParseTitan(t *testing.T) {
	content, err := parseTitan([]byte(`{"results":[{"outputText":"hello"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

func TestParseTitanNoResults(t *testing.T) {
	_, err := parseTitan([]byte(`{"results":[]}`))
	assert.Error(t, err)
}

func TestParseGeneric(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "completion key preferred",
			body: `{"completion":"from completion","text":"from text"}`,
			want: "from completion",
		},
		{
			name: "text fallback",
			body: `{"text":"fallback reply"}`,
			want: "fallback reply",
		},
		{
			name: "whole body fallback",
			body: `{"something":"else"}`,
			want: `{"something":"else"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := parseGeneric([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, content)
		})
	}
}

func TestParseGenericMalformed(t *testing.T) {
	_, err := parseGeneric([]byte(`not json`))
	assert.Error(t, err)
}
