package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/doable/internal/model"
)

// mockHTTPClient mocks HTTP requests
type mockHTTPClient struct {
	response *http.Response
	err      error
	calls    int
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.response, m.err
}

// capturingHTTPClient records the outgoing request for shape assertions
type capturingHTTPClient struct {
	req      *http.Request
	body     []byte
	response *http.Response
}

func (m *capturingHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.req = req
	if req.Body != nil {
		m.body, _ = io.ReadAll(req.Body)
	}
	return m.response, nil
}

func createMockAPIResponse(text string) *http.Response {
	resp := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
	body, _ := json.Marshal(resp)
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
}

func createRawAPIResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func newTestClient(httpClient HTTPClient) *Client {
	return NewClient(httpClient, slog.Default(), "test-key", "test-model")
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		response *http.Response
		httpErr  error
		want     []string
	}{
		{
			name:     "structured array",
			response: createMockAPIResponse(`["Book flight","Book hotel","Pack bags"]`),
			want:     []string{"Book flight", "Book hotel", "Pack bags"},
		},
		{
			name:     "array wrapped in code fences",
			response: createMockAPIResponse("```json\n[\"Choose venue\",\"Send invites\"]\n```"),
			want:     []string{"Choose venue", "Send invites"},
		},
		{
			name:     "blank entries dropped",
			response: createMockAPIResponse(`["Real step","   ",""]`),
			want:     []string{"Real step"},
		},
		{
			name:     "unparseable response",
			response: createMockAPIResponse("here are some ideas: flights, hotels"),
			want:     nil,
		},
		{
			name:    "transport error",
			httpErr: errors.New("network error"),
			want:    nil,
		},
		{
			name:     "server error",
			response: createRawAPIResponse(500, "boom"),
			want:     nil,
		},
		{
			name:     "empty candidates",
			response: createRawAPIResponse(200, `{"candidates":[]}`),
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&mockHTTPClient{response: tt.response, err: tt.httpErr})

			got := c.Decompose(context.Background(), "Plan trip")

			if len(tt.want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSuggestPriority(t *testing.T) {
	tests := []struct {
		name     string
		response *http.Response
		httpErr  error
		want     model.Priority
	}{
		{
			name:     "high",
			response: createMockAPIResponse("High"),
			want:     model.PriorityHigh,
		},
		{
			name:     "medium",
			response: createMockAPIResponse("Medium"),
			want:     model.PriorityMedium,
		},
		{
			name:     "low",
			response: createMockAPIResponse("Low"),
			want:     model.PriorityLow,
		},
		{
			name:     "surrounding whitespace trimmed",
			response: createMockAPIResponse("  High\n"),
			want:     model.PriorityHigh,
		},
		{
			name:     "unexpected wording defaults to low",
			response: createMockAPIResponse("URGENT"),
			want:     model.PriorityLow,
		},
		{
			name:     "wrong case defaults to low",
			response: createMockAPIResponse("high"),
			want:     model.PriorityLow,
		},
		{
			name:    "transport failure defaults to medium",
			httpErr: errors.New("network error"),
			want:    model.PriorityMedium,
		},
		{
			name:     "server error defaults to medium",
			response: createRawAPIResponse(503, "unavailable"),
			want:     model.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&mockHTTPClient{response: tt.response, err: tt.httpErr})

			got := c.SuggestPriority(context.Background(), "Pay rent")

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMotivate(t *testing.T) {
	tests := []struct {
		name     string
		response *http.Response
		httpErr  error
		want     string
	}{
		{
			name:     "model text returned verbatim",
			response: createMockAPIResponse("Five tasks? You will crush them."),
			want:     "Five tasks? You will crush them.",
		},
		{
			name:     "empty model text falls back",
			response: createMockAPIResponse(""),
			want:     emptyMotivation,
		},
		{
			name:     "whitespace-only model text falls back",
			response: createMockAPIResponse("  \n"),
			want:     emptyMotivation,
		},
		{
			name:    "transport failure falls back",
			httpErr: errors.New("network error"),
			want:    fallbackMotivation,
		},
		{
			name:     "server error falls back",
			response: createRawAPIResponse(429, "rate limited"),
			want:     fallbackMotivation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&mockHTTPClient{response: tt.response, err: tt.httpErr})

			got := c.Motivate(context.Background(), 5)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissingAPIKeySkipsRequests(t *testing.T) {
	httpClient := &mockHTTPClient{response: createMockAPIResponse("High")}
	c := NewClient(httpClient, slog.Default(), "", "test-model")

	assert.Empty(t, c.Decompose(context.Background(), "Plan trip"))
	assert.Equal(t, model.PriorityMedium, c.SuggestPriority(context.Background(), "Plan trip"))
	assert.Equal(t, fallbackMotivation, c.Motivate(context.Background(), 3))
	assert.Equal(t, 0, httpClient.calls)
}

func TestDecomposeRequestShape(t *testing.T) {
	httpClient := &capturingHTTPClient{response: createMockAPIResponse(`["a","b","c"]`)}
	c := newTestClient(httpClient)

	c.Decompose(context.Background(), "Plan trip")

	require.NotNil(t, httpClient.req)
	assert.Equal(t, "POST", httpClient.req.Method)
	assert.Contains(t, httpClient.req.URL.String(), "test-model:generateContent")
	assert.Equal(t, "test-key", httpClient.req.Header.Get("x-goog-api-key"))
	assert.Equal(t, "application/json", httpClient.req.Header.Get("Content-Type"))

	var req generateRequest
	require.NoError(t, json.Unmarshal(httpClient.body, &req))
	require.Len(t, req.Contents, 1)
	assert.Contains(t, req.Contents[0].Parts[0].Text, "Plan trip")
	require.NotNil(t, req.SystemInstruction)
	require.NotNil(t, req.GenerationConfig)
	assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
	require.NotNil(t, req.GenerationConfig.ResponseSchema)
	assert.Equal(t, "ARRAY", req.GenerationConfig.ResponseSchema.Type)
	assert.Equal(t, "STRING", req.GenerationConfig.ResponseSchema.Items.Type)
}

func TestMotivateRequestCarriesPendingCount(t *testing.T) {
	httpClient := &capturingHTTPClient{response: createMockAPIResponse("Go get them.")}
	c := newTestClient(httpClient)

	c.Motivate(context.Background(), 7)

	var req generateRequest
	require.NoError(t, json.Unmarshal(httpClient.body, &req))
	require.Len(t, req.Contents, 1)
	assert.Contains(t, req.Contents[0].Parts[0].Text, "7 pending tasks")
	assert.Nil(t, req.GenerationConfig)
}

func TestParseJSONResponse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "plain JSON",
			input: `["a","b"]`,
		},
		{
			name:  "JSON in code block",
			input: "```json\n[\"a\",\"b\"]\n```",
		},
		{
			name:  "JSON in code block without language",
			input: "```\n[\"a\",\"b\"]\n```",
		},
		{
			name:    "invalid JSON",
			input:   "not json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result []string
			err := parseJSONResponse(tt.input, &result)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, []string{"a", "b"}, result)
			}
		})
	}
}
