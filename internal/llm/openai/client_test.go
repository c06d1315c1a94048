package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/internal/llm"
)

func TestGenerate_OK(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  Name: Jane Doe\nLocation: NYC  "}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/", ResponseFormat: llm.FormatJSON}, nil)
	answer, err := c.Generate(context.Background(), "extract please")
	require.NoError(t, err)
	assert.Equal(t, "Name: Jane Doe\nLocation: NYC", answer)

	assert.Equal(t, DefaultModel, got["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	msgs := got["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "extract please", msgs[0].(map[string]any)["content"])
	assert.Equal(t, "openai:"+DefaultModel, c.Name())
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"quota", http.StatusTooManyRequests, `{"error":"quota"}`, "429"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
		{"bad json", http.StatusOK, `not json`, "decode"},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":" "}}]}`, "empty content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL}, nil).Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_MissingKey(t *testing.T) {
	_, err := NewClient(Config{}, nil).Generate(context.Background(), "p")
	require.Error(t, err)
}
