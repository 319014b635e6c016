package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnswerService(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewAnswerService(Config{})
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		s, err := NewAnswerService(Config{APIKey: "sk"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, s.ModelName())
	})
}

func TestAnswerService_Generate(t *testing.T) {
	t.Run("returns generated answer", func(t *testing.T) {
		var got chatCompletionRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/chat/completions", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"choices":[{"message":{"content":" This segment covers pod scheduling. "}}]}`))
		}))
		defer server.Close()

		s, err := NewAnswerService(Config{APIKey: "sk", BaseURL: server.URL})
		require.NoError(t, err)

		answer, err := s.Generate(context.Background(), "how does scheduling work", "K8s Deep Dive", "the scheduler assigns pods")
		require.NoError(t, err)
		assert.Equal(t, "This segment covers pod scheduling.", answer)

		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Contains(t, got.Messages[1].Content, "how does scheduling work")
		assert.Contains(t, got.Messages[1].Content, "K8s Deep Dive")
	})

	t.Run("falls back on API failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		s, err := NewAnswerService(Config{APIKey: "sk", BaseURL: server.URL})
		require.NoError(t, err)

		answer, err := s.Generate(context.Background(), "q", "t", "s")
		require.NoError(t, err)
		assert.Equal(t, FallbackAnswer, answer)
	})

	t.Run("falls back when service is unreachable", func(t *testing.T) {
		s, err := NewAnswerService(Config{APIKey: "sk", BaseURL: "http://127.0.0.1:1"})
		require.NoError(t, err)

		answer, err := s.Generate(context.Background(), "q", "t", "s")
		require.NoError(t, err)
		assert.Equal(t, FallbackAnswer, answer)
	})
}
