package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetinglens/meetinglens/pkg/config"
)

func newTestAssemblyAIClient(baseURL string) *AssemblyAIClient {
	return NewAssemblyAIClient(&config.AssemblyAIConfig{
		APIKey:         "aai-test",
		BaseURL:        baseURL,
		TimeoutSeconds: 5,
	})
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/upload", r.URL.Path)
		assert.Equal(t, "aai-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		w.Write([]byte(`{"upload_url": "https://cdn.example.com/upload/abc"}`))
	}))
	defer server.Close()

	client := newTestAssemblyAIClient(server.URL)
	url, err := client.Upload(context.Background(), bytes.NewReader([]byte("audio bytes")))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/upload/abc", url)
}

func TestSubmit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/transcript", r.URL.Path)

		var req TranscribeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://cdn.example.com/upload/abc", req.AudioURL)
		assert.True(t, req.SpeakerLabels)

		w.Write([]byte(`{"id": "job-1", "status": "queued"}`))
	}))
	defer server.Close()

	client := newTestAssemblyAIClient(server.URL)
	id, err := client.Submit(context.Background(), "https://cdn.example.com/upload/abc")
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)
}

func TestGetTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/transcript/job-1", r.URL.Path)

		w.Write([]byte(`{
			"id": "job-1",
			"status": "completed",
			"text": "hello there",
			"utterances": [
				{"text": "hello there", "speaker": "A", "start": 0, "end": 1800, "confidence": 0.93}
			]
		}`))
	}))
	defer server.Close()

	client := newTestAssemblyAIClient(server.URL)
	tr, err := client.GetTranscript(context.Background(), "job-1")
	require.NoError(t, err)

	assert.Equal(t, "completed", tr.Status)
	require.Len(t, tr.Utterances, 1)
	assert.Equal(t, "A", tr.Utterances[0].Speaker)
	assert.Equal(t, 1800, tr.Utterances[0].End)
	assert.InDelta(t, 0.93, tr.Utterances[0].Confidence, 1e-9)
}

func TestSubmitServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestAssemblyAIClient(server.URL)
	_, err := client.Submit(context.Background(), "https://cdn.example.com/upload/abc")
	assert.Error(t, err)
}
