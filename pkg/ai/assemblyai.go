package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/meetinglens/meetinglens/pkg/config"
)

// AssemblyAIClient is a minimal AssemblyAI client used as an alternative
// transcription provider.
type AssemblyAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}

	base := "https://api.assemblyai.com"
	timeout := 30 * time.Second
	if cfg != nil {
		if cfg.BaseURL != "" {
			base = cfg.BaseURL
		}
		if cfg.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
		}
	}

	return &AssemblyAIClient{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

// UploadResponse is the response of /v2/upload.
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
}

// Upload streams audio bytes to AssemblyAI and returns the temporary URL.
func (c *AssemblyAIClient) Upload(ctx context.Context, r io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v2/upload", r)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("assemblyai upload returned status %d", resp.StatusCode)
	}

	var ur UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return "", err
	}
	return ur.UploadURL, nil
}

// TranscribeRequest is the payload for /v2/transcript.
type TranscribeRequest struct {
	AudioURL          string `json:"audio_url"`
	SpeakerLabels     bool   `json:"speaker_labels,omitempty"`
	LanguageDetection bool   `json:"language_detection,omitempty"`
}

// Utterance is one speaker turn. Start and End are milliseconds.
type Utterance struct {
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Transcript is a minimal transcript resource shape.
type Transcript struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Text       string      `json:"text"`
	Error      string      `json:"error,omitempty"`
	Utterances []Utterance `json:"utterances,omitempty"`
}

// Submit requests transcription of an uploaded audio URL and returns the
// transcript job id.
func (c *AssemblyAIClient) Submit(ctx context.Context, audioURL string) (string, error) {
	payload := TranscribeRequest{
		AudioURL:      audioURL,
		SpeakerLabels: true,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v2/transcript", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("assemblyai returned status %d", resp.StatusCode)
	}

	var tr Transcript
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	return tr.ID, nil
}

// GetTranscript fetches the current state of a transcript job.
func (c *AssemblyAIClient) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v2/transcript/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("assemblyai returned status %d", resp.StatusCode)
	}

	var tr Transcript
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, err
	}
	return &tr, nil
}
