package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TranscribeClient proxies recorded audio to a whisper-style inference
// endpoint and returns the transcribed text.
type TranscribeClient struct {
	APIURL string
	Token  string // optional bearer token
	Client *http.Client
}

func NewTranscribeClient(apiURL, token string) *TranscribeClient {
	return &TranscribeClient{
		APIURL: apiURL,
		Token:  token,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *TranscribeClient) Configured() bool {
	return t.APIURL != ""
}

func (t *TranscribeClient) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	if !t.Configured() {
		return "", fmt.Errorf("transcription endpoint is not configured")
	}
	if contentType == "" {
		contentType = "audio/webm"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.APIURL, bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	if t.Token != "" {
		req.Header.Set("Authorization", "Bearer "+t.Token)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcription API error: %d %s", resp.StatusCode, snippet)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcription API returned malformed JSON: %v", err)
	}
	return out.Text, nil
}
