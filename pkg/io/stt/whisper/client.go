// Package whisper talks to a Whisper ASR webservice for speech-to-text.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

// TranscriptionResponse is the JSON body the ASR service returns.
type TranscriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger.Logger
}

func New(baseURL string, logger *Logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Transcribe uploads the audio clip at path and returns the transcript.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("failed to open audio clip: %w", err)
	}
	defer audio.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("audio_file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	requestURL := fmt.Sprintf("%s/asr?encode=true&task=transcribe&language=en&output=json", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("asr service error (status %d): %s", resp.StatusCode, string(responseBody))
		return "", fmt.Errorf("asr service returned status %d", resp.StatusCode)
	}

	var transcription TranscriptionResponse
	if err := json.Unmarshal(responseBody, &transcription); err != nil {
		// some deployments answer with the bare transcript
		text := strings.TrimSpace(string(responseBody))
		if text == "" {
			return "", fmt.Errorf("failed to decode asr response: %w", err)
		}
		c.logger.Debugf("asr returned plain text transcript")
		return text, nil
	}

	c.logger.Debugf("asr transcript: %s (language: %s)", transcription.Text, transcription.Language)
	return strings.TrimSpace(transcription.Text), nil
}
