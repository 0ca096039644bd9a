// Package gtts synthesizes speech through the Google Translate TTS surface,
// parameterized by language and a regional tld for the accent.
package gtts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/yashvi-chat/yashvi/pkg/Logger"
)

var ErrTTSUnavailable = errors.New("tts backend unavailable")

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger.Logger
}

// New builds a client against translate.google.<tld>. A non-empty baseURL
// overrides the derived endpoint (tests point it at a local server).
func New(tld, baseURL string, logger *Logger.Logger) *Client {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://translate.google.%s", tld)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Synthesize writes an MP3 rendering of text in the given language to a
// fresh temp file and returns its path. The file is not deleted here;
// short-lived processes leave cleanup to the OS scratch area.
func (c *Client) Synthesize(ctx context.Context, text, lang string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrTTSUnavailable)
	}

	u, err := url.Parse(c.baseURL + "/translate_tts")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTTSUnavailable, err)
	}
	q := u.Query()
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", text)
	q.Set("tl", lang)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTTSUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTTSUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Errorf("tts backend status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", ErrTTSUnavailable, resp.StatusCode)
	}

	f, err := os.CreateTemp("", "yashvi-tts-*.mp3")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTTSUnavailable, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTTSUnavailable, err)
	}

	c.logger.Debugf("synthesized %d chars to %s (lang=%s)", len(text), f.Name(), lang)
	return f.Name(), nil
}
