// Package audio renders synthesized clips for the UI layer.
package audio

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
)

// Embed inlines the MP3 at path into an autoplaying audio element. Inlining
// the bytes as a data URI means the temp file needs no serving route.
func Embed(path string) (template.HTML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	tag := fmt.Sprintf(
		`<audio autoplay controls src="data:audio/mp3;base64,%s"></audio>`,
		encoded,
	)
	return template.HTML(tag), nil
}
