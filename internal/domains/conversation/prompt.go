package conversation

import (
	"fmt"
	"strings"

	"github.com/yashvi-chat/yashvi/internal/domains/session"
)

// BuildPrompt assembles the persona prompt: preamble, every prior turn in
// submission order, the new user line, then the open assistant tag with no
// trailing content. History is concatenated whole; capping it by token
// count is an open item.
func BuildPrompt(preamble, userLabel, personaName string, history []session.Turn, userText string) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n")
	for _, t := range history {
		fmt.Fprintf(&b, "%s: %s\n%s: %s\n", userLabel, t.User, personaName, t.Assistant)
	}
	fmt.Fprintf(&b, "%s: %s\n%s:", userLabel, userText, personaName)
	return b.String()
}

// ExtractReply locates the newly generated turn in the raw model output.
// Generators echo the full prompt, so the segment after the LAST delimiter
// occurrence is the fresh turn. When the delimiter never appears
// (degenerate generation), everything after the echoed prompt is used.
func ExtractReply(raw, prompt, delimiter string) string {
	if i := strings.LastIndex(raw, delimiter); i >= 0 {
		return strings.TrimSpace(raw[i+len(delimiter):])
	}
	return strings.TrimSpace(strings.TrimPrefix(raw, prompt))
}
