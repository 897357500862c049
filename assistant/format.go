package assistant

import "strings"

const indentSize = 2

// Reindent applies cosmetic two-space indentation to a snippet, keyed off
// braces, begin/end keywords, and markup tags. It never changes tokens, only
// leading whitespace. Strictly cosmetic: a line containing both "{" and "}"
// is treated as opening, matching the original behavior.
func Reindent(code string) string {
	lines := strings.Split(code, "\n")
	level := 0

	out := make([]string, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.Contains(trimmed, "}") || strings.Contains(trimmed, "end") || strings.Contains(trimmed, "</") {
			level = max(0, level-1)
		}

		if trimmed == "" {
			out[i] = ""
		} else {
			out[i] = strings.Repeat(" ", level*indentSize) + trimmed
		}

		if strings.Contains(trimmed, "{") || strings.Contains(trimmed, "begin") || strings.Contains(trimmed, "<") {
			level++
		}
	}

	return strings.Join(out, "\n")
}
