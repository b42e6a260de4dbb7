// Package ingestion turns posted or fetched HTML into clean asset text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpaceRegex = regexp.MustCompile(`\s+`)
	blankRunRegex   = regexp.MustCompile(`\n\n\n+`)
	bulletMarkers   = []string{"- ", "* ", "• ", "· "}
)

// CleanText normalizes whitespace while keeping headings, bullets and paragraph breaks
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, " ", " ")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunRegex.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace. Bullet lines keep their indentation.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return innerSpaceRegex.ReplaceAllString(trimmed, " ")
	}

	body := innerSpaceRegex.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		indent := len(line) - len(trimmed)
		return strings.Repeat(" ", indent) + body
	}
	return body
}

func isBulletLine(trimmed string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}
