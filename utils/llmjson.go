package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceOpenRe   = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceCloseRe  = regexp.MustCompile("\\s*```$")
	lineCommentRe = regexp.MustCompile(`(?m)^\s*//.*$`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSONObject pulls the first JSON object out of LLM output and decodes
// it into v. Model replies routinely wrap JSON in markdown fences, prepend
// prose, or emit trailing commas; each repair is attempted in order and the
// function only fails when nothing decodable remains.
func ExtractJSONObject(content string, v any) bool {
	s := strings.TrimSpace(content)
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")

	// Narrow to the outermost {...} span if one exists.
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	if json.Unmarshal([]byte(s), v) == nil {
		return true
	}

	// Repair pass: drop // comments, then trailing commas.
	repaired := lineCommentRe.ReplaceAllString(s, "")
	repaired = trailingComma.ReplaceAllString(repaired, "$1")
	return json.Unmarshal([]byte(repaired), v) == nil
}
