// Package pathutil maps request paths to route templates for metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern pairs a dynamic route pattern with its label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns are evaluated in order.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/scraps/[^/]+$`), Template: "/scraps/:newsId"},
}

// knownStatic lists the fixed routes of the gateway.
var knownStatic = map[string]struct{}{
	"/":                    {},
	"/health":              {},
	"/live":                {},
	"/metrics":             {},
	"/scraps":              {},
	"/summaries/parse":     {},
	"/briefings/text":      {},
	"/briefings/voice":     {},
	"/briefings/schedules": {},
	"/mypage":              {},
}

// UnmatchedLabel is the label for paths that match no route, so scanners
// probing random URLs cannot grow the label set.
const UnmatchedLabel = "/:unmatched"

// NormalizePath returns the route template for path.
//
//	NormalizePath("/scraps/n-123")   // "/scraps/:newsId"
//	NormalizePath("/scraps?q=ai")    // "/scraps"
//	NormalizePath("/mypage/")        // "/mypage"
//	NormalizePath("/wp-login.php")   // "/:unmatched"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownStatic[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return UnmatchedLabel
}

// GetExpectedCardinality returns the number of distinct path labels.
func GetExpectedCardinality() int {
	return len(knownStatic) + len(pathPatterns) + 1
}
