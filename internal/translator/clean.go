package translator

import (
	"regexp"
	"strings"
)

var (
	reFenceStart = regexp.MustCompile("(?is)^\\s*```(?:[a-z]+)?\\s*")
	reFenceEnd   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"“", "”"}, // “ ”
	{"«", "»"}, // « »
}

// cleanTranslation quita BOM, fences ``` y un nivel de comillas envolventes
// que algunos modelos añaden pese al prompt.
func cleanTranslation(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	s = reFenceStart.ReplaceAllString(s, "")
	s = reFenceEnd.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	for _, pair := range quotePairs {
		left, right := pair[0], pair[1]
		if len(s) > len(left)+len(right) && strings.HasPrefix(s, left) && strings.HasSuffix(s, right) {
			s = strings.TrimSpace(s[len(left) : len(s)-len(right)])
			break
		}
	}
	return s
}
