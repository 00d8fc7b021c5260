package recipe

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	decimalEntityRe = regexp.MustCompile(`&#(\d+);`)
	hexEntityRe     = regexp.MustCompile(`&#[xX]([0-9a-fA-F]+);`)

	namedEntities = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
		"&apos;", "'",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// DecodeEntities resolves the small set of HTML entities the recipe
// backends actually emit. Anything it cannot decode passes through as-is.
func DecodeEntities(s string) string {
	s = namedEntities.Replace(s)
	s = decimalEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseInt(m[2:len(m)-1], 10, 32)
		if err != nil {
			return m
		}
		decoded, ok := entityRune(code)
		if !ok {
			return m
		}
		return decoded
	})
	s = hexEntityRe.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseInt(m[3:len(m)-1], 16, 32)
		if err != nil {
			return m
		}
		decoded, ok := entityRune(code)
		if !ok {
			return m
		}
		return decoded
	})
	return s
}

// entityRune rejects code points outside the Unicode range and surrogate
// halves, so those entities stay in the text verbatim.
func entityRune(code int64) (string, bool) {
	if code < 0 || code > 0x10FFFF {
		return "", false
	}
	if code >= 0xD800 && code <= 0xDFFF {
		return "", false
	}
	return string(rune(code)), true
}

// CleanLine decodes entities, collapses whitespace runs and trims.
func CleanLine(s string) string {
	s = DecodeEntities(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeLines cleans every line and drops the ones that end up empty.
// Order is preserved and the function never fails.
func NormalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned := CleanLine(line)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}
