package genai

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern          = regexp.MustCompile(`https?://\S+`)
	fencedCodePattern   = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern   = regexp.MustCompile("`[^`]*`")
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	fenceMarkerPattern  = regexp.MustCompile("(?m)^```[a-zA-Z]*$")
)

// CleanMessage strips markup and symbol noise from model text so
// interviewer-facing messages read like a person wrote them.
func CleanMessage(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	raw = fencedCodePattern.ReplaceAllString(raw, " ")
	raw = inlineCodePattern.ReplaceAllString(raw, " ")
	raw = markdownLinkPattern.ReplaceAllString(raw, "$1")
	raw = urlPattern.ReplaceAllString(raw, " ")

	raw = strings.NewReplacer(
		"*", " ",
		"_", " ",
		"#", " ",
		"~", " ",
		"<", " ",
		">", " ",
		"|", " ",
	).Replace(raw)

	var b strings.Builder
	b.Grow(len(raw))
	prevSpace := true

	for _, r := range raw {
		switch {
		case r == '‍' || r == '️' || r == '⃣':
			continue
		case unicode.IsSpace(r):
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsControl(r):
			continue
		case unicode.In(r, unicode.So, unicode.Sk):
			// Emoji and decorative glyphs have no place in an interview prompt.
			continue
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

// ExtractJSON returns the first balanced JSON object found in raw, after
// removing code-fence markers that models like to wrap JSON in.
func ExtractJSON(raw string) string {
	raw = fenceMarkerPattern.ReplaceAllString(raw, "")

	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}
