package markdown

import "strings"

// See https://core.telegram.org/bots/api#markdownv2-style.
const specialChars = "_*[]()~`>#+-=|{}.!\\"

var specialCharLookup = func() [256]bool {
	var m [256]bool
	for _, c := range []byte(specialChars) {
		m[c] = true
	}
	return m
}()

// EscapeV2 escapes text so Telegram renders it literally in MarkdownV2 mode.
func EscapeV2(text string) string {
	n := 0
	for i := range len(text) {
		if specialCharLookup[text[i]] {
			n++
		}
	}
	if n == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + n)

	for i := range len(text) {
		c := text[i]
		if specialCharLookup[c] {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}

func Bold(text string) string {
	return "*" + EscapeV2(text) + "*"
}
