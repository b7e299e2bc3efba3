// Package htmltext extracts plain text from HTML fragments.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip returns the text content of an HTML fragment, with script and
// style bodies dropped and runs of whitespace collapsed to single spaces.
// Plain text without markup passes through unchanged apart from the
// whitespace normalization.
func Strip(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var sb strings.Builder
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return collapse(sb.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if skippable(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skippable(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(z.Text())
				sb.WriteByte(' ')
			}
		}
	}
}

func skippable(tag string) bool {
	return tag == "script" || tag == "style"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
