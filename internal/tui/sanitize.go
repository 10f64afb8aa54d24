package tui

import (
	"html"
	"regexp"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

var (
	diagnosticPolicy = bluemonday.StrictPolicy()
	// htmlMarkup matches a doctype, a closing tag or a void break: plain-text
	// diagnostics such as "expected <relation>" never contain these.
	htmlMarkup = regexp.MustCompile(`(?i)<!doctype|</[a-z][a-z0-9]*\s*>|<br\s*/?>`)
)

// sanitizeDiagnostic turns server-supplied text into something safe to print
// in the terminal. Markup is stripped only from HTML documents (some proxies
// answer with HTML error pages); plain text keeps every token. Escape
// sequences are always removed.
func sanitizeDiagnostic(s string) string {
	if looksLikeHTML(s) {
		s = diagnosticPolicy.Sanitize(s)
		s = html.UnescapeString(s)
	}
	s = xansi.Strip(s)
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func looksLikeHTML(s string) bool {
	return htmlMarkup.MatchString(s)
}
