// Package docs holds the embedded help topics shown by `httag docs` and the
// TUI help screen.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"httag-cli/internal/nav"
)

//go:embed content/*.md
var contentFS embed.FS

// Placeholders in topic text for the platform's accelerator labels.
const (
	modPlaceholder = "{{mod}}"
	altPlaceholder = "{{alt}}"
)

func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []string{}
	}
	topics := make([]string, 0, len(entries))
	for _, p := range entries {
		base := path.Base(p)
		if topic := strings.TrimSuffix(base, path.Ext(base)); topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

// Get returns a topic with the accelerator placeholders filled in for p.
func Get(topic string, p nav.Platform) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	r := strings.NewReplacer(modPlaceholder, nav.ModifierLabel(p), altPlaceholder, nav.AltLabel(p))
	return r.Replace(string(b)), true
}
