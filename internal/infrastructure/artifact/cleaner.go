package artifact

import (
	"strings"

	"golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	MaxOutputSize int
}

// DefaultCleanConfig drops markup that does not help reading a failed page.
// Test hooks such as data-test are kept because selectors rely on them.
var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe", "link", "meta",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
	},
	MaxOutputSize: 512_000,
}

// CleanHTML strips scripts, comments and noisy attributes from a captured
// document. Input that fails to parse is returned unchanged.
func CleanHTML(rawHTML string, cfg *CleanConfig) string {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	cleanNode(doc, cfg)

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return rawHTML
	}
	return truncate(sb.String(), cfg.MaxOutputSize)
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && isOneOf(c.Data, cfg.TagsToRemove...):
			n.RemoveChild(c)
		default:
			if c.Type == html.ElementNode {
				c.Attr = filterAttributes(c.Attr, cfg)
			}
			cleanNode(c, cfg)
		}
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg *CleanConfig) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range attrs {
		if isOneOf(attr.Key, cfg.AttrsToRemove...) || strings.HasPrefix(attr.Key, "on") {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func truncate(s string, maxSize int) string {
	if maxSize > 0 && len(s) > maxSize {
		return s[:maxSize] + "\n<!-- truncated -->"
	}
	return s
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
