// Package vectorstore holds the naming contract shared by every
// vector store implementation. One collection exists per indexed site.
package vectorstore

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxNameLen caps collection names for store compatibility.
const MaxNameLen = 50

var (
	invalidCharRe  = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	leadingJunkRe  = regexp.MustCompile(`^[^a-zA-Z0-9]+`)
	trailingJunkRe = regexp.MustCompile(`[^a-zA-Z0-9]+$`)
)

// CollectionName derives a deterministic collection name from the
// domain of a source URL: the leading "www." is stripped, characters
// outside [A-Za-z0-9.-] become hyphens, leading/trailing
// non-alphanumerics are trimmed, names under 3 characters get a
// "site-" prefix, and the result is capped at MaxNameLen characters.
func CollectionName(sourceURL string) string {
	name := ""
	if u, err := url.Parse(sourceURL); err == nil {
		name = u.Host
	}
	name = strings.TrimPrefix(name, "www.")
	name = invalidCharRe.ReplaceAllString(name, "-")
	name = leadingJunkRe.ReplaceAllString(name, "")
	name = trailingJunkRe.ReplaceAllString(name, "")
	if len(name) < 3 {
		if name == "" {
			name = "site-default"
		} else {
			name = "site-" + name
		}
	}
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	return name
}
