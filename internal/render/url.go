package render

import (
	"net/url"
	"strings"
)

// Domain returns the host of a story URL without a leading "www.", or "" for
// text posts and anything that is not an http(s) URL.
func Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
