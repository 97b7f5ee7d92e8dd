package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseEndpointURL validates a remote endpoint. Plain http is accepted for
// LAN servers; anything other than http(s) is rejected.
func ParseEndpointURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return nil, fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("URL %q has no host", raw)
	}
	return parsed, nil
}

// JoinURLPath appends name to the base URL path with exactly one slash.
func JoinURLPath(base *url.URL, name string) string {
	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(name, "/")
	return u.String()
}
