// Package urlutil provides URL canonicalization helpers.
//
// Every URL entering the frontier goes through Normalize first so that the
// visited set, the pending set, and checkpoint snapshots all agree on a single
// identity per address.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize returns the canonical form of a URL: lowercased scheme and host,
// default ports and fragments removed, empty path replaced with "/".
// Only http and https URLs are accepted.
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", rawURL)
	}

	u.Host = strings.ToLower(u.Host)
	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	} else {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}

// Host extracts the lowercased host (without port) from a URL.
func Host(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return strings.ToLower(u.Hostname()), nil
}

// SameSite reports whether two hosts belong to the same site, treating a bare
// domain and its www variant as equal.
func SameSite(a, b string) bool {
	return strings.TrimPrefix(a, "www.") == strings.TrimPrefix(b, "www.")
}
