package itemfeed

import (
	"net/url"
	"strings"
)

// CanonicalURL returns raw as an absolute http(s) URL without its query
// string. Relative and scheme-relative references are resolved against
// base first. When base is empty, only a reference that starts with a
// host name ("www.x.test/a", "//x.test/a") is kept, with an https
// scheme. Host and path are kept as they are.
//
// CanonicalURL returns "" when the result is not a usable URL, which
// callers treat as "drop this item" rather than as an error.
func CanonicalURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if !u.IsAbs() {
		if base == "" {
			if u = bareHost(raw); u == nil {
				return ""
			}
		} else {
			b, err := url.Parse(base)
			if err != nil || !b.IsAbs() {
				return ""
			}
			u = b.ResolveReference(u)
		}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" || u.Opaque != "" {
		return ""
	}

	u.RawQuery = ""
	u.ForceQuery = false
	return u.String()
}

// bareHost parses a reference whose first segment is a dotted host name.
// It returns nil for path references such as "books/1" or "../b/1".
func bareHost(raw string) *url.URL {
	u, err := url.Parse("https://" + strings.TrimPrefix(raw, "//"))
	if err != nil {
		return nil
	}
	host := u.Hostname()
	if !strings.Contains(host, ".") || strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") || strings.Contains(host, "..") {
		return nil
	}
	return u
}

// LinkID returns the last non-empty path segment of a canonical URL.
// It returns "" when the URL has no path segments.
func LinkID(canonical string) string {
	u, err := url.Parse(canonical)
	if err != nil {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
