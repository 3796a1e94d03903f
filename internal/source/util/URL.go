package util

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// CanonicalURL normalizes a download URL into a dedup key: lowercase scheme
// and host, no fragment, raw query segments sorted. Query segments are never
// decoded or dropped, so distinct URLs keep distinct keys.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		parts := strings.Split(u.RawQuery, "&")
		sort.Strings(parts)
		u.RawQuery = strings.Join(parts, "&")
	}
	return u.String()
}

// Resolve makes ref absolute against base. Unparseable input is returned as is.
func Resolve(base, ref string) string {
	ref = strings.TrimSpace(ref)
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// Extension returns the lowercased extension of the URL path, "" if none.
func Extension(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(u.Path))
}
