// Package identity maps raw publication URLs and category names onto the
// canonical keys used to join the relation and statistics tables.
package identity

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryPrefix namespaces category node ids.
const CategoryPrefix = "category_"

// Publication returns the canonical key for a publication URL.
//
// Examples:
//   - https://lenny.substack.com -> lenny
//   - https://lenny.com -> lenny
//   - https://www.lennysnewsletter.com -> lennysnewsletter
//
// The function never fails; input it cannot split comes back with only its
// scheme removed.
// Distinct publications can collide (lenny.substack.com and lenny.com both
// map to "lenny"); callers treat them as the same entity.
func Publication(raw string) string {
	s := strings.TrimPrefix(raw, "https://")
	s = strings.TrimPrefix(s, "http://")

	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return s
	}

	if len(parts) >= 3 && parts[len(parts)-2] == "substack" && parts[len(parts)-1] == "com" {
		return parts[0]
	}
	if parts[0] == "www" && len(parts) >= 3 {
		return parts[1]
	}
	return parts[0]
}

// Category returns the namespaced key for a category name.
func Category(name string) string {
	return CategoryPrefix + name
}

// PublicationName derives a readable name from a publication URL.
func PublicationName(raw string) string {
	host := hostname(raw)
	host = strings.ReplaceAll(host, "www.", "")

	if strings.Contains(host, ".substack.com") {
		return humanize(strings.Split(host, ".")[0])
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return humanize(parts[len(parts)-2])
	}
	return host
}

// PublicationCategory buckets a publication by its URL.
func PublicationCategory(raw string) string {
	switch {
	case strings.Contains(raw, "substack.com"):
		return "Newsletter"
	case strings.Contains(raw, ".com"), strings.Contains(raw, ".org"), strings.Contains(raw, ".net"):
		return "Website"
	default:
		return "Publication"
	}
}

// CategoryName turns a slug like "climate-change" into "Climate Change".
func CategoryName(name string) string {
	return humanize(name)
}

func humanize(slug string) string {
	// Casers carry state; build one per call.
	return cases.Title(language.Und).String(strings.ReplaceAll(slug, "-", " "))
}

// hostname returns the host part of raw, or the text before the first path
// separator when raw does not parse as an absolute URL.
func hostname(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		return strings.ToLower(u.Hostname())
	}
	s := strings.TrimPrefix(raw, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}
