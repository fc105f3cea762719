// Package imageurl resolves product image URLs for API responses.
package imageurl

import (
	"net/url"
	"strings"
)

// DefaultFallback is served when a product has no usable image
const DefaultFallback = "/image.jpg"

// GetImageURL returns the trimmed URL, or fallback when u is nil or blank.
// No other normalization is applied.
func GetImageURL(u *string, fallback string) string {
	if u == nil {
		return fallback
	}
	return OrDefault(*u, fallback)
}

// OrDefault is GetImageURL for a plain string
func OrDefault(s, fallback string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

// IsValidImageURL accepts any path starting with "/" without further checks,
// otherwise the value must parse as an absolute URL.
func IsValidImageURL(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "/") {
		return true
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}
