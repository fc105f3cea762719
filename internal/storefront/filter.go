// Package storefront holds the presentation rules shared by the storefront
// responses: category filter navigation and image fallback resolution.
package storefront

import (
	"fmt"
	"net/url"
)

// CategoryParam is the query parameter carrying the selected category
const CategoryParam = "category"

// FilterURL returns currentURL with the category filter set to selected.
// An empty selection ("all categories") removes the filter. Path, fragment
// and the other query parameters are kept.
func FilterURL(currentURL, selected string) (string, error) {
	u, err := url.Parse(currentURL)
	if err != nil {
		return "", fmt.Errorf("parse current url: %w", err)
	}

	q := u.Query()
	if selected == "" {
		q.Del(CategoryParam)
	} else {
		q.Set(CategoryParam, selected)
	}
	u.RawQuery = q.Encode()
	u.ForceQuery = false

	return u.String(), nil
}
