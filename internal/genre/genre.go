// Package genre normalizes free-form genre strings supplied by users and the
// external catalog into the flat, ordered genre list stored with a book.
package genre

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Unknown is substituted for a book without genres.
const Unknown = "Unknown"

// Normalize splits every raw entry on "/" and returns each non-empty,
// trimmed segment once, in first-seen order.
// "Fiction / Classics" and "Fiction / Fantasy" -> ["Fiction", "Classics", "Fantasy"].
func Normalize(raw []string) []string {
	genres := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		for _, segment := range strings.Split(entry, "/") {
			segment = norm.NFC.String(strings.TrimSpace(segment))
			if segment == "" {
				continue
			}
			if _, ok := seen[segment]; ok {
				continue
			}
			seen[segment] = struct{}{}
			genres = append(genres, segment)
		}
	}
	return genres
}

// Join renders genres as a single comma-separated string.
func Join(genres []string) string {
	return strings.Join(genres, ", ")
}

// OrUnknown returns genres, or [Unknown] when there are none.
func OrUnknown(genres []string) []string {
	if len(genres) == 0 {
		return []string{Unknown}
	}
	return genres
}
