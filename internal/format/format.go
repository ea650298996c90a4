// Package format holds the presentation helpers shared by the mini-app and
// the admin tool. User-facing strings are Russian, matching the product.
package format

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderImage is shown when a recipe has no photo.
const PlaceholderImage = "/placeholder-recipe.svg"

// UploadsPrefix roots bare relative photo paths.
const UploadsPrefix = "/uploads/"

var difficulties = map[string]string{
	"easy":   "Легко",
	"medium": "Средне",
	"hard":   "Сложно",
}

// Minutes renders a duration given in minutes: "30 мин", "1 ч", "1 ч 30 мин".
func Minutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%d ч", h)
	}
	return fmt.Sprintf("%d ч %d мин", h, m)
}

// Difficulty maps the difficulty enum to its localized label. Unknown values
// pass through unchanged.
func Difficulty(value string) string {
	if label, ok := difficulties[value]; ok {
		return label
	}
	return value
}

// ImageURL normalizes a photo reference for display. Absolute URLs and
// already-rooted uploads paths pass through; bare "uploads/..." paths get
// rooted; empty values fall back to the placeholder. Idempotent.
func ImageURL(photoURL string) string {
	if photoURL == "" {
		return PlaceholderImage
	}
	if strings.HasPrefix(photoURL, "http://") || strings.HasPrefix(photoURL, "https://") {
		return photoURL
	}
	if strings.HasPrefix(photoURL, UploadsPrefix) {
		return photoURL
	}
	if strings.HasPrefix(photoURL, "uploads/") {
		return "/" + photoURL
	}
	return photoURL
}

var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Date renders an RFC 3339 timestamp as a Russian long date, e.g.
// "5 марта 2026 г.". Unparseable input passes through unchanged.
func Date(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d %s %d г.", t.Day(), ruMonths[t.Month()-1], t.Year())
}
