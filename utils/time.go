package utils

import "time"

// ToParis converts a time to Europe/Paris, the marketplace's timezone.
func ToParis(t time.Time) time.Time {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return t // Fallback to UTC if the zone database is unavailable
	}
	return t.In(paris)
}
