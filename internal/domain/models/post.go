package models

import "time"

type Post struct {
	ID            string
	Title         string
	CanonicalText string
	ImageURL      string
	URL           string
	CreatedAt     time.Time
}

func TextPreview(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}

	return string(runes[:length]) + "..."
}
