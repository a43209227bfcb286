package models

import "time"

// ClaimLink.SourceURL ведёт на пост, из которого пришла ссылка.
type ClaimLink struct {
	Label     string `json:"label"`
	URL       string `json:"url"`
	ClaimID   string `json:"claimId"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// GiftNotification описывает одно событие для приёмника уведомлений.
type GiftNotification struct {
	PostID    string      `json:"postId,omitempty"`
	Title     string      `json:"title"`
	Links     []ClaimLink `json:"links"`
	SourceURL string      `json:"sourceUrl"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
