package notify

import (
	"strings"
	"time"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

// Batcher собирает одно уведомление на пост из только что подтверждённых подарков.
type Batcher struct {
	label string
	now   func() time.Time
}

func NewBatcher(label string) *Batcher {
	return &Batcher{
		label: label,
		now:   time.Now,
	}
}

// Build возвращает nil, если новых подарков нет.
func (b *Batcher) Build(post *models.Post, gifts []*models.ResolvedGift) *models.GiftNotification {
	if len(gifts) == 0 {
		return nil
	}

	links := make([]models.ClaimLink, 0, len(gifts))
	for _, gift := range gifts {
		links = append(links, models.ClaimLink{
			Label:     b.label,
			URL:       gift.FinalURL,
			ClaimID:   gift.ClaimID,
			SourceURL: post.URL,
		})
	}

	return &models.GiftNotification{
		PostID:    post.ID,
		Title:     post.Title,
		Links:     links,
		SourceURL: post.URL,
		ImageURL:  post.ImageURL,
		Timestamp: b.now().UTC(),
	}
}

// Combine склеивает уведомления постов в одно уведомление на проход.
func (b *Batcher) Combine(events []*models.GiftNotification) *models.GiftNotification {
	switch len(events) {
	case 0:
		return nil
	case 1:
		return events[0]
	}

	titles := make([]string, 0, len(events))
	combined := &models.GiftNotification{
		SourceURL: events[0].SourceURL,
		ImageURL:  events[0].ImageURL,
		Timestamp: b.now().UTC(),
	}

	for _, event := range events {
		titles = append(titles, event.Title)
		combined.Links = append(combined.Links, event.Links...)
	}

	combined.Title = strings.Join(titles, " | ")

	return combined
}
