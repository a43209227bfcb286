package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
	"github.com/magnusozprime/hero-wars-data/internal/scanner/notify"
)

func TestBatcher_BuildEmpty(t *testing.T) {
	batcher := notify.NewBatcher("Claim gift")

	assert.Nil(t, batcher.Build(&models.Post{ID: "1", Title: "T"}, nil))
}

func TestBatcher_BuildLabelsEveryLink(t *testing.T) {
	batcher := notify.NewBatcher("Claim gift")

	post := &models.Post{ID: "1", Title: "T", URL: "https://community.hero-wars.com/post/1", ImageURL: "https://cdn/1.png"}
	gifts := []*models.ResolvedGift{
		{FinalURL: "https://hero-wars.com/?gift_id=ABC", ClaimID: "ABC", SourcePostID: "1"},
		{FinalURL: "https://hero-wars.com/?gift_id=DEF", ClaimID: "DEF", SourcePostID: "1"},
	}

	event := batcher.Build(post, gifts)

	require.NotNil(t, event)
	assert.Equal(t, "1", event.PostID)
	assert.Equal(t, "T", event.Title)
	assert.Equal(t, post.URL, event.SourceURL)
	assert.Equal(t, post.ImageURL, event.ImageURL)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Minute)
	assert.Equal(t, []models.ClaimLink{
		{Label: "Claim gift", URL: gifts[0].FinalURL, ClaimID: "ABC", SourceURL: post.URL},
		{Label: "Claim gift", URL: gifts[1].FinalURL, ClaimID: "DEF", SourceURL: post.URL},
	}, event.Links)
}

func TestBatcher_Combine(t *testing.T) {
	batcher := notify.NewBatcher("Claim gift")

	assert.Nil(t, batcher.Combine(nil))

	first := batcher.Build(&models.Post{ID: "1", Title: "A", URL: "u1"},
		[]*models.ResolvedGift{{FinalURL: "f1", ClaimID: "1"}})
	second := batcher.Build(&models.Post{ID: "2", Title: "B", URL: "u2"},
		[]*models.ResolvedGift{{FinalURL: "f2", ClaimID: "2"}, {FinalURL: "f3", ClaimID: "3"}})

	assert.Same(t, first, batcher.Combine([]*models.GiftNotification{first}))

	combined := batcher.Combine([]*models.GiftNotification{first, second})

	require.NotNil(t, combined)
	assert.Equal(t, "A | B", combined.Title)
	assert.Equal(t, "u1", combined.SourceURL)
	assert.Empty(t, combined.PostID)
	require.Len(t, combined.Links, 3)
	assert.Equal(t, "u1", combined.Links[0].SourceURL)
	assert.Equal(t, "u2", combined.Links[1].SourceURL)
	assert.Equal(t, "u2", combined.Links[2].SourceURL)
}
