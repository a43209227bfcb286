package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

const previewLength = 200

// formatMessage готовит HTML-текст для Telegram.
func formatMessage(event *models.GiftNotification) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎁 <b>%s</b>\n\n", html.EscapeString(models.TextPreview(event.Title, previewLength)))

	for _, link := range event.Links {
		fmt.Fprintf(&b, "👉 <a href=\"%s\">%s</a>", html.EscapeString(link.URL), html.EscapeString(link.Label))

		if link.ClaimID != "" && link.ClaimID != models.UnknownClaimID {
			fmt.Fprintf(&b, " (<code>%s</code>)", html.EscapeString(link.ClaimID))
		}

		if link.SourceURL != "" && link.SourceURL != event.SourceURL {
			fmt.Fprintf(&b, " · <a href=\"%s\">пост</a>", html.EscapeString(link.SourceURL))
		}

		b.WriteString("\n")
	}

	if event.SourceURL != "" {
		fmt.Fprintf(&b, "\n📝 <a href=\"%s\">Пост</a>", html.EscapeString(event.SourceURL))
	}

	return b.String()
}
