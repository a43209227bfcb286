package common

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

// ClaimAnalyzer ищет ключ идентификатора подарка в query-части ссылки.
type ClaimAnalyzer struct {
	claimRegex *regexp.Regexp
}

func NewClaimAnalyzer(key string) *ClaimAnalyzer {
	return &ClaimAnalyzer{
		claimRegex: regexp.MustCompile(`[?&]` + regexp.QuoteMeta(key) + `(?:=([^&#]*))?(?:[&#]|$)`),
	}
}

// ClaimID возвращает значение ключа до следующего & или #. Фрагмент ссылки не учитывается.
// Если ключ есть, но значение пустое или не декодируется, возвращается models.UnknownClaimID.
func (a *ClaimAnalyzer) ClaimID(link string) (string, bool) {
	if i := strings.IndexByte(link, '#'); i >= 0 {
		link = link[:i]
	}

	matches := a.claimRegex.FindStringSubmatch(link)
	if matches == nil {
		return "", false
	}

	value, err := url.QueryUnescape(matches[1])
	if err != nil || value == "" {
		return models.UnknownClaimID, true
	}

	return value, true
}

func (a *ClaimAnalyzer) HasClaim(link string) bool {
	_, ok := a.ClaimID(link)
	return ok
}
