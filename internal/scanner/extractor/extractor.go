package extractor

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var excludedExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".svg": {}, ".bmp": {}, ".ico": {},
	".mp4": {}, ".webm": {}, ".mp3": {}, ".pdf": {}, ".zip": {},
}

const trailingPunctuation = ".,;:!?)]}'*"

type LinkExtractor struct {
	urlRegex *regexp.Regexp
	domains  []string
}

// NewLinkExtractor принимает список разрешённых доменов в нижнем регистре.
func NewLinkExtractor(domains []string) *LinkExtractor {
	return &LinkExtractor{
		urlRegex: regexp.MustCompile(`https?://[^\s"'<>\\]+`),
		domains:  domains,
	}
}

// Extract возвращает уникальные ссылки на разрешённые домены в порядке первого появления.
func (e *LinkExtractor) Extract(text string) []string {
	matches := e.urlRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	links := make([]string, 0, len(matches))

	for _, match := range matches {
		link := strings.TrimRight(match, trailingPunctuation)

		if _, ok := seen[link]; ok {
			continue
		}

		if !e.accepts(link) {
			continue
		}

		seen[link] = struct{}{}
		links = append(links, link)
	}

	return links
}

func (e *LinkExtractor) accepts(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return false
	}

	if !e.AllowedHost(u.Hostname()) {
		return false
	}

	_, excluded := excludedExtensions[strings.ToLower(path.Ext(u.Path))]

	return !excluded
}

// AllowedHost сообщает, совпадает ли host с разрешённым доменом или является его поддоменом.
func (e *LinkExtractor) AllowedHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	for _, domain := range e.domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}

	return false
}
