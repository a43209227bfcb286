package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	customerrors "github.com/magnusozprime/hero-wars-data/internal/domain/errors"
	"github.com/magnusozprime/hero-wars-data/internal/domain/models"
)

var listKeys = []string{"results", "data"}

var (
	imageKeys     = []string{"image_url", "imageUrl", "image", "cover"}
	createdAtKeys = []string{"created_at", "createdAt", "published_at", "publishedAt"}
	urlKeys       = []string{"url", "link"}
)

// Skipped описывает элемент ленты, который не удалось превратить в пост.
type Skipped struct {
	Index  int
	Reason string
}

type Result struct {
	Posts   []models.Post
	Skipped []Skipped
}

type Normalizer struct {
	untitledTitle   string
	postURLTemplate string
	now             func() time.Time
}

func NewNormalizer(untitledTitle, postURLTemplate string) *Normalizer {
	return &Normalizer{
		untitledTitle:   untitledTitle,
		postURLTemplate: postURLTemplate,
		now:             time.Now,
	}
}

// Normalize принимает массив постов либо объект с массивом results или data.
// Любая другая форма возвращает *MalformedFeedError.
func (n *Normalizer) Normalize(payload []byte) (*Result, error) {
	items, err := listItems(payload)
	if err != nil {
		return nil, err
	}

	result := &Result{Posts: make([]models.Post, 0, len(items))}

	for i, raw := range items {
		if raw.Type() != jx.Object {
			result.Skipped = append(result.Skipped, Skipped{Index: i, Reason: "элемент не является объектом: " + raw.Type().String()})
			continue
		}

		post, err := n.normalizePost(raw)
		if err != nil {
			result.Skipped = append(result.Skipped, Skipped{Index: i, Reason: err.Error()})
			continue
		}

		result.Posts = append(result.Posts, post)
	}

	return result, nil
}

func listItems(payload []byte) ([]jx.Raw, error) {
	d := jx.DecodeBytes(payload)

	switch kind := d.Next(); kind {
	case jx.Array:
		return readArray(d)
	case jx.Object:
		return readListFromObject(d)
	default:
		return nil, &customerrors.MalformedFeedError{Kind: kind.String()}
	}
}

func readArray(d *jx.Decoder) ([]jx.Raw, error) {
	var items []jx.Raw

	if err := d.Arr(func(d *jx.Decoder) error {
		raw, err := d.Raw()
		if err != nil {
			return err
		}

		items = append(items, raw)

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "read posts array")
	}

	return items, nil
}

func readListFromObject(d *jx.Decoder) ([]jx.Raw, error) {
	var (
		keys  []string
		lists = make(map[string]jx.Raw, len(listKeys))
	)

	if err := d.Obj(func(d *jx.Decoder, key string) error {
		keys = append(keys, key)

		raw, err := d.Raw()
		if err != nil {
			return err
		}

		lists[key] = raw

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "read feed object")
	}

	for _, key := range listKeys {
		raw, ok := lists[key]
		if !ok || raw.Type() != jx.Array {
			continue
		}

		return readArray(jx.DecodeBytes(raw))
	}

	return nil, &customerrors.MalformedFeedError{Kind: jx.Object.String(), Keys: keys}
}

func (n *Normalizer) normalizePost(raw jx.Raw) (models.Post, error) {
	fields := make(map[string]jx.Raw)

	if err := jx.DecodeBytes(raw).Obj(func(d *jx.Decoder, key string) error {
		value, err := d.Raw()
		if err != nil {
			return err
		}

		fields[key] = value

		return nil
	}); err != nil {
		return models.Post{}, errors.Wrap(err, "decode post")
	}

	id := scalarString(fields["id"])
	if id == "" {
		return models.Post{}, errors.New("у поста нет id")
	}

	post := models.Post{
		ID:            id,
		Title:         scalarString(fields["title"]),
		CanonicalText: CanonicalText(raw),
		ImageURL:      firstString(fields, imageKeys),
		URL:           firstString(fields, urlKeys),
		CreatedAt:     n.parseCreatedAt(fields),
	}

	if strings.TrimSpace(post.Title) == "" {
		post.Title = n.untitledTitle
	}

	if post.URL == "" && n.postURLTemplate != "" {
		post.URL = fmt.Sprintf(n.postURLTemplate, id)
	}

	return post, nil
}

func (n *Normalizer) parseCreatedAt(fields map[string]jx.Raw) time.Time {
	for _, key := range createdAtKeys {
		raw, ok := fields[key]
		if !ok {
			continue
		}

		switch raw.Type() {
		case jx.String:
			value := scalarString(raw)
			for _, layout := range []string{time.RFC3339Nano, time.DateTime} {
				if ts, err := time.Parse(layout, value); err == nil {
					return ts.UTC()
				}
			}
		case jx.Number:
			if sec, err := strconv.ParseInt(scalarString(raw), 10, 64); err == nil && sec > 0 {
				return time.Unix(sec, 0).UTC()
			}
		}
	}

	return n.now().UTC()
}

func firstString(fields map[string]jx.Raw, keys []string) string {
	for _, key := range keys {
		if value := scalarString(fields[key]); value != "" {
			return value
		}
	}

	return ""
}

// scalarString возвращает строку или число как текст; для остальных типов пустую строку.
func scalarString(raw jx.Raw) string {
	if len(raw) == 0 {
		return ""
	}

	d := jx.DecodeBytes(raw)

	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return ""
		}

		return strings.TrimSpace(s)
	case jx.Number:
		num, err := d.Num()
		if err != nil {
			return ""
		}

		return num.String()
	default:
		return ""
	}
}

// htmlEntities раскрывает сущности, которыми лента экранирует атрибуты в HTML постов.
var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#34;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

// CanonicalText возвращает сериализацию поста с раскрытыми \/, \u0026 и HTML-сущностями.
func CanonicalText(raw []byte) string {
	text := strings.ReplaceAll(string(raw), `\/`, "/")
	text = strings.ReplaceAll(text, `\u0026`, "&")

	return htmlEntities.Replace(text)
}
