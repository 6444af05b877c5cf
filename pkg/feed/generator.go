package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/newsdesk/pkg/domain"
)

// Generator creates RSS feeds from fetched stories
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from stories fetched with the given settings
func (g *Generator) GenerateRSS(stories []domain.NewsStory, settings domain.Settings) (string, error) {
	settings = settings.WithDefaults()

	title := "Newsdesk - All Stories"
	if settings.SearchTerm != "" {
		title = fmt.Sprintf("Newsdesk - %s", settings.SearchTerm)
	}

	params := url.Values{}
	if settings.SearchTerm != "" {
		params.Set("q", settings.SearchTerm)
	}
	params.Set("order-by", settings.OrderBy.String())
	selfLink := g.baseURL + "/rss?" + params.Encode()

	rssItems := make([]*RSSItem, 0, len(stories))
	for _, story := range stories {
		rssItems = append(rssItems, g.convertToRSSItem(story))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Guardian stories, %s first", settings.OrderBy),
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a story to an RSS item, pubDate is set only for parsable timestamps
func (g *Generator) convertToRSSItem(story domain.NewsStory) *RSSItem {
	item := &RSSItem{
		Title:       story.Title,
		Link:        story.URL,
		GUID:        story.URL,
		Description: fmt.Sprintf("%s | %s", story.Section, story.Author),
		Author:      story.Author,
		Categories:  []string{story.Section},
	}
	if ts, err := time.Parse(time.RFC3339, story.PublishedAt); err == nil {
		item.PubDate = ts.Format(time.RFC1123Z)
	}
	return item
}
