package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com/")
	generator.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }

	stories := []domain.NewsStory{
		{
			URL:         "https://www.theguardian.com/world/1",
			Author:      "Jane Doe",
			Section:     "World news",
			Title:       "Story & one",
			PublishedAt: "2018-07-16T02:15:24Z",
		},
		{
			URL:         "https://www.theguardian.com/sport/2",
			Author:      domain.NoContributor,
			Section:     "Sport",
			Title:       "Story two",
			PublishedAt: "not a date",
		},
	}

	t.Run("search term", func(t *testing.T) {
		rss, err := generator.GenerateRSS(stories, domain.Settings{SearchTerm: "border wall", OrderBy: domain.OrderRelevance})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(rss, `<?xml version="1.0" encoding="UTF-8"?>`))
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>Newsdesk - border wall</title>`)
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `href="https://example.com/rss?order-by=relevance&amp;q=border+wall"`)
		assert.Contains(t, rss, `<lastBuildDate>Mon, 01 Jan 2024 12:00:00 +0000</lastBuildDate>`)
		assert.Contains(t, rss, `<title>Story &amp; one</title>`)

		parsed, err := gofeed.NewParser().ParseString(rss)
		require.NoError(t, err)
		assert.Equal(t, "Newsdesk - border wall", parsed.Title)
		require.Len(t, parsed.Items, 2)

		assert.Equal(t, "Story & one", parsed.Items[0].Title)
		assert.Equal(t, "https://www.theguardian.com/world/1", parsed.Items[0].Link)
		assert.Equal(t, "https://www.theguardian.com/world/1", parsed.Items[0].GUID)
		assert.Equal(t, []string{"World news"}, parsed.Items[0].Categories)
		require.NotNil(t, parsed.Items[0].PublishedParsed)
		assert.Equal(t, time.Date(2018, 7, 16, 2, 15, 24, 0, time.UTC), parsed.Items[0].PublishedParsed.UTC())

		assert.Equal(t, "Story two", parsed.Items[1].Title)
		assert.Nil(t, parsed.Items[1].PublishedParsed, "unparsable date omitted")
	})

	t.Run("all stories", func(t *testing.T) {
		rss, err := generator.GenerateRSS(nil, domain.Settings{})
		require.NoError(t, err)
		assert.Contains(t, rss, `<title>Newsdesk - All Stories</title>`)
		assert.Contains(t, rss, `<description>Guardian stories, newest first</description>`)

		parsed, err := gofeed.NewParser().ParseString(rss)
		require.NoError(t, err)
		assert.Empty(t, parsed.Items)
	})
}
