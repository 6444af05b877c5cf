package feed

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdesk/pkg/domain"
)

const singleResult = `{"response":{"results":[{"webUrl":"https://x","sectionName":"News","webTitle":"T",` +
	`"webPublicationDate":"2020-01-01T00:00:00Z","tags":[{"webTitle":"Jane Doe"}]}]}}`

func TestParseStories(t *testing.T) {
	t.Run("single result with contributor", func(t *testing.T) {
		stories := ParseStories(singleResult)
		require.Len(t, stories, 1)
		assert.Equal(t, domain.NewsStory{
			URL:         "https://x",
			Author:      "Jane Doe",
			Section:     "News",
			Title:       "T",
			PublishedAt: "2020-01-01T00:00:00Z",
		}, stories[0])
	})

	t.Run("empty tags use sentinel", func(t *testing.T) {
		body := `{"response":{"results":[{"webUrl":"https://x","sectionName":"News","webTitle":"T",` +
			`"webPublicationDate":"2020-01-01T00:00:00Z","tags":[]}]}}`
		stories := ParseStories(body)
		require.Len(t, stories, 1)
		assert.Equal(t, domain.NoContributor, stories[0].Author)
		assert.Equal(t, "No contributor found", stories[0].Author)
	})

	t.Run("malformed tags use sentinel", func(t *testing.T) {
		for name, tags := range map[string]string{
			"missing":          ``,
			"null":             `,"tags":null`,
			"object":           `,"tags":{"webTitle":"X"}`,
			"string element":   `,"tags":["Jane"]`,
			"no webTitle":      `,"tags":[{"id":"profile/x"}]`,
			"numeric webTitle": `,"tags":[{"webTitle":42}]`,
			"empty webTitle":   `,"tags":[{"webTitle":""}]`,
			"null element":     `,"tags":[null]`,
		} {
			body := `{"response":{"results":[{"webUrl":"https://x","sectionName":"News","webTitle":"T"` + tags + `}]}}`
			stories := ParseStories(body)
			require.Len(t, stories, 1, name)
			assert.Equal(t, domain.NoContributor, stories[0].Author, name)
			assert.Equal(t, "https://x", stories[0].URL, name)
		}
	})

	t.Run("unusable bodies give empty result", func(t *testing.T) {
		for _, body := range []string{
			"", "   ", "not json", "{", "[]", "null", "42", `"text"`,
			`{}`, `{"response":{}}`, `{"response":{"results":{}}}`, `{"response":{"results":null}}`,
			`{"response":"oops"}`, `{"results":"oops"}`,
		} {
			stories := ParseStories(body)
			require.NotNil(t, stories, body)
			assert.Empty(t, stories, body)
		}
	})

	t.Run("top level results", func(t *testing.T) {
		body := `{"results":[{"webUrl":"https://a","sectionName":"S","webTitle":"A","tags":[{"webTitle":"Ann"}]}]}`
		stories := ParseStories(body)
		require.Len(t, stories, 1)
		assert.Equal(t, "Ann", stories[0].Author)
		assert.Empty(t, stories[0].PublishedAt)
	})

	t.Run("broken element skipped, others kept in order", func(t *testing.T) {
		body := `{"response":{"results":[
			{"webUrl":"https://1","sectionName":"S","webTitle":"one"},
			{"sectionName":"S","webTitle":"no url"},
			"garbage",
			{"webUrl":"https://4","sectionName":"S"},
			{"webUrl":"https://5","webTitle":"no section"},
			{"webUrl":"","sectionName":"S","webTitle":"empty url"},
			{"webUrl":7,"sectionName":"S","webTitle":"numeric url"},
			null,
			{"webUrl":"https://9","sectionName":"S","webTitle":"nine","webPublicationDate":"2021-02-03T04:05:06Z"}
		]}}`
		stories := ParseStories(body)
		require.Len(t, stories, 2)
		assert.Equal(t, "https://1", stories[0].URL)
		assert.Equal(t, "https://9", stories[1].URL)
		assert.Equal(t, "2021-02-03T04:05:06Z", stories[1].PublishedAt)
		for _, s := range stories {
			assert.NotEmpty(t, s.URL)
			assert.NotEmpty(t, s.Title)
			assert.NotEmpty(t, s.Section)
			assert.NotEmpty(t, s.Author)
		}
	})

	t.Run("publication date kept as received", func(t *testing.T) {
		stories := ParseStories(singleResult)
		require.Len(t, stories, 1)
		assert.Equal(t, "2020-01-01T00:00:00Z", stories[0].PublishedAt)
		assert.Equal(t, "2020-01-01", stories[0].DisplayDate())
	})

	t.Run("sample api response", func(t *testing.T) {
		data, err := os.ReadFile("testdata/search_response.json")
		require.NoError(t, err)

		stories := ParseStories(string(data))
		require.Len(t, stories, 3)

		assert.Equal(t, "Sharp Objects recap: season one, episode two – Dirt", stories[0].Title)
		assert.Equal(t, "Rebecca Nicholson", stories[0].Author)
		assert.Equal(t, "Television & radio", stories[0].Section)
		assert.Equal(t, "2018-07-16T02:15:24Z", stories[0].PublishedAt)

		assert.Equal(t, "California wildfire forces thousands to evacuate", stories[1].Title)
		assert.Equal(t, domain.NoContributor, stories[1].Author)

		assert.Equal(t, "Alice Author", stories[2].Author, "first contributor wins")
		assert.Equal(t, "https://www.theguardian.com/world/2018/jul/15/border-wall", stories[2].URL)
	})

	t.Run("idempotent", func(t *testing.T) {
		data, err := os.ReadFile("testdata/search_response.json")
		require.NoError(t, err)

		first := ParseStories(string(data))
		second := ParseStories(string(data))
		assert.Equal(t, first, second)
	})
}

func TestDecodeStories(t *testing.T) {
	t.Run("malformed body reported", func(t *testing.T) {
		for _, body := range []string{"", "not json", `{"response":{}}`} {
			stories, err := DecodeStories(body)
			require.Error(t, err, body)
			assert.ErrorIs(t, err, ErrMalformedJSON)
			assert.NotNil(t, stories)
			assert.Empty(t, stories)
		}
	})

	t.Run("broken elements are not an error", func(t *testing.T) {
		stories, err := DecodeStories(`{"response":{"results":[{"webTitle":"no url"}]}}`)
		require.NoError(t, err)
		assert.Empty(t, stories)
	})

	t.Run("same result as ParseStories", func(t *testing.T) {
		stories, err := DecodeStories(singleResult)
		require.NoError(t, err)
		assert.Equal(t, ParseStories(singleResult), stories)
	})
}
