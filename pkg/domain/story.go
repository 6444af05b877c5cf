package domain

// NoContributor is used as the author when the source has no usable contributor tag
const NoContributor = "No contributor found"

// NewsStory represents a single normalized article from the search API.
// Stories are passed by value and never changed after creation, a new fetch produces a new slice.
type NewsStory struct {
	URL         string `json:"url"`
	Author      string `json:"author"`
	Section     string `json:"section"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"` // ISO-8601 as received, not truncated
}

// DisplayDate returns the date-only part of PublishedAt, i.e. "2018-07-16" for "2018-07-16T02:15:24Z"
func (s NewsStory) DisplayDate() string {
	const dateLen = len("2006-01-02")
	if len(s.PublishedAt) < dateLen {
		return s.PublishedAt
	}
	return s.PublishedAt[:dateLen]
}
