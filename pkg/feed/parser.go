package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdesk/pkg/domain"
)

// ErrMalformedJSON returned by DecodeStories when the body has no usable results array
var ErrMalformedJSON = errors.New("malformed json")

// ParseStories extracts stories from a search API response body.
// It never fails: an empty, malformed or results-less body gives an empty slice, a broken element is
// skipped without affecting the rest. Source order is kept.
func ParseStories(body string) []domain.NewsStory {
	stories, err := DecodeStories(body)
	if err != nil {
		lgr.Printf("[WARN] no stories parsed, %v", err)
	}
	return stories
}

// DecodeStories works like ParseStories but also reports why the whole body was unusable.
// The returned slice is never nil, per-element problems are logged and don't produce an error.
func DecodeStories(body string) ([]domain.NewsStory, error) {
	stories := []domain.NewsStory{}
	if strings.TrimSpace(body) == "" {
		return stories, fmt.Errorf("%w: empty body", ErrMalformedJSON)
	}

	results, err := locateResults(body)
	if err != nil {
		return stories, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	for i, raw := range results {
		story, err := parseStory(raw)
		if err != nil {
			lgr.Printf("[WARN] skip result #%d: %v", i, err)
			continue
		}
		stories = append(stories, story)
	}
	return stories, nil
}

// locateResults finds the results array, either under "response" as the API sends it, or at the top level
func locateResults(body string) ([]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	raw, ok := top["results"]
	if resp, found := top["response"]; found {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(resp, &inner); err != nil {
			return nil, fmt.Errorf("decode response object: %w", err)
		}
		if r, found := inner["results"]; found {
			raw, ok = r, true
		}
	}
	if !ok {
		return nil, errors.New("no results array")
	}

	var results []json.RawMessage
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	if results == nil { // "results": null
		return nil, errors.New("results is null")
	}
	return results, nil
}

// parseStory converts one result element; url, title and section are required
func parseStory(raw json.RawMessage) (domain.NewsStory, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.NewsStory{}, fmt.Errorf("decode result: %w", err)
	}
	if fields == nil {
		return domain.NewsStory{}, errors.New("result is null")
	}

	url, err := requiredString(fields, "webUrl")
	if err != nil {
		return domain.NewsStory{}, err
	}
	title, err := requiredString(fields, "webTitle")
	if err != nil {
		return domain.NewsStory{}, err
	}
	section, err := requiredString(fields, "sectionName")
	if err != nil {
		return domain.NewsStory{}, err
	}
	published, _ := stringField(fields, "webPublicationDate")

	author, ok := contributor(fields)
	if !ok {
		author = domain.NoContributor
	}

	return domain.NewsStory{
		URL:         url,
		Author:      author,
		Section:     section,
		Title:       title,
		PublishedAt: published,
	}, nil
}

// contributor returns tags[0].webTitle, false if tags are missing, empty or malformed
func contributor(fields map[string]json.RawMessage) (string, bool) {
	raw, ok := fields["tags"]
	if !ok {
		return "", false
	}
	var tags []json.RawMessage
	if err := json.Unmarshal(raw, &tags); err != nil || len(tags) == 0 {
		return "", false
	}
	var first map[string]json.RawMessage
	if err := json.Unmarshal(tags[0], &first); err != nil || first == nil {
		return "", false
	}
	name, ok := stringField(first, "webTitle")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// requiredString returns a non-empty string field or an error
func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	v, ok := stringField(fields, key)
	if !ok {
		return "", fmt.Errorf("missing or non-string %q", key)
	}
	if v == "" {
		return "", fmt.Errorf("empty %q", key)
	}
	return v, nil
}

// stringField returns the string value of key, false if absent or not a string
func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return "", false
	}
	return *v, true
}
