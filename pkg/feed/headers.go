package feed

import "net/http"

// DefaultUserAgent is sent with every API request unless configured otherwise
const DefaultUserAgent = "Newsdesk/1.0"

// addAPIHeaders sets headers for content API requests
func addAPIHeaders(req *http.Request, userAgent string) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Charset", "utf-8")
	req.Header.Set("Cache-Control", "no-cache")
}
