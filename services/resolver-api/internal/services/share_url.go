package services

import "regexp"

// Prefix matches only: anything after the share token (query, fragment, extra path) is tolerated.
var shareURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://(www\.)?1024terabox\.com/s/[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`^https://(www\.)?terabox\.com/s/[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`^https://teraboxapp\.com/s/[a-zA-Z0-9_-]+`),
}

// ValidShareURLFormats is shown to callers whose url is rejected.
var ValidShareURLFormats = []string{
	"https://1024terabox.com/s/...",
	"https://www.terabox.com/s/...",
	"https://terabox.com/s/...",
}

// ExampleShareURL is a well-formed share link used in usage hints.
const ExampleShareURL = "https://1024terabox.com/s/1ahJz-qdH7h_9One0lXxDoA"

// IsValidShareURL reports whether raw looks like a TeraBox share link.
func IsValidShareURL(raw string) bool {
	for _, p := range shareURLPatterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}
