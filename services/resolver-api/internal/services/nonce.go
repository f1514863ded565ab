package services

import (
	"regexp"
	"strings"
)

// The event endpoint does not promise JSON, so the nonce is pulled out textually.
var noncePattern = regexp.MustCompile(`"nonce":"([a-zA-Z0-9]+)"`)

// ExtractNonce returns the first nonce token embedded in body.
func ExtractNonce(body string) (string, bool) {
	m := noncePattern.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// encodeURIComponent escapes s the way browsers do for a URI component:
// everything except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is percent-encoded as UTF-8.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponentByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreservedComponentByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
