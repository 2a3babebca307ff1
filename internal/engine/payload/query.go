package payload

import (
	"strconv"
	"strings"
)

type queryPair struct {
	key   string
	value string
}

// buildQuery appends the present pairs to base, '?' before the first and '&'
// before the rest. Values must already be encoded.
func buildQuery(base string, pairs ...queryPair) string {
	var b strings.Builder
	b.WriteString(base)
	sep := byte('?')
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
		sep = '&'
	}
	return b.String()
}

// encodeComponent escapes everything except the unreserved set
// A-Z a-z 0-9 - _ . ! ~ * ' ( ), matching what QR readers expect from
// browser-built links. url.QueryEscape differs (space becomes '+').
func encodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

func encoded(s string) string {
	if s == "" {
		return ""
	}
	return encodeComponent(s)
}

// formatNumber prints the shortest decimal that round-trips, so -74.0 is "-74".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
