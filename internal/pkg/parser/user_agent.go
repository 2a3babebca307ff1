package parser

import "strings"

// ParseUserAgent reduces a User-Agent header to an OS and browser family.
func ParseUserAgent(ua string) (os, browser string) {
	uaLower := strings.ToLower(ua)

	// Mobile first: Android agents also say "linux", iOS agents say "mac os".
	switch {
	case strings.Contains(uaLower, "android"):
		os = "Android"
	case strings.Contains(uaLower, "iphone") || strings.Contains(uaLower, "ipad"):
		os = "iOS"
	case strings.Contains(uaLower, "windows"):
		os = "Windows"
	case strings.Contains(uaLower, "mac os"):
		os = "macOS"
	case strings.Contains(uaLower, "linux"):
		os = "Linux"
	case strings.HasPrefix(uaLower, "curl/") || strings.HasPrefix(uaLower, "go-http-client"):
		os = "CLI"
	default:
		os = "Unknown"
	}

	switch {
	case strings.Contains(uaLower, "edg/") || strings.Contains(uaLower, "edge"):
		browser = "Edge"
	case strings.Contains(uaLower, "firefox"):
		browser = "Firefox"
	case strings.Contains(uaLower, "chrome"):
		browser = "Chrome"
	case strings.Contains(uaLower, "safari"):
		browser = "Safari"
	case strings.HasPrefix(uaLower, "curl/"):
		browser = "curl"
	default:
		browser = "Unknown"
	}

	return os, browser
}
