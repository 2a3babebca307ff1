package parser

import "testing"

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		ua          string
		wantOS      string
		wantBrowser string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", "Windows", "Chrome"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0", "Windows", "Edge"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "iOS", "Safari"},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36", "Android", "Chrome"},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 14.1; rv:121.0) Gecko/20100101 Firefox/121.0", "macOS", "Firefox"},
		{"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Linux", "Firefox"},
		{"curl/8.4.0", "CLI", "curl"},
		{"", "Unknown", "Unknown"},
	}

	for _, tt := range tests {
		os, browser := ParseUserAgent(tt.ua)
		if os != tt.wantOS || browser != tt.wantBrowser {
			t.Errorf("ParseUserAgent(%q) = (%s, %s), want (%s, %s)", tt.ua, os, browser, tt.wantOS, tt.wantBrowser)
		}
	}
}
