package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		typ  Type
		raw  string
		want bool
	}{
		{TypeURL, "https://example.com", true},
		{TypeURL, "example.com", true},
		{TypeURL, "http://localhost:8080/path?q=1", true},
		{TypeURL, "sub.domain.co.uk/a#frag", true},
		{TypeURL, "", false},
		{TypeURL, "not a url", false},
		{TypeURL, "https://", false},
		{TypeEmail, "a@b.com", true},
		{TypeEmail, "a@b", false},
		{TypeEmail, "a b@c.com", false},
		{TypePhone, "+1 555-1234", true},
		{TypePhone, "12345", false},
		{TypePhone, "call me", false},
		{TypeWiFi, "Home,secret", true},
		{TypeWiFi, ",secret", false},
		{TypeText, "x", true},
		{TypeText, "", false},
		{Type("unknown"), "anything", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValid(tt.typ, tt.raw), "IsValid(%s, %q)", tt.typ, tt.raw)
	}
}

func TestIsValid_NeverPanics(t *testing.T) {
	inputs := []string{"\x00", "%%%", "@@@", ",,,", "http://[::1", string([]byte{0xff, 0xfe})}
	for _, typ := range append(Types(), "bogus") {
		for _, in := range inputs {
			assert.NotPanics(t, func() { IsValid(typ, in) })
		}
	}
}

func TestFromQuickEntry(t *testing.T) {
	tests := []struct {
		typ  Type
		raw  string
		want Content
	}{
		{TypeURL, "example.com", URL{URL: "https://example.com"}},
		{TypeURL, "http://example.com", URL{URL: "http://example.com"}},
		{TypePhone, "+1 (555) 123-4567", Phone{Number: "+15551234567"}},
		{TypeSMS, "555 1234", SMS{Number: "5551234"}},
		{TypeWiFi, "Home, secret", WiFi{SSID: "Home", Password: "secret", Encryption: EncryptionWPA}},
		{TypeWiFi, "Guest,,nopass", WiFi{SSID: "Guest", Encryption: EncryptionNone}},
		{TypeTwitter, "@acme", Social{Platform: TypeTwitter, Username: "acme"}},
		{TypeText, "  hi  ", Text{Text: "hi"}},
	}
	for _, tt := range tests {
		got, err := FromQuickEntry(tt.typ, tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FromQuickEntry(TypeVCard, "Jane Doe")
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = FromQuickEntry("pinterest", "x")
	assert.ErrorIs(t, err, ErrUnsupportedContentType)
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "base", buildQuery("base"))
	assert.Equal(t, "base", buildQuery("base", queryPair{"a", ""}, queryPair{"b", ""}))
	assert.Equal(t, "base?b=2", buildQuery("base", queryPair{"a", ""}, queryPair{"b", "2"}))
	assert.Equal(t, "base?a=1&c=3", buildQuery("base", queryPair{"a", "1"}, queryPair{"b", ""}, queryPair{"c", "3"}))
}

func TestEncodeComponent(t *testing.T) {
	assert.Equal(t, "A-z_0.9!~*'()", encodeComponent("A-z_0.9!~*'()"))
	assert.Equal(t, "a%20b%2Bc%26d%3De%3F%2F", encodeComponent("a b+c&d=e?/"))
	assert.Equal(t, "%C3%BC", encodeComponent("ü"))
}
