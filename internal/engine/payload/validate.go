package payload

import (
	"regexp"
	"strings"
)

var (
	urlPattern   = regexp.MustCompile(`^https?://([A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?\.)*[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(:[0-9]{1,5})?([/?#][^\s]*)?$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{6,}$`)
	nonDialable  = regexp.MustCompile(`[^\d+]`)
)

// IsValid is advisory feedback for single-field quick entry. It never panics
// and unknown types only require a non-empty input.
func IsValid(t Type, raw string) bool {
	switch t {
	case TypeURL:
		return urlPattern.MatchString(NormalizeURL(raw))
	case TypeEmail:
		return emailPattern.MatchString(raw)
	case TypePhone:
		return phonePattern.MatchString(raw)
	case TypeWiFi:
		ssid, _, _ := strings.Cut(raw, ",")
		return len(ssid) > 0
	}
	return len(raw) > 0
}

// NormalizeURL assumes https:// for bare domains.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://" + raw
}

// FromQuickEntry builds a content record from the one-line form:
// "ssid,password[,encryption]" for wifi, a bare number for phone and sms,
// a bare domain or URL for url.
func FromQuickEntry(t Type, raw string) (Content, error) {
	raw = strings.TrimSpace(raw)
	switch t {
	case TypeURL:
		return URL{URL: NormalizeURL(raw)}, nil
	case TypeText:
		return Text{Text: raw}, nil
	case TypeEmail:
		return Email{Email: raw}, nil
	case TypePhone:
		return Phone{Number: nonDialable.ReplaceAllString(raw, "")}, nil
	case TypeSMS:
		return SMS{Number: nonDialable.ReplaceAllString(raw, "")}, nil
	case TypeWiFi:
		parts := strings.Split(raw, ",")
		w := WiFi{SSID: strings.TrimSpace(parts[0]), Encryption: EncryptionWPA}
		if len(parts) > 1 {
			w.Password = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			w.Encryption = Encryption(strings.TrimSpace(parts[2]))
		}
		return w, nil
	case TypeMeCard:
		return MeCard{Name: raw}, nil
	case TypeBitcoin:
		return Bitcoin{Address: raw}, nil
	case TypeFacebook, TypeTwitter, TypeYouTube:
		return Social{Platform: t, Username: strings.TrimPrefix(raw, "@")}, nil
	case TypeVCard, TypeLocation, TypeEvent:
		return nil, invalid(t, "input")
	}
	return nil, &UnsupportedTypeError{Type: string(t)}
}
