package payload

import (
	"math"
	"strings"
)

// lineBreak is the two-character escaped newline used inside vCard and
// VEVENT payloads; readers expand it, an actual newline is not emitted.
const lineBreak = `\n`

const isoMillis = "2006-01-02T15:04:05.000Z"

// Encode returns the string a QR code must carry for c. It is pure: the
// same content always yields byte-identical output.
func Encode(c Content) (string, error) {
	if c == nil {
		return "", &UnsupportedTypeError{Type: ""}
	}
	text, err := c.payload()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPayload
	}
	return text, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (c URL) payload() (string, error) {
	if blank(c.URL) {
		return "", missing(TypeURL, "url")
	}
	return c.URL, nil
}

func (c Text) payload() (string, error) {
	if blank(c.Text) {
		return "", missing(TypeText, "text")
	}
	return c.Text, nil
}

func (c Email) payload() (string, error) {
	if blank(c.Email) {
		return "", missing(TypeEmail, "email")
	}
	return buildQuery("mailto:"+c.Email,
		queryPair{"subject", encoded(c.Subject)},
		queryPair{"body", encoded(c.Body)},
	), nil
}

func (c Phone) payload() (string, error) {
	if blank(c.Number) {
		return "", missing(TypePhone, "number")
	}
	return "tel:" + c.Number, nil
}

func (c SMS) payload() (string, error) {
	if blank(c.Number) {
		return "", missing(TypeSMS, "number")
	}
	if c.Message == "" {
		return "smsto:" + c.Number, nil
	}
	return "smsto:" + c.Number + ":" + c.Message, nil
}

func (c VCard) payload() (string, error) {
	if blank(c.FirstName) {
		return "", missing(TypeVCard, "firstName")
	}
	if blank(c.LastName) {
		return "", missing(TypeVCard, "lastName")
	}

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + c.LastName + ";" + c.FirstName,
		"FN:" + c.FirstName + " " + c.LastName,
	}
	optional := []struct{ prefix, value string }{
		{"ORG:", c.Organization},
		{"TITLE:", c.Title},
		{"TEL;TYPE=WORK:", c.WorkPhone},
		{"TEL;TYPE=HOME:", c.HomePhone},
		{"TEL;TYPE=CELL:", c.MobilePhone},
		{"TEL;TYPE=WORK,FAX:", c.WorkFax},
		{"TEL;TYPE=HOME,FAX:", c.HomeFax},
		{"EMAIL:", c.Email},
		{"URL:", c.Website},
	}
	for _, f := range optional {
		if f.value != "" {
			lines = append(lines, f.prefix+f.value)
		}
	}
	// ADR needs both street and city; the remaining parts may be empty.
	if c.Street != "" && c.City != "" {
		lines = append(lines, "ADR:;;"+strings.Join([]string{c.Street, c.City, c.State, c.ZipCode, c.Country}, ";"))
	}
	lines = append(lines, "END:VCARD")

	return strings.Join(lines, lineBreak), nil
}

// MeCard keeps empty keys, unlike VCard; existing printed codes rely on it.
func (c MeCard) payload() (string, error) {
	if blank(c.Name) {
		return "", missing(TypeMeCard, "name")
	}
	return "MECARD:N:" + c.Name +
		";TEL:" + c.Phone +
		";EMAIL:" + c.Email +
		";URL:" + c.Website +
		";ADR:" + c.Address + ";", nil
}

func (c Location) payload() (string, error) {
	if !inRange(c.Latitude, 90) {
		return "", invalid(TypeLocation, "latitude")
	}
	if !inRange(c.Longitude, 180) {
		return "", invalid(TypeLocation, "longitude")
	}
	base := "geo:" + formatNumber(c.Latitude) + "," + formatNumber(c.Longitude)
	return buildQuery(base, queryPair{"q", encoded(c.Name)}), nil
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

func (c WiFi) payload() (string, error) {
	if blank(c.SSID) {
		return "", missing(TypeWiFi, "ssid")
	}
	if c.Encryption == "" {
		return "", missing(TypeWiFi, "encryption")
	}
	if !c.Encryption.valid() {
		return "", invalid(TypeWiFi, "encryption")
	}

	fields := []string{"T:" + string(c.Encryption), "S:" + c.SSID}
	if c.Password != "" {
		fields = append(fields, "P:"+c.Password)
	}
	if c.Hidden {
		fields = append(fields, "H:true")
	}
	return "WIFI:" + strings.Join(fields, ";") + ";", nil
}

func (c Event) payload() (string, error) {
	if blank(c.Title) {
		return "", missing(TypeEvent, "title")
	}
	if c.StartDate.IsZero() {
		return "", missing(TypeEvent, "startDate")
	}

	lines := []string{"BEGIN:VEVENT", "SUMMARY:" + c.Title}
	if c.Description != "" {
		lines = append(lines, "DESCRIPTION:"+c.Description)
	}
	if c.Location != "" {
		lines = append(lines, "LOCATION:"+c.Location)
	}
	lines = append(lines, "DTSTART:"+c.StartDate.UTC().Format(isoMillis))
	if c.EndDate != nil && !c.EndDate.IsZero() {
		lines = append(lines, "DTEND:"+c.EndDate.UTC().Format(isoMillis))
	}
	lines = append(lines, "END:VEVENT")

	return strings.Join(lines, lineBreak), nil
}

func (c Bitcoin) payload() (string, error) {
	if blank(c.Address) {
		return "", missing(TypeBitcoin, "address")
	}
	if math.IsNaN(c.Amount) || math.IsInf(c.Amount, 0) || c.Amount < 0 {
		return "", invalid(TypeBitcoin, "amount")
	}

	var amount string
	if c.Amount != 0 {
		amount = formatNumber(c.Amount)
	}
	return buildQuery("bitcoin:"+c.Address,
		queryPair{"amount", amount},
		queryPair{"label", encoded(c.Label)},
		queryPair{"message", encoded(c.Message)},
	), nil
}

func (c Social) payload() (string, error) {
	domain, ok := socialDomains[c.Platform]
	if !ok {
		return "", &UnsupportedTypeError{Type: string(c.Platform)}
	}
	if blank(c.Username) {
		return "", missing(c.Platform, "username")
	}
	return "https://" + domain + "/" + c.Username, nil
}
