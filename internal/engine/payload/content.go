package payload

import "time"

type Type string

const (
	TypeURL      Type = "url"
	TypeText     Type = "text"
	TypeEmail    Type = "email"
	TypePhone    Type = "phone"
	TypeSMS      Type = "sms"
	TypeVCard    Type = "vcard"
	TypeMeCard   Type = "mecard"
	TypeLocation Type = "location"
	TypeWiFi     Type = "wifi"
	TypeEvent    Type = "event"
	TypeBitcoin  Type = "bitcoin"
	TypeFacebook Type = "facebook"
	TypeTwitter  Type = "twitter"
	TypeYouTube  Type = "youtube"
)

var allTypes = []Type{
	TypeURL, TypeText, TypeEmail, TypePhone, TypeSMS, TypeVCard, TypeMeCard,
	TypeLocation, TypeWiFi, TypeEvent, TypeBitcoin, TypeFacebook, TypeTwitter, TypeYouTube,
}

// Types returns the closed set of content tags in display order.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType maps a raw discriminator onto the closed set.
func ParseType(raw string) (Type, error) {
	for _, t := range allTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", &UnsupportedTypeError{Type: raw}
}

// Content is implemented only by the variant structs in this package.
// Each variant builds its own payload, so a new variant cannot compile
// without an encoder.
type Content interface {
	Type() Type
	payload() (string, error)
}

type URL struct {
	URL string `json:"url"`
}

type Text struct {
	Text string `json:"text"`
}

type Email struct {
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

type Phone struct {
	Number string `json:"number"`
}

type SMS struct {
	Number  string `json:"number"`
	Message string `json:"message,omitempty"`
}

type VCard struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Organization string `json:"organization,omitempty"`
	Title        string `json:"title,omitempty"`
	WorkPhone    string `json:"workPhone,omitempty"`
	HomePhone    string `json:"homePhone,omitempty"`
	MobilePhone  string `json:"mobilePhone,omitempty"`
	WorkFax      string `json:"workFax,omitempty"`
	HomeFax      string `json:"homeFax,omitempty"`
	Email        string `json:"email,omitempty"`
	Website      string `json:"website,omitempty"`
	Street       string `json:"street,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Country      string `json:"country,omitempty"`
}

type MeCard struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

type Encryption string

const (
	EncryptionWEP  Encryption = "WEP"
	EncryptionWPA  Encryption = "WPA"
	EncryptionNone Encryption = "nopass"
)

func (e Encryption) valid() bool {
	switch e {
	case EncryptionWEP, EncryptionWPA, EncryptionNone:
		return true
	}
	return false
}

type WiFi struct {
	SSID       string     `json:"ssid"`
	Encryption Encryption `json:"encryption"`
	Password   string     `json:"password,omitempty"`
	Hidden     bool       `json:"hidden,omitempty"`
}

type Event struct {
	Title       string     `json:"title"`
	StartDate   time.Time  `json:"startDate"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	AllDay      bool       `json:"allDay,omitempty"`
}

type Bitcoin struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount,omitempty"`
	Label   string  `json:"label,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Social covers the profile-link variants; Platform is the tag.
type Social struct {
	Platform Type   `json:"-"`
	Username string `json:"username"`
}

var socialDomains = map[Type]string{
	TypeFacebook: "facebook.com",
	TypeTwitter:  "twitter.com",
	TypeYouTube:  "youtube.com",
}

func (URL) Type() Type      { return TypeURL }
func (Text) Type() Type     { return TypeText }
func (Email) Type() Type    { return TypeEmail }
func (Phone) Type() Type    { return TypePhone }
func (SMS) Type() Type      { return TypeSMS }
func (VCard) Type() Type    { return TypeVCard }
func (MeCard) Type() Type   { return TypeMeCard }
func (Location) Type() Type { return TypeLocation }
func (WiFi) Type() Type     { return TypeWiFi }
func (Event) Type() Type    { return TypeEvent }
func (Bitcoin) Type() Type  { return TypeBitcoin }
func (s Social) Type() Type { return s.Platform }
