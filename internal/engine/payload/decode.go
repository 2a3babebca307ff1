package payload

import (
	"bytes"
	"fmt"

	"tecsoqr/internal/pkg/json"
)

// Decode reads a content record in the web client's shape: a JSON object
// with a "type" discriminator and camelCase fields.
func Decode(data []byte) (Content, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}

	t, err := ParseType(head.Type)
	if err != nil {
		return nil, err
	}

	switch t {
	case TypeURL:
		return decodeAs[URL](data)
	case TypeText:
		return decodeAs[Text](data)
	case TypeEmail:
		return decodeAs[Email](data)
	case TypePhone:
		return decodeAs[Phone](data)
	case TypeSMS:
		return decodeAs[SMS](data)
	case TypeVCard:
		return decodeAs[VCard](data)
	case TypeMeCard:
		return decodeAs[MeCard](data)
	case TypeLocation:
		return decodeLocation(data)
	case TypeWiFi:
		return decodeAs[WiFi](data)
	case TypeEvent:
		return decodeAs[Event](data)
	case TypeBitcoin:
		return decodeAs[Bitcoin](data)
	case TypeFacebook, TypeTwitter, TypeYouTube:
		c, err := decodeAs[Social](data)
		if err != nil {
			return nil, err
		}
		s := c.(Social)
		s.Platform = t
		return s, nil
	}
	return nil, &UnsupportedTypeError{Type: head.Type}
}

func decodeAs[T Content](data []byte) (Content, error) {
	var c T
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Type(), err)
	}
	return c, nil
}

// Coordinates are numbers where zero is meaningful, so absence is detected
// before the value lands in a float64.
func decodeLocation(data []byte) (Content, error) {
	var aux struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Name      string   `json:"name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, fmt.Errorf("decode location: %w", err)
	}
	if aux.Latitude == nil {
		return nil, missing(TypeLocation, "latitude")
	}
	if aux.Longitude == nil {
		return nil, missing(TypeLocation, "longitude")
	}
	return Location{Latitude: *aux.Latitude, Longitude: *aux.Longitude, Name: aux.Name}, nil
}

// Marshal is the inverse of Decode.
func Marshal(c Content) ([]byte, error) {
	if c == nil {
		return nil, &UnsupportedTypeError{}
	}
	body, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	tag, err := json.Marshal(string(c.Type()))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if rest := bytes.TrimSpace(body[1:]); len(rest) > 1 {
		buf.WriteByte(',')
		buf.Write(rest)
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}
