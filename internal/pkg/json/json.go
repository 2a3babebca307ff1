package json

import jsoniter "github.com/json-iterator/go"

var (
	// JSON is the jsoniter configuration used across the service. It is
	// compatible with encoding/json tags and Marshaler/Unmarshaler hooks.
	JSON = jsoniter.ConfigCompatibleWithStandardLibrary

	Marshal    = JSON.Marshal
	Unmarshal  = JSON.Unmarshal
	NewDecoder = JSON.NewDecoder
	NewEncoder = JSON.NewEncoder
)

// RawMessage mirrors encoding/json.RawMessage for request envelopes whose
// shape depends on a discriminator.
type RawMessage = jsoniter.RawMessage
