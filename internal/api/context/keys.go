package context

type Key string

const (
	APIKey    Key = "api_key"
	Params    Key = "params"
	RequestID Key = "request_id"
)
