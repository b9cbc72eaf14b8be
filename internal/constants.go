package internal

const (
	HeaderContentTypeKey   = "Content-Type"
	HeaderContentTypeValue = "application/json"
	HeaderUserAgentKey     = "User-Agent"
)
