package api

type HTTPResponse struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
}

type SignInRequest struct {
	APIKey    string `json:"apiKey"`
	APISecret string `json:"apiSecret"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

type ActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}

type TimeEntriesResponse struct {
	TimeEntries []TimeEntry `json:"timeEntries"`
}

// ErrorResponse is the body Timeular sends along with a failing status code.
type ErrorResponse struct {
	Message string `json:"message"`
}
