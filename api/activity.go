package api

// Activity is a tracked category. Time entries reference it by ID.
type Activity struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Color       string `json:"color" yaml:"color"`
	Integration string `json:"integration" yaml:"integration"`
	SpaceID     string `json:"spaceId" yaml:"space_id"`
}
