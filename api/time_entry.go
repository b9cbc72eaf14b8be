package api

import (
	"math"
	"time"
)

type TimeEntry struct {
	ID         string   `json:"id" yaml:"id"`
	ActivityID string   `json:"activityId" yaml:"activity_id"`
	Duration   Duration `json:"duration" yaml:"duration"`
	Note       Note     `json:"note" yaml:"note"`

	// Activity is attached after the entry has been matched against the
	// activity list. It stays nil when no activity carries ActivityID.
	Activity *Activity `json:"activity,omitempty" yaml:"activity,omitempty"`
}

type Duration struct {
	StartedAt Timestamp `json:"startedAt" yaml:"started_at"`
	StoppedAt Timestamp `json:"stoppedAt" yaml:"stopped_at"`
}

type Note struct {
	Text     string    `json:"text" yaml:"text"`
	Tags     []Tag     `json:"tags" yaml:"tags"`
	Mentions []Mention `json:"mentions" yaml:"mentions"`
}

type Tag struct {
	ID      int    `json:"id" yaml:"id"`
	Key     string `json:"key" yaml:"key"`
	Label   string `json:"label" yaml:"label"`
	Scope   string `json:"scope" yaml:"scope"`
	SpaceID string `json:"spaceId" yaml:"space_id"`
}

type Mention Tag

func (t TimeEntry) Start() time.Time {
	return t.Duration.StartedAt.Time
}

func (t TimeEntry) Stop() time.Time {
	return t.Duration.StoppedAt.Time
}

// Elapsed returns the tracked interval. Entries without a stop time report zero.
func (t TimeEntry) Elapsed() time.Duration {
	if t.Stop().IsZero() || t.Stop().Before(t.Start()) {
		return 0
	}
	return t.Stop().Sub(t.Start())
}

// Minutes rounds Elapsed to the nearest whole minute.
func (t TimeEntry) Minutes() int {
	return int(math.Round(t.Elapsed().Minutes()))
}

// ActivityName returns the attached activity's name, or "" when unresolved.
func (t TimeEntry) ActivityName() string {
	if t.Activity == nil {
		return ""
	}
	return t.Activity.Name
}
