package client

import (
	"context"
	stdhttp "net/http"

	"github.com/owenbush/timeular2noko/api"
)

// ListActivities returns the account's activities in the order the server
// sent them.
func (c *Client) ListActivities(ctx context.Context) ([]api.Activity, error) {
	activities, err := c.listActivities(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	return activities, nil
}

// GetActivity returns the first activity whose ID matches, or nil when there
// is none.
func (c *Client) GetActivity(ctx context.Context, id string) (*api.Activity, error) {
	activities, err := c.listActivities(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	return findActivity(activities, id), nil
}

func (c *Client) listActivities(ctx context.Context) ([]api.Activity, error) {
	raw, err := c.do(ctx, c.Config.ActivitiesPath, stdhttp.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var response api.ActivitiesResponse
	if err := c.processResponse(raw, &response); err != nil {
		return nil, err
	}

	if response.Activities == nil {
		return []api.Activity{}, nil
	}
	return response.Activities, nil
}

func findActivity(activities []api.Activity, id string) *api.Activity {
	for i := range activities {
		if activities[i].ID == id {
			return &activities[i]
		}
	}
	return nil
}
