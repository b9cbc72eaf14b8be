package client

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"sort"
	"time"

	"github.com/owenbush/timeular2noko/api"
	"golang.org/x/sync/errgroup"
)

// ListTimeEntries returns the entries tracked between start and end, each
// with its Activity attached (nil when no activity matches), sorted by start
// time. Entries sharing a start time keep the order the server sent them in.
func (c *Client) ListTimeEntries(ctx context.Context, start, end time.Time) ([]api.TimeEntry, error) {
	entries, err := c.listTimeEntries(ctx, start, end)
	if err != nil {
		return nil, c.fail(err)
	}
	return entries, nil
}

func (c *Client) listTimeEntries(ctx context.Context, start, end time.Time) ([]api.TimeEntry, error) {
	var (
		entries    []api.TimeEntry
		activities []api.Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := c.do(gctx, c.timeEntriesEndpoint(start, end), stdhttp.MethodGet, nil)
		if err != nil {
			return err
		}

		var response api.TimeEntriesResponse
		if err := c.processResponse(raw, &response); err != nil {
			return err
		}
		entries = response.TimeEntries
		return nil
	})
	g.Go(func() error {
		var err error
		activities, err = c.listActivities(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]api.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		entry.Activity = findActivity(activities, entry.ActivityID)
		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start().Before(result[j].Start())
	})

	return result, nil
}

func (c *Client) timeEntriesEndpoint(start, end time.Time) string {
	return fmt.Sprintf(c.Config.TimeEntriesPath, api.ToServiceTimestamp(start), api.ToServiceTimestamp(end))
}
