package client

import (
	"context"
	stdhttp "net/http"

	"github.com/owenbush/timeular2noko/api"
)

// Connect signs in with the developer api key and secret and keeps the
// returned bearer token for all later requests. Once a token is held it is
// returned without touching the network. Failures are returned unchanged.
func (c *Client) Connect(ctx context.Context, apiKey, apiSecret string) (string, error) {
	return c.session.Connect(ctx, func(ctx context.Context) (string, error) {
		raw, err := c.Request(ctx, c.Config.SignInPath, stdhttp.MethodPost, api.SignInRequest{
			APIKey:    apiKey,
			APISecret: apiSecret,
		})
		if err != nil {
			return "", err
		}

		var response api.SignInResponse
		if err := c.processResponse(raw, &response); err != nil {
			return "", err
		}

		return response.Token, nil
	})
}
