package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"github.com/owenbush/timeular2noko/api"
	"github.com/owenbush/timeular2noko/config"
)

const (
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errFailedToMakeRequest   = "failed to make request: %w"
)

// Caller performs a single HTTP exchange. It reports an error only when no
// response was received; status codes are left to the caller to classify.
type Caller interface {
	Do(ctx context.Context, method, url string, body []byte, headers map[string]string) (*api.HTTPResponse, error)
}

type RestCaller struct {
	client *http.Client
}

// Ensure RestCaller implements Caller interface
var _ Caller = &RestCaller{}

func New(cfg config.Config) *RestCaller {
	var client *http.Client
	if cfg.SkipTLSVerify {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		client = &http.Client{
			Transport: transport,
		}
	} else {
		client = &http.Client{}
	}

	return &RestCaller{
		client: client,
	}
}

type CallerFactory func(cfg config.Config) Caller

func RealCallerFactory(cfg config.Config) Caller {
	return New(cfg)
}

func (r *RestCaller) Do(ctx context.Context, method, url string, body []byte, headers map[string]string) (*api.HTTPResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf(errFailedToCreateRequest, err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	response, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFailedToMakeRequest, err)
	}
	defer response.Body.Close()

	result, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToRead, err)
	}

	respHeaders := make(map[string]string, len(response.Header))
	for k := range response.Header {
		respHeaders[k] = response.Header.Get(k)
	}

	return &api.HTTPResponse{
		StatusCode: response.StatusCode,
		Status:     statusMessage(response),
		Headers:    respHeaders,
		Body:       result,
	}, nil
}

// statusMessage strips the numeric code from "404 Not Found".
func statusMessage(response *http.Response) string {
	prefix := fmt.Sprintf("%d ", response.StatusCode)
	if len(response.Status) > len(prefix) && response.Status[:len(prefix)] == prefix {
		return response.Status[len(prefix):]
	}
	if text := http.StatusText(response.StatusCode); text != "" {
		return text
	}
	return response.Status
}
