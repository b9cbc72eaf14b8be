package session

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

const connectKey = "connect"

var ErrEmptyToken = errors.New("authentication returned an empty token")

// Authenticator exchanges credentials for a bearer token.
type Authenticator func(ctx context.Context) (string, error)

// Session holds the bearer token of a single account. The token is set once
// by a successful Connect and never cleared.
type Session struct {
	mu    sync.RWMutex
	token string
	group singleflight.Group
}

func New() *Session {
	return &Session{}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Connect returns the held token, or runs authenticate to obtain one.
// Concurrent first-time callers share a single authenticate call. The shared
// call runs detached from any one caller's cancellation, so a caller giving
// up returns ctx.Err() without failing the others. A failure is returned
// unchanged and leaves the session unauthenticated.
func (s *Session) Connect(ctx context.Context, authenticate Authenticator) (string, error) {
	if token := s.Token(); token != "" {
		return token, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(connectKey, func() (interface{}, error) {
		if token := s.Token(); token != "" {
			return token, nil
		}

		token, err := authenticate(shared)
		if err != nil {
			return "", err
		}
		if token == "" {
			return "", ErrEmptyToken
		}

		s.mu.Lock()
		s.token = token
		s.mu.Unlock()

		return token, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(string), nil
	}
}
