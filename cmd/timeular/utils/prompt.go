package utils

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

var ErrLoginAborted = errors.New("login aborted")

// LineReader is the part of *readline.Instance the credential prompt uses.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	ReadPassword(prompt string) ([]byte, error)
}

// PromptCredentials asks for the api key in the clear and for the secret
// with echo masked. Ctrl-C and end of input abort the login.
func PromptCredentials(r LineReader) (string, string, error) {
	r.SetPrompt("API key: ")
	key, err := r.Readline()
	if err != nil {
		return "", "", promptError(err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", errors.New("api key must not be empty")
	}

	secret, err := r.ReadPassword("API secret: ")
	if err != nil {
		return "", "", promptError(err)
	}
	trimmed := strings.TrimSpace(string(secret))
	if trimmed == "" {
		return "", "", errors.New("api secret must not be empty")
	}

	return key, trimmed, nil
}

func promptError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return ErrLoginAborted
	}
	return err
}
