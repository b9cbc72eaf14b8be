package internal

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	ConfigHomeEnv     = "TIMEULAR_CONFIG_HOME"
	DefaultConfigDir  = ".timeular"
	CorrelationLength = 8
)

// NewCorrelationID returns a short random id used to tie together the debug
// lines of a single request.
func NewCorrelationID() string {
	return uuid.New().String()[:CorrelationLength]
}

func GetConfigHome() (string, error) {
	if tmp := os.Getenv(ConfigHomeEnv); tmp != "" {
		return tmp, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, DefaultConfigDir), nil
}
