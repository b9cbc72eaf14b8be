package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/owenbush/timeular2noko/internal"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	timeularName            = "timeular"
	timeularURL             = "https://api.timeular.com/api/v3/"
	timeularSignInPath      = "developer/sign-in"
	timeularActivitiesPath  = "activities"
	timeularTimeEntriesPath = "time-entries/%s/%s"
	timeularAuthHeader      = "Authorization"
	timeularAuthTokenPrefix = "Bearer "
	timeularUserAgent       = "timeular2noko"
	configFileName          = "config.yaml"
	tomlConfigFileName      = "config.toml"

	lockRetryInterval = 50 * time.Millisecond
	lockTimeout       = 5 * time.Second
)

//go:generate mockgen -destination=configmocks_test.go -package=config_test github.com/owenbush/timeular2noko/config ConfigStore
type ConfigStore interface {
	Read() (Config, error)
	ReadDefaults() Config
	Write(Config) error
}

// Ensure FileIO implements ConfigStore interface
var _ ConfigStore = &FileIO{}

type FileIO struct {
	configFilePath string
}

// New points at config.yaml in the config home, or config.toml when only
// that one exists.
func New() *FileIO {
	configPath, _ := getPath()

	return &FileIO{
		configFilePath: configPath,
	}
}

func (f *FileIO) WithConfigPath(configFilePath string) *FileIO {
	f.configFilePath = configFilePath
	return f
}

func (f *FileIO) Path() string {
	return f.configFilePath
}

func (f *FileIO) Read() (Config, error) {
	return parseFile(f.configFilePath)
}

func (f *FileIO) ReadDefaults() Config {
	return Config{
		Name:            timeularName,
		URL:             timeularURL,
		SignInPath:      timeularSignInPath,
		ActivitiesPath:  timeularActivitiesPath,
		TimeEntriesPath: timeularTimeEntriesPath,
		AuthHeader:      timeularAuthHeader,
		AuthTokenPrefix: timeularAuthTokenPrefix,
		UserAgent:       timeularUserAgent,
	}
}

// Write serializes the config in the format implied by the file extension.
func (f *FileIO) Write(config Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(f.configFilePath) {
		data, err = toml.Marshal(config)
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.configFilePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	lock := newFileLock(f.configFilePath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	return writeAtomic(f.configFilePath, data)
}

// writeAtomic replaces path through a temp file in the same directory so a
// reader never sees a half-written config. The file holds the api secret,
// hence 0600.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func getPath() (string, error) {
	homeDir, err := internal.GetConfigHome()
	if err != nil {
		return "", err
	}

	yamlPath := filepath.Join(homeDir, configFileName)
	tomlPath := filepath.Join(homeDir, tomlConfigFileName)
	if _, err := os.Stat(yamlPath); err != nil {
		if _, err := os.Stat(tomlPath); err == nil {
			return tomlPath, nil
		}
	}

	return yamlPath, nil
}

func parseFile(fileName string) (Config, error) {
	var result Config

	buf, err := os.ReadFile(fileName)
	if err != nil {
		return Config{}, err
	}

	if isTOML(fileName) {
		if err := toml.Unmarshal(buf, &result); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		return result, nil
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return result, nil
}

func isTOML(fileName string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".toml")
}
