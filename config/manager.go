package config

import (
	"errors"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const maskedValue = "********"

type Manager struct {
	configStore ConfigStore
	Config      Config
}

// NewManager overlays the user config file on the defaults. A missing file
// is not an error; an unreadable or malformed one is.
func NewManager(cs ConfigStore) (*Manager, error) {
	configuration := cs.ReadDefaults()

	userConfig, err := cs.Read()
	switch {
	case err == nil:
		configuration = replaceByConfigFile(configuration, userConfig)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	return &Manager{configStore: cs, Config: configuration}, nil
}

// WithEnvironment overlays TIMEULAR_<YAML TAG> environment variables.
func (c *Manager) WithEnvironment() *Manager {
	c.Config = replaceByEnvironment(c.Config)
	return c
}

// WithSecretFile loads the api secret from APISecretFile when no secret was
// configured directly.
func (c *Manager) WithSecretFile() (*Manager, error) {
	if c.Config.APISecret != "" || c.Config.APISecretFile == "" {
		return c, nil
	}

	secret, err := ReadSecretFile(c.Config.APISecretFile)
	if err != nil {
		return c, err
	}
	c.Config.APISecret = secret

	return c, nil
}

func (c *Manager) EnvVarName(tag string) string {
	return strings.ToUpper(c.Config.Name) + "_" + strings.ToUpper(tag)
}

// Credentials returns the api key and secret, or an error naming the
// environment variables that would provide them.
func (c *Manager) Credentials() (string, string, error) {
	var missing []string
	if c.Config.APIKey == "" {
		missing = append(missing, c.EnvVarName("api_key"))
	}
	if c.Config.APISecret == "" {
		missing = append(missing, c.EnvVarName("api_secret"))
	}
	if len(missing) > 0 {
		return "", "", errors.New("missing credentials, set " + strings.Join(missing, " and "))
	}
	return c.Config.APIKey, c.Config.APISecret, nil
}

// ShowConfig serializes the current configuration to a YAML string with the
// credentials masked.
func (c *Manager) ShowConfig() (string, error) {
	masked := c.Config
	if masked.APIKey != "" {
		masked.APIKey = maskedValue
	}
	if masked.APISecret != "" {
		masked.APISecret = maskedValue
	}

	data, err := yaml.Marshal(masked)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// WriteCredentials stores the key and secret in the user config file,
// keeping whatever else the file holds. Defaults and environment overrides
// are not written. The in-memory config picks up the new credentials.
func (c *Manager) WriteCredentials(key, secret string) error {
	userConfig, err := c.configStore.Read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	userConfig.APIKey = key
	userConfig.APISecret = secret
	userConfig.APISecretFile = ""
	if err := c.configStore.Write(userConfig); err != nil {
		return err
	}

	c.Config.APIKey = key
	c.Config.APISecret = secret

	return nil
}

func replaceByConfigFile(defaultConfig, userConfig Config) Config {
	t := reflect.TypeOf(defaultConfig)
	vDefault := reflect.ValueOf(&defaultConfig).Elem()
	vUser := reflect.ValueOf(userConfig)

	for i := 0; i < t.NumField(); i++ {
		defaultField := vDefault.Field(i)
		userField := vUser.Field(i)

		switch defaultField.Kind() {
		case reflect.String:
			if userStr := userField.String(); userStr != "" {
				defaultField.SetString(userStr)
			}
		case reflect.Bool:
			defaultField.SetBool(userField.Bool())
		}
	}

	return defaultConfig
}

func replaceByEnvironment(configuration Config) Config {
	t := reflect.TypeOf(configuration)
	v := reflect.ValueOf(&configuration).Elem()

	prefix := strings.ToUpper(configuration.Name) + "_"
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "name" {
			continue
		}

		if value := os.Getenv(prefix + strings.ToUpper(tag)); value != "" {
			field := v.Field(i)

			switch field.Kind() {
			case reflect.String:
				field.SetString(value)
			case reflect.Bool:
				boolValue, _ := strconv.ParseBool(value)
				field.SetBool(boolValue)
			}
		}
	}

	return configuration
}
