package config

type Config struct {
	Name            string `yaml:"name" toml:"name"`
	APIKey          string `yaml:"api_key" toml:"api_key"`
	APISecret       string `yaml:"api_secret" toml:"api_secret"`
	APISecretFile   string `yaml:"api_secret_file" toml:"api_secret_file"`
	URL             string `yaml:"url" toml:"url"`
	SignInPath      string `yaml:"sign_in_path" toml:"sign_in_path"`
	ActivitiesPath  string `yaml:"activities_path" toml:"activities_path"`
	TimeEntriesPath string `yaml:"time_entries_path" toml:"time_entries_path"`
	AuthHeader      string `yaml:"auth_header" toml:"auth_header"`
	AuthTokenPrefix string `yaml:"auth_token_prefix" toml:"auth_token_prefix"`
	UserAgent       string `yaml:"user_agent" toml:"user_agent"`
	SkipTLSVerify   bool   `yaml:"skip_tls_verify" toml:"skip_tls_verify"`
	Debug           bool   `yaml:"debug" toml:"debug"`
}
