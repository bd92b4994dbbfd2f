package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds process-level settings resolved from defaults, an optional
// config file and MENTORA_-prefixed environment variables, in increasing
// precedence.
type Config struct {
	APIURL string
	Locale string
}

const defaultAPIURL = "https://api.mentora.lk"

// Load resolves the configuration. A missing config file is not an error;
// a malformed one is.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("locale", "en")

	v.SetEnvPrefix("MENTORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "mentora"))
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		APIURL: strings.TrimRight(v.GetString("api_url"), "/"),
		Locale: v.GetString("locale"),
	}, nil
}
