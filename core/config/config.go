package config

import (
	"reflect"
	"strings"

	"github.com/matthewlchambers/standardizedinventories/core/logger"
	"github.com/matthewlchambers/standardizedinventories/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SourceYear holds the per-vintage parameters of one source database.
type SourceYear struct {
	// DownloadURL is where the raw file for this year is published. A .zip
	// URL is extracted after download.
	DownloadURL string `mapstructure:"download_url"`
	// FileName is the name of the raw file, also used inside zip archives.
	FileName string `mapstructure:"file_name"`
	// FileVersion is the publisher's version label for this vintage.
	FileVersion string `mapstructure:"file_version"`
	// Files lists the preprocessed data commons objects for this year.
	Files []string `mapstructure:"files"`
}

// SourceConfig holds configuration for one source database across years.
type SourceConfig struct {
	// NationalURL is the reference totals URL template; __year__ and
	// __version__ are substituted per vintage.
	NationalURL string `mapstructure:"national_url"`
	// NationalVersion maps a year onto the version token of its reference
	// totals download.
	NationalVersion map[string]string `mapstructure:"national_version"`
	// Years maps a year onto its raw file parameters.
	Years map[string]SourceYear `mapstructure:"years"`
}

// HasYear reports whether the source publishes data for the year.
func (s SourceConfig) HasYear(year string) bool {
	_, ok := s.Years[year]
	return ok
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Storage holds configuration for local artifacts and the data commons.
	Storage storage.Config `mapstructure:"storage"`
	// NEI holds configuration for the national emissions inventory source.
	NEI SourceConfig `mapstructure:"nei"`
	// EGRID holds configuration for the power plant generation source.
	EGRID SourceConfig `mapstructure:"egrid"`
}

// LoadConfig loads configuration from defaults, an optional config.yaml in
// path, environment variables, and a .env file, in increasing precedence for
// the scalar settings. The per-year source tables default in code and are
// overridden wholesale by config.yaml entries.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists (ignore error, e.g. production)
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. LOG_LEVEL -> log.level)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	_ = v.ReadInConfig() // the file is optional

	config := Default()
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values
// in Viper based on the 'default' and 'mapstructure' tags. Map and slice
// fields are left to Default and the config file.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		switch field.Type.Kind() {
		case reflect.Struct:
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		case reflect.Map, reflect.Slice:
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
