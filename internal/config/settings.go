package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings keys, shared by flags, environment and labctl.yaml.
const (
	KeyAPIKey        = "api_key"
	KeyRegion        = "region"
	KeySite          = "site"
	KeyVDC           = "vdc"
	KeyResourceGroup = "resource_group"
	KeyLab           = "lab"
	KeyLabsFile      = "labs_file"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
)

// SettingsFileName is the base name of the optional settings file.
const SettingsFileName = "labctl.yaml"

// Settings identifies the target environment and lab for a run.
type Settings struct {
	APIKey        string `mapstructure:"api_key" yaml:"-" validate:"required"`
	Region        string `mapstructure:"region" yaml:"region" validate:"required"`
	Site          string `mapstructure:"site" yaml:"site" validate:"required"`
	VDC           string `mapstructure:"vdc" yaml:"vdc" validate:"required"`
	ResourceGroup string `mapstructure:"resource_group" yaml:"resource_group,omitempty"`
	Lab           string `mapstructure:"lab" yaml:"lab" validate:"required,lab_name"`
	LabsFile      string `mapstructure:"labs_file" yaml:"labs_file,omitempty"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat     string `mapstructure:"log_format" yaml:"log_format,omitempty" validate:"omitempty,oneof=auto console json"`
}

// Validate checks that every required setting is present.
func (s *Settings) Validate() error {
	return convertValidationError(validatorInstance().Struct(s))
}

// NewViper returns a viper instance wired for labctl: LABCTL_* environment
// variables, IBMCLOUD_API_KEY as a fallback for the API key, and labctl.yaml
// in the working directory or the user config directory.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("LABCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyAPIKey, "LABCTL_API_KEY", "IBMCLOUD_API_KEY")

	for _, key := range []string{KeyRegion, KeySite, KeyVDC, KeyResourceGroup, KeyLabsFile} {
		v.SetDefault(key, "")
	}
	v.SetDefault(KeyLab, DefaultLab)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "auto")

	v.SetConfigName(strings.TrimSuffix(SettingsFileName, filepath.Ext(SettingsFileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "labctl"))
	}

	return v
}

// ReadSettingsFile loads the settings file into v. An explicit path must
// exist; otherwise a missing labctl.yaml is not an error.
func ReadSettingsFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	return nil
}

// LoadSettings decodes and validates the settings held by v.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &s, nil
}
