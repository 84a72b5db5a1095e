package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	Prompt         string   `json:"prompt"`
	Color          string   `json:"color" validate:"oneof=always auto never"`
	HistorySize    int      `json:"history_size" validate:"gte=1"`
	MaxReplayDepth int      `json:"max_replay_depth" validate:"gte=1"`
	EventLog       string   `json:"event_log"`
	PathExtra      []string `json:"path_extra" validate:"dive,required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Dir is the directory the configuration was loaded from, or "" for the
// built-in defaults.
func (c *Configuration) Dir() string {
	return c.configDir
}

// EventLogPath resolves the event log relative to the configuration
// directory. It returns "" if event logging is disabled.
func (c *Configuration) EventLogPath() string {
	switch {
	case c.EventLog == "":
		return ""
	case filepath.IsAbs(c.EventLog) || c.configDir == "":
		return c.EventLog
	default:
		return filepath.Join(c.configDir, c.EventLog)
	}
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLogPath(), os.O_RDONLY, 0600)
}

// SearchPath builds the PATH for child processes from the given base value.
func (c *Configuration) SearchPath(base string) string {
	if len(c.PathExtra) == 0 {
		return base
	}
	dirs := filepath.SplitList(base)
	dirs = append(dirs, c.PathExtra...)
	return strings.Join(dirs, string(filepath.ListSeparator))
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration backed by the OS filesystem.
func Default() *Configuration {
	cfg := defaultConfig()
	cfg.configFs = afero.NewOsFs()
	return cfg
}
