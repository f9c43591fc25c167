// Package config loads the route operations configuration.
//
// A configuration file lists the operation instances to create and, for each
// instance, a section naming its plugin type plus plugin-specific parameters:
//
//	use_feedback_operations: true
//	operations: [AdjustSpeedLimit, Closures]
//	Closures:
//	  plugin: EdgeClosures
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultOperationID is the operation created when none are configured.
	DefaultOperationID = "AdjustSpeedLimit"
	// DefaultOperationPlugin is the plugin type of the default operation.
	DefaultOperationPlugin = "AdjustSpeedLimit"

	// KeyPlugin is the section key naming an operation's plugin type.
	KeyPlugin = "plugin"
)

// ErrMissingPluginType is returned when an operation section does not name a plugin type.
var ErrMissingPluginType = errors.New("missing plugin type")

var validate = validator.New()

// Config is the explicit configuration of the operations manager.
// It is not mutated after construction.
type Config struct {
	Operations            []string       `mapstructure:"operations" validate:"unique,dive,required"`
	UseFeedbackOperations *bool          `mapstructure:"use_feedback_operations"`
	Sections              map[string]any `mapstructure:",remain"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	feedback := true
	return Config{
		Operations:            []string{DefaultOperationID},
		UseFeedbackOperations: &feedback,
		Sections:              map[string]any{},
	}
}

// Load reads a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse builds a Config from a generic map, applying defaults and validating it.
func Parse(raw map[string]any) (Config, error) {
	cfg := Config{}
	if err := Decode(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Operations == nil {
		cfg.Operations = []string{DefaultOperationID}
	}
	if cfg.UseFeedbackOperations == nil {
		feedback := true
		cfg.UseFeedbackOperations = &feedback
	}
	if cfg.Sections == nil {
		cfg.Sections = map[string]any{}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that operation IDs are non-empty and unique.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// FeedbackEnabled reports whether unknown graph operations are delegated to
// the feedback channel instead of failing. Defaults to true.
func (c Config) FeedbackEnabled() bool {
	if c.UseFeedbackOperations == nil {
		return true
	}
	return *c.UseFeedbackOperations
}

// OperationSpec resolves the plugin type and parameters of an operation ID.
// The default plugin type is only implied when the operation list is exactly
// the default list.
func (c Config) OperationSpec(id string) (string, map[string]any, error) {
	section, err := c.section(id)
	if err != nil {
		return "", nil, err
	}

	params := make(map[string]any, len(section))
	pluginType := ""
	for k, v := range section {
		if k == KeyPlugin {
			s, ok := v.(string)
			if !ok {
				return "", nil, fmt.Errorf("operation %s: %s must be a string", id, KeyPlugin)
			}
			pluginType = s
			continue
		}
		params[k] = v
	}

	if pluginType == "" && id == DefaultOperationID && slices.Equal(c.Operations, []string{DefaultOperationID}) {
		pluginType = DefaultOperationPlugin
	}
	if pluginType == "" {
		return "", nil, fmt.Errorf("operation %s: %w", id, ErrMissingPluginType)
	}
	return pluginType, params, nil
}

func (c Config) section(id string) (map[string]any, error) {
	raw, ok := c.Sections[id]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("operation %s: section must be a mapping", id)
	}
	return section, nil
}

// Decode maps generic configuration values onto a typed struct using
// mapstructure tags. Strings are converted to durations and scalar types are
// weakly coerced, so "0.5" and 0.5 both decode into a float64.
func Decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
