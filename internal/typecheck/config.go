package typecheck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=ForwardRefPolicy -output=forwardrefpolicy_string.go

// ForwardRefPolicy governs what happens when a forward reference cannot
// be resolved against the check context's environment.
type ForwardRefPolicy int

const (
	// ForwardRefError raises a ResolutionError.
	ForwardRefError ForwardRefPolicy = iota
	// ForwardRefWarn emits a warning and treats the value as unchecked.
	ForwardRefWarn
	// ForwardRefIgnore silently treats the value as unchecked.
	ForwardRefIgnore
)

// CheckConfig is the configuration bundle threaded through every check
// call. It is immutable for the duration of a top-level validation.
type CheckConfig struct {
	ForwardRefPolicy        ForwardRefPolicy
	CollectionCheckStrategy CollectionCheckStrategy
}

// DefaultConfig returns the default configuration: warn on unresolvable
// forward references, check all collection elements.
func DefaultConfig() CheckConfig {
	return CheckConfig{
		ForwardRefPolicy:        ForwardRefWarn,
		CollectionCheckStrategy: AllElements{},
	}
}

// ConfigFile is the YAML-facing representation of a CheckConfig.
type ConfigFile struct {
	// ForwardRefPolicy is one of "error", "warn" or "ignore".
	// Defaults to "warn" if omitted.
	ForwardRefPolicy string `yaml:"forward_ref_policy,omitempty"`

	// Collection selects which container elements are actually checked.
	Collection struct {
		// Strategy is "all_items" or "first_items". Defaults to "all_items".
		Strategy string `yaml:"strategy,omitempty"`

		// SampleSize bounds the number of elements checked under the
		// "first_items" strategy. Defaults to 1.
		SampleSize int `yaml:"sample_size,omitempty"`
	} `yaml:"collection,omitempty"`
}

// LoadConfig reads and parses a typefence.yaml configuration file.
func LoadConfig(path string) (CheckConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CheckConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses configuration content from bytes. The path argument
// is used only for error messages.
func ParseConfig(data []byte, path string) (CheckConfig, error) {
	var file ConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return CheckConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg, err := file.resolve()
	if err != nil {
		return CheckConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (f *ConfigFile) resolve() (CheckConfig, error) {
	cfg := DefaultConfig()

	switch f.ForwardRefPolicy {
	case "", "warn":
		cfg.ForwardRefPolicy = ForwardRefWarn
	case "error":
		cfg.ForwardRefPolicy = ForwardRefError
	case "ignore":
		cfg.ForwardRefPolicy = ForwardRefIgnore
	default:
		return CheckConfig{}, fmt.Errorf("unknown forward_ref_policy %q", f.ForwardRefPolicy)
	}

	switch f.Collection.Strategy {
	case "", "all_items":
		cfg.CollectionCheckStrategy = AllElements{}
	case "first_items":
		size := f.Collection.SampleSize
		if size <= 0 {
			size = 1
		}
		cfg.CollectionCheckStrategy = FirstN{N: size}
	default:
		return CheckConfig{}, fmt.Errorf("unknown collection strategy %q", f.Collection.Strategy)
	}
	if f.Collection.SampleSize < 0 {
		return CheckConfig{}, fmt.Errorf("collection sample_size must not be negative, got %d", f.Collection.SampleSize)
	}

	return cfg, nil
}
