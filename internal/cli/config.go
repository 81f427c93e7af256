package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/toyz/axon-conventions/internal/codefix"
	axonerrors "github.com/toyz/axon-conventions/internal/errors"
	"github.com/toyz/axon-conventions/pkg/axonconv"
)

// DefaultConfigFile is looked up in the module root when no config is given
const DefaultConfigFile = ".axonconv.yaml"

var validate = validator.New()

// Config holds the configuration for a check run
type Config struct {
	// Strategy selects how fixes are chosen: auto, annotate or extract
	Strategy string `yaml:"strategy" validate:"omitempty,oneof=auto annotate extract"`

	// Concurrency bounds how many packages are analyzed at once (0 = GOMAXPROCS)
	Concurrency int `yaml:"concurrency" validate:"gte=0,lte=256"`

	// Exclude holds doublestar patterns of files that are never reported
	Exclude []string `yaml:"exclude" validate:"dive,required"`

	// Disabled holds diagnostic ids that are never reported, matched exactly
	Disabled []string `yaml:"disabled" validate:"dive,oneof=AXON1004 AXON1005"`

	// Tests includes _test.go files in the analysis
	Tests bool `yaml:"tests"`

	// MaxPasses bounds how often fixes are re-applied until none remain
	MaxPasses int `yaml:"max_passes" validate:"gte=1,lte=20"`

	// Fix writes suggested fixes back to disk
	Fix bool `yaml:"-"`

	// Patterns are the package patterns to load
	Patterns []string `yaml:"-" validate:"min=1,dive,required"`

	// Dir is the directory patterns are resolved from
	Dir string `yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Strategy:  codefix.StrategyAuto.String(),
		MaxPasses: 5,
		Patterns:  []string{"./..."},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, axonerrors.WrapConfigurationError(path, "read", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, axonerrors.WrapConfigurationError(path, "parse", err)
	}
	return config, nil
}

// FindConfig returns the default config file inside dir, if present
func FindConfig(dir string) (string, bool) {
	path := filepath.Join(dir, DefaultConfigFile)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fieldErr := validationErrors[0]
			return axonerrors.NewValidationError(fieldErr.Namespace(), fieldErr.Value(), fieldErr.Tag(), describeValidation(fieldErr))
		}
		return axonerrors.Wrap(axonerrors.ConfigurationErrorCode, "invalid config", err)
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return axonerrors.NewValidationError("Config.Exclude", pattern, "pattern",
				fmt.Sprintf("exclude pattern %q is malformed", pattern)).
				WithSuggestion("exclude entries use doublestar syntax, e.g. **/*_gen.go")
		}
	}
	return nil
}

// Workers returns the effective concurrency
func (c *Config) Workers() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// AnalyzerOptions converts the configuration into analyzer options
func (c *Config) AnalyzerOptions() (axonconv.Options, error) {
	strategy, err := codefix.ParseStrategy(c.Strategy)
	if err != nil {
		return axonconv.Options{}, err
	}
	return axonconv.Options{
		Strategy: strategy,
		Exclude:  append([]string(nil), c.Exclude...),
		Disabled: append([]string(nil), c.Disabled...),
	}, nil
}

func describeValidation(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fieldErr.Namespace(), fieldErr.Param(), fieldErr.Value())
	case "required":
		return fmt.Sprintf("%s must not be empty", fieldErr.Namespace())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", fieldErr.Namespace(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Param(), fieldErr.Value())
	}
}
