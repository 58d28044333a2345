package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/tournament/pkg/model"
	"github.com/limaJavier/tournament/pkg/sat"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "STS"

type Config struct {
	Solver   string        `mapstructure:"solver"`
	Budget   time.Duration `mapstructure:"budget"`
	Encoding string        `mapstructure:"encoding"`
	// Executables by solver name; solvers left out are looked up on PATH
	Solvers     map[string]string `mapstructure:"solvers"`
	LogLevel    string            `mapstructure:"log-level"`
	Development bool              `mapstructure:"development"`
	MetricsFile string            `mapstructure:"metrics-file"`
	OutputDir   string            `mapstructure:"output-dir"`
	Format      string            `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("solver", "gini")
	v.SetDefault("budget", 300*time.Second)
	v.SetDefault("encoding", model.PairingEncoding.String())
	v.SetDefault("solvers", map[string]string{})
	v.SetDefault("log-level", "info")
	v.SetDefault("development", false)
	v.SetDefault("metrics-file", "")
	v.SetDefault("output-dir", "res")
	v.SetDefault("format", "json")
}

// Load merges, from lowest to highest precedence, the defaults, the file at
// path (if any), STS_ environment variables and the flags the user set.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config Config) Validate() error {
	var errs []error
	if !slices.Contains(sat.Solvers(), config.Solver) {
		errs = append(errs, fmt.Errorf("%q is not a valid solver, allowed values are %v", config.Solver, sat.Solvers()))
	}
	if config.Budget <= 0 {
		errs = append(errs, fmt.Errorf("budget must be positive: %v", config.Budget))
	}
	if _, err := model.ParseEncoding(config.Encoding); err != nil {
		errs = append(errs, err)
	}
	if config.Format != "json" && config.Format != "yaml" {
		errs = append(errs, fmt.Errorf("%q is not a valid format, allowed values are json and yaml", config.Format))
	}
	return errors.Join(errs...)
}

// NewSolver builds the configured solver, or the named one when name is not
// empty.
func (config Config) NewSolver(name string) (sat.SATSolver, error) {
	if name == "" {
		name = config.Solver
	}
	return sat.NewSolver(name, config.Solvers)
}
