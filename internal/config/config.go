// Package config loads the process-wide otuflow configuration.
//
// The configuration names the external tool for each step and tunes the
// parallel backend. It is loaded exactly once at startup and passed down by
// value to whatever needs it; nothing reads it ambiently afterwards.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/otuflow/otuflow/pkg/workflow"
)

// Config is the full otuflow configuration.
type Config struct {
	Tools    ToolsConfig    `mapstructure:"tools"`
	Parallel ParallelConfig `mapstructure:"parallel"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ToolsConfig overrides the external program invoked per step, keyed by step
// name. Steps without an entry use the built-in tool name.
type ToolsConfig struct {
	Programs map[string]string `mapstructure:"programs"`
}

// ParallelConfig tunes the parallel backend.
type ParallelConfig struct {
	// Jobs is the number of jobs the wrapper script is asked to start.
	Jobs int `mapstructure:"jobs"`
	// WrapperPrefix is prepended to a tool name to locate its parallel
	// wrapper.
	WrapperPrefix string `mapstructure:"wrapper_prefix"`
}

// LoggingConfig controls the per-run debug log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// Load reads the configuration from the given file, or from otuflow.yaml in
// the working directory and $HOME/.otuflow when path is empty. Environment
// variables prefixed OTUFLOW_ override file values. A missing file is not an
// error; defaults apply.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("parallel.jobs", 2)
	v.SetDefault("parallel.wrapper_prefix", "parallel_")
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("OTUFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("otuflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.otuflow")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "unable to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unable to decode config")
	}

	return cfg, nil
}

// StepPrograms converts the tool overrides to the builder's keying.
func (c Config) StepPrograms() map[workflow.StepName]string {
	programs := make(map[workflow.StepName]string, len(c.Tools.Programs))
	for step, program := range c.Tools.Programs {
		programs[workflow.StepName(step)] = program
	}

	return programs
}
