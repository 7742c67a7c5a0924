// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/mia-platform/nsdebug/internal/namespace"
)

const (
	httpPortEnvName = "HTTP_PORT"

	ChannelOutputWriter = "writer"
	ChannelOutputLogger = "logger"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")

	validChannelOutputs = []string{ChannelOutputWriter, ChannelOutputLogger}
)

type Config struct {
	DisableStartupMessage bool   `env:"DISABLE_STARTUP_MESSAGE" envDefault:"true"`
	HTTPHost              string `env:"HTTP_HOST" envDefault:""`
	HTTPPort              int    `env:"HTTP_PORT" envDefault:"3001"`

	// Debug is the activation spec applied at startup.
	Debug string `env:"DEBUG"`
	// DebugRequiredPattern must be listed in Debug for the channels to be reconfigurable.
	DebugRequiredPattern string `env:"DEBUG_REQUIRED_PATTERN" envDefault:"app:*"`
	ChannelOutput        string `env:"CHANNEL_OUTPUT" envDefault:"writer"`
	ChannelColors        bool   `env:"CHANNEL_COLORS" envDefault:"false"`

	// PortFromEnv reports whether HTTP_PORT was set instead of defaulted.
	PortFromEnv bool `env:"-"`
}

// Passthrough reports whether the startup spec misses the required pattern. In that case
// the channels keep their startup activation and the set route falls through.
func (c *Config) Passthrough() bool {
	return !namespace.Parse(c.Debug).HasInclusion(namespace.NewPattern(c.DebugRequiredPattern))
}

func LoadServerConfig() (*Config, error) {
	var envVars Config
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}
	_, envVars.PortFromEnv = os.LookupEnv(httpPortEnvName)

	if err := validateEnvironmentVariables(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

func validateEnvironmentVariables(envVars *Config) error {
	envError := make([]string, 0)

	if envVars.HTTPPort < 1 || envVars.HTTPPort > 65535 {
		envError = append(envError, "HTTP_PORT is out of valid range (1-65535)")
	}

	if !slices.Contains(validChannelOutputs, strings.ToLower(envVars.ChannelOutput)) {
		envError = append(envError, "CHANNEL_OUTPUT must be one of "+strings.Join(validChannelOutputs, ", "))
	}

	if strings.TrimSpace(envVars.DebugRequiredPattern) == "" {
		envError = append(envError, "DEBUG_REQUIRED_PATTERN cannot be empty")
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}
