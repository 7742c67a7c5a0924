// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mia-platform/nsdebug/internal/channel"
)

const (
	NameField      = "name"
	NamespaceField = "namespace"
)

var (
	// ErrParsing reports failures that occur while decoding channel files.
	ErrParsing = errors.New("error parsing")
)

// ChannelConfig is a single YAML document of a channel file.
type ChannelConfig struct {
	Name        string `json:"name" yaml:"name"`
	Namespace   string `json:"namespace" yaml:"namespace"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Definition converts the config to a channel definition.
func (c *ChannelConfig) Definition() channel.Definition {
	return channel.Definition{
		Name:      c.Name,
		Namespace: c.Namespace,
	}
}

// NewChannelConfigsFromPath parses the file at path and returns the channel configurations
// it contains, one per YAML document, in file order.
func NewChannelConfigsFromPath(path string) ([]*ChannelConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return decodeChannelConfigs(path, file)
}

func decodeChannelConfigs(path string, reader io.Reader) ([]*ChannelConfig, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	configs := make([]*ChannelConfig, 0)
	for {
		config := new(ChannelConfig)
		err := decoder.Decode(&config)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
		}

		// empty documents decode to nil
		if config == nil {
			continue
		}

		missingFields := []string{}
		if strings.TrimSpace(config.Name) == "" {
			missingFields = append(missingFields, NameField)
		}
		if strings.TrimSpace(config.Namespace) == "" {
			missingFields = append(missingFields, NamespaceField)
		}

		if len(missingFields) > 0 {
			return nil, fmt.Errorf("%w %q: missing required fields: %v", ErrParsing, path, strings.Join(missingFields, ", "))
		}

		configs = append(configs, config)
	}

	return configs, nil
}

// LoadDefinitions returns the built-in channel definitions followed by the ones read
// from paths, in order.
func LoadDefinitions(paths []string) ([]channel.Definition, error) {
	definitions := channel.Defaults()
	for _, path := range paths {
		configs, err := NewChannelConfigsFromPath(path)
		if err != nil {
			return nil, err
		}

		for _, config := range configs {
			definitions = append(definitions, config.Definition())
		}
	}

	return definitions, nil
}
