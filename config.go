// Copyright 2025 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package djot

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/djot/internal/logging"
)

// Config is a set of parser and renderer options
// stored as YAML:
//
//	log_level: debug
//	html:
//	  raw_text: false
//	  block_separator: "\n"
type Config struct {
	// LogLevel is the minimum level of records written to standard error
	// by parsers built with [*Config.NewParser].
	// If empty, parsers do not log.
	LogLevel string     `yaml:"log_level,omitempty"`
	HTML     HTMLConfig `yaml:"html"`
}

// HTMLConfig is the YAML form of [HTMLRenderer].
type HTMLConfig struct {
	RawText        bool   `yaml:"raw_text"`
	BlockSeparator string `yaml:"block_separator"`
}

// MarshalYAML writes the block separator as a double-quoted scalar.
func (c HTMLConfig) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "raw_text"},
			{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(c.RawText)},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "block_separator"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.BlockSeparator, Style: yaml.DoubleQuotedStyle},
		},
	}, nil
}

// LoadConfig decodes a configuration from r.
// Unknown keys and unknown log levels are errors.
// An empty input yields the default configuration.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := new(Config)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	return cfg, nil
}

// Encode writes the configuration to w as YAML.
func (cfg *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// NewParser returns a [Parser] that logs at the configured level.
func (cfg *Config) NewParser() *Parser {
	return cfg.newParser(nil)
}

// newParser is [*Config.NewParser] with a configurable log destination.
// A nil w means standard error.
func (cfg *Config) newParser(w io.Writer) *Parser {
	if cfg.LogLevel == "" {
		return new(Parser)
	}
	var logger *log.Logger
	if w == nil {
		logger = logging.New(cfg.LogLevel)
	} else {
		logger = logging.NewWriter(w, cfg.LogLevel)
	}
	return &Parser{Logger: logger}
}

// NewHTMLRenderer returns an [HTMLRenderer] with the configured options.
func (cfg *Config) NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		RawText:        cfg.HTML.RawText,
		BlockSeparator: cfg.HTML.BlockSeparator,
	}
}
