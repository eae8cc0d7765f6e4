package config

import (
	"github.com/kbukum/logmerge/errors"
	"github.com/kbukum/logmerge/logger"
	"github.com/kbukum/logmerge/observability"
	"github.com/kbukum/logmerge/util"
	"github.com/kbukum/logmerge/validation"
)

// Config is the full logmerge configuration.
type Config struct {
	Name        string               `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string               `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config        `yaml:"logging" mapstructure:"logging"`
	Telemetry   observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Merge       MergeConfig          `yaml:"merge" mapstructure:"merge"`
}

// MergeConfig describes one merge or filter run. Command-line flags take
// precedence over these values.
type MergeConfig struct {
	// Inputs are the source files, in order; "-" reads standard input.
	Inputs []string `yaml:"inputs" mapstructure:"inputs" validate:"dive,required"`
	// Output is the destination file; "-" writes standard output.
	Output string `yaml:"output" mapstructure:"output"`
	// Filter names the predicate records must satisfy.
	Filter string `yaml:"filter" mapstructure:"filter"`
	// Order names the ordering used to interleave sources.
	Order string `yaml:"order" mapstructure:"order"`
	// Print echoes each merged record to standard output.
	Print bool `yaml:"print" mapstructure:"print"`
	// BufferSize is the read and write buffer size, e.g. "64KB".
	BufferSize string `yaml:"buffer_size" mapstructure:"buffer_size"`
	// MaxLineSize is the longest accepted line, e.g. "1MB".
	MaxLineSize string `yaml:"max_line_size" mapstructure:"max_line_size"`
}

// Sizes returns BufferSize and MaxLineSize in bytes. Empty values are 0,
// which selects the reader defaults.
func (m *MergeConfig) Sizes() (bufSize, maxLineSize int, err error) {
	buf, err := util.ParseSize(m.BufferSize)
	if err != nil {
		return 0, 0, errors.InvalidInput("merge.buffer_size", err.Error())
	}
	maxLine, err := util.ParseSize(m.MaxLineSize)
	if err != nil {
		return 0, 0, errors.InvalidInput("merge.max_line_size", err.Error())
	}
	return int(buf), int(maxLine), nil
}

// Default run settings.
const (
	DefaultName        = "logmerge"
	DefaultEnvironment = "development"
	DefaultFilter      = "all"
	DefaultOrder       = "lexical"
	DefaultOutput      = "-"
)

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	c.Telemetry.Environment = c.Environment
	c.Merge.ApplyDefaults()
}

// ApplyDefaults fills unset run settings. Buffer sizes left empty fall back
// to the reader defaults.
func (m *MergeConfig) ApplyDefaults() {
	if m.Filter == "" {
		m.Filter = DefaultFilter
	}
	if m.Order == "" {
		m.Order = DefaultOrder
	}
	if m.Output == "" {
		m.Output = DefaultOutput
	}
}

// Validate checks the configuration and returns an INVALID_INPUT error
// describing every problem found.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidInput("logging", err.Error())
	}
	if _, _, err := c.Merge.Sizes(); err != nil {
		return err
	}
	return validation.Validate(c)
}
