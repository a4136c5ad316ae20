package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDecoder(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateWorkers(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDecoder() error {
	if c.Decoder.Binary == "" {
		return errors.New("decoder.binary must be set (or export EVTSIFT_DECODER)")
	}
	if c.Decoder.TimeoutSeconds < 0 {
		return errors.New("decoder.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if utf8.RuneCountInString(c.Output.Delimiter) != 1 {
		return fmt.Errorf("output.delimiter must be a single character, got %q", c.Output.Delimiter)
	}
	if utf8.RuneCountInString(c.Output.Placeholder) != 1 {
		return fmt.Errorf("output.placeholder must be a single character, got %q", c.Output.Placeholder)
	}
	if c.Output.Delimiter == c.Output.Placeholder {
		return errors.New("output.placeholder must differ from output.delimiter")
	}
	return nil
}

func (c *Config) validateWorkers() error {
	if c.Workers < 0 {
		return errors.New("workers must not be negative (0 selects host cores minus one)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
