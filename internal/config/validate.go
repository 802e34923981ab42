package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateLoader(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	switch c.Dataset.Subset {
	case "all", "none", "train", "test":
	default:
		return fmt.Errorf("dataset.subset must be one of all, train, test (got %q)", c.Dataset.Subset)
	}
	if len(c.Dataset.Extensions) == 0 {
		return errors.New("dataset.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateLoader() error {
	if c.Loader.BatchSize <= 0 {
		return errors.New("loader.batch_size must be positive")
	}
	if c.Loader.ValidationSplit < 0 || c.Loader.ValidationSplit >= 1 {
		return errors.New("loader.validation_split must be in [0, 1)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	return nil
}
