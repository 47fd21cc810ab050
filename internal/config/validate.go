package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFingerprint(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.RecordFile == "" {
		return errors.New("paths.record_file must be set")
	}
	return nil
}

func (c *Config) validateFingerprint() error {
	if c.Fingerprint.Grid < 1 {
		return errors.New("fingerprint.grid must be at least 1")
	}
	if c.Fingerprint.VideoWidth < 1 || c.Fingerprint.VideoHeight < 1 {
		return errors.New("fingerprint.video_width and fingerprint.video_height must be positive")
	}
	if c.Fingerprint.DecodeTimeout < 0 {
		return errors.New("fingerprint.decode_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
