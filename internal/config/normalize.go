package config

import "strings"

// normalize expands paths and fills omitted values with defaults so
// validation and runtime code only see complete settings.
func (c *Config) normalize() error {
	defaults := Default()

	if strings.TrimSpace(c.Paths.RecordFile) == "" {
		c.Paths.RecordFile = defaults.Paths.RecordFile
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaults.Paths.LogDir
	}
	if strings.TrimSpace(c.Paths.DropDir) == "" {
		c.Paths.DropDir = defaults.Paths.DropDir
	}

	for _, field := range []*string{&c.Paths.RecordFile, &c.Paths.LogDir, &c.Paths.DropDir} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	if c.Fingerprint.Grid == 0 {
		c.Fingerprint.Grid = defaults.Fingerprint.Grid
	}
	if c.Fingerprint.VideoWidth == 0 {
		c.Fingerprint.VideoWidth = defaults.Fingerprint.VideoWidth
	}
	if c.Fingerprint.VideoHeight == 0 {
		c.Fingerprint.VideoHeight = defaults.Fingerprint.VideoHeight
	}
	if c.Fingerprint.DecodeTimeout == 0 {
		c.Fingerprint.DecodeTimeout = defaults.Fingerprint.DecodeTimeout
	}

	if c.Notifications.RequestTimeout == 0 {
		c.Notifications.RequestTimeout = defaults.Notifications.RequestTimeout
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}

	return nil
}
