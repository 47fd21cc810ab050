package config

const (
	defaultRecordFile           = "~/.local/share/framekey/processed_videos.txt"
	defaultLogDir               = "~/.local/share/framekey/logs"
	defaultDropDir              = "~/.local/share/framekey/drop"
	defaultGrid                 = 4
	defaultVideoWidth           = 1920
	defaultVideoHeight          = 1080
	defaultDecodeTimeoutSeconds = 30
	defaultNotifyTimeoutSeconds = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RecordFile: defaultRecordFile,
			LogDir:     defaultLogDir,
			DropDir:    defaultDropDir,
		},
		Fingerprint: Fingerprint{
			Grid:          defaultGrid,
			VideoWidth:    defaultVideoWidth,
			VideoHeight:   defaultVideoHeight,
			DecodeTimeout: defaultDecodeTimeoutSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
