package config

const (
	defaultLogDir                = "~/.local/share/evtsift/logs"
	defaultJournalPath           = "~/.local/share/evtsift/journal.db"
	defaultDecoderBinary         = "LogParser.exe"
	defaultDecoderTimeoutSeconds = 300
	defaultDelimiter             = ","
	defaultPlaceholder           = "§"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Decoder: Decoder{
			// Binary stays empty here; normalize fills it from the
			// EVTSIFT_DECODER environment variable before falling back to
			// the stock decoder name.
			Binary:         "",
			TimeoutSeconds: defaultDecoderTimeoutSeconds,
		},
		Output: Output{
			Delimiter:   defaultDelimiter,
			Placeholder: defaultPlaceholder,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Workers: 0,
	}
}
