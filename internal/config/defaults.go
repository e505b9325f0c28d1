package config

const (
	defaultLogDir    = "~/.local/share/tamer/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	userRulesPath   = "~/.config/tamer/rules.ini"
	systemRulesPath = "/etc/tamer/rules.ini"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
