package config

import (
	"strings"

	"github.com/rshade/vlist/internal/logging"
)

// ToLoggingConfig maps the logging section onto logging.Config. A file path
// selects file output; debug level also records the caller.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	cfg := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
		Caller: strings.EqualFold(lc.Level, "debug"),
	}
	if lc.File != "" {
		cfg.Output = logging.OutputFile
		cfg.File = lc.File
	}
	return cfg
}
