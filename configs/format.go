package configs

import "os"

// EnvOutputFormat overrides the configured output format.
const EnvOutputFormat = "SS_OUTPUT_FORMAT"

// OutputFormatFor picks the result format name: an explicit --format value wins, then
// SS_OUTPUT_FORMAT, then the config file. An empty result means the default format.
func (c *Config) OutputFormatFor(explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case os.Getenv(EnvOutputFormat) != "":
		return os.Getenv(EnvOutputFormat)
	case c != nil:
		return c.OutputFormat
	default:
		return ""
	}
}
