package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/timevault/internal/flagx"
	"github.com/dmitrijs2005/timevault/internal/timex"
)

// JsonConfig is the JSON-file shape of Config. Duration fields accept both
// strings like "24h" and integer nanoseconds via timex.Duration. Secrets are
// deliberately absent: they come from the environment (see env.go).
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	BaseURL                      string         `json:"base_url"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	AccessRateLimitRPS           float64        `json:"access_rate_limit_rps"`
	AccessRateLimitBurst         int            `json:"access_rate_limit_burst"`
	ShutdownTimeout              timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads configuration from the JSON file named by -c/-config.
// Nothing is loaded when the flag is absent. Unreadable or invalid files
// panic: a half-applied config file is worse than no startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.BaseURL != "" {
		config.BaseURL = c.BaseURL
	}
	if c.SessionTokenValidityDuration.Duration != 0 {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.AccessRateLimitRPS != 0 {
		config.AccessRateLimitRPS = c.AccessRateLimitRPS
	}
	if c.AccessRateLimitBurst != 0 {
		config.AccessRateLimitBurst = c.AccessRateLimitBurst
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
