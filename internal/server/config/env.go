package config

import "os"

// parseEnv overlays values from the environment. Key material only ever
// enters through here so it never appears on a command line or in a config
// file checked into a repo.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ENC_KEY_BASE64"); ok {
		config.EncKeyBase64 = v
	}
	if v, ok := os.LookupEnv("TOKEN_HMAC_SECRET"); ok {
		config.TokenHMACSecret = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.JWTSecret = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("BASE_URL"); ok {
		config.BaseURL = v
	}
}
