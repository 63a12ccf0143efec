package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/timevault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-b string   public base URL used in shareable links
//	-t int      session token validity, minutes
//	-r float    public access route rate limit, requests per second per IP
//	-u int      public access route burst size
//
// Args are first filtered to the flags handled here via flagx.FilterArgs so
// the -c/-config flag of the JSON stage does not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-t", "-r", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL for shareable links")

	sessionTokenValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session_token_validity_duration (in minutes)")

	fs.Float64Var(&config.AccessRateLimitRPS, "r", config.AccessRateLimitRPS, "access route rate limit (requests per second per IP)")
	fs.IntVar(&config.AccessRateLimitBurst, "u", config.AccessRateLimitBurst, "access route rate limit burst")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTokenValidityDuration = time.Duration(*sessionTokenValidity) * time.Minute
}
