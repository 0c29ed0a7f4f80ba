package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/userbook/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN (postgres://... or sqlite://path)
//	-s          seed sample users into an empty table
//	-r float    per-IP requests per second, 0 disables limiting
//	-b int      rate limit burst
//	-t int      shutdown timeout, seconds
//	-l string   log level
//	-p string   comma-separated trusted proxies (CIDR or IP)
//
// os.Args is filtered through flagx.FilterArgs first so the -c/-config
// flag read by parseJson does not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-r", "-b", "-t", "-l", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.SeedSampleData, "s", config.SeedSampleData, "seed sample users into an empty table")
	fs.Float64Var(&config.RateLimitRPS, "r", config.RateLimitRPS, "requests per second per client IP (0 disables)")
	fs.IntVar(&config.RateLimitBurst, "b", config.RateLimitBurst, "rate limit burst")
	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	trustedProxies := fs.String("p", strings.Join(config.TrustedProxies, ","), "trusted proxies, comma-separated")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only when given, so sub-second values from other layers survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
		case "p":
			config.TrustedProxies = splitList(*trustedProxies)
		}
	})
}

// splitList turns "a, b,,c" into [a b c]; an empty string gives nil.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
