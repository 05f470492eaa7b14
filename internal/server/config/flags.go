package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/simpletwitter/internal/flagx"
)

// parseFlags overlays command-line flags:
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-n string   database driver, "pgx" or "sqlite"
//	-d string   database DSN
//	-s string   token HMAC secret
//	-t int      token validity, hours
//	-k int      bcrypt cost
//	-l string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-m int      media URL expiry, minutes
//
// Only these flags are looked at, so -c/-config and foreign flags pass
// through untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-n", "-d", "-s", "-t", "-k", "-l", "-u", "-p", "-b", "-g", "-e", "-m",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "n", config.DatabaseDriver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	mediaExpiry := fs.Int("m", int(config.MediaURLExpiry.Minutes()), "media URL expiry (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Whole-unit flags only replace a duration that was given explicitly;
	// otherwise a sub-hour value from JSON or env would be truncated.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		case "m":
			config.MediaURLExpiry = time.Duration(*mediaExpiry) * time.Minute
		}
	})
}
