package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/todoauth/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string    HTTP bind address (e.g., "0.0.0.0:4242")
//	-d string    database DSN
//	-k string    token secret location (file path or s3://bucket/key)
//	-t duration  token lifetime (e.g., "1h")
//	-r string    root credential file provisioned at startup
//	-w int       hashing workers
//	-x           equalize timing for unknown usernames
//	-l string    log level
//	-g string    S3 region
//	-e string    S3 base endpoint
//	-u string    S3 access key
//	-p string    S3 secret key
//
// Flags not listed are dropped by flagx.FilterArgs so they do not collide
// with the JSON loader's -c/-config.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-k", "-t", "-r", "-w", "-x", "-l", "-g", "-e", "-u", "-p"},
		"-x")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKeyFile, "k", config.SecretKeyFile, "token secret file or s3:// location")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "token lifetime")
	fs.StringVar(&config.RootCredentialFile, "r", config.RootCredentialFile, "root credential file")
	fs.IntVar(&config.HashWorkers, "w", config.HashWorkers, "concurrent password hashing workers")
	fs.BoolVar(&config.EqualizeTiming, "x", config.EqualizeTiming, "hash a dummy password for unknown usernames")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
