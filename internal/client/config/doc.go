// Package config loads runtime configuration for the login CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. JSON file, by default <user config dir>/todo/config.json. A missing
//     file is generated with the defaults.
//  3. Command-line flags, applied by the CLI on top of the loaded Config.
//
// # JSON schema
//
// Durations are either strings like "10s" or integer nanoseconds:
//
//	{
//	  "host": "http://127.0.0.1:4242/",
//	  "timeout": "10s"
//	}
//
// An absent or empty host means no server has been chosen yet; commands that
// talk to a server then fail with ErrNoHost unless --host is given.
package config
