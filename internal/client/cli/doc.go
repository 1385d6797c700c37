// Package cli provides the login command-line client.
//
// Commands:
//   - test-login: ask the server whether a username/password pair is valid
//   - login: obtain a session token and print it
//   - provision: hash a password locally and write a credential file that the
//     server can load as its root account
//
// Global flags --config, --host and --timeout override the JSON config file
// (see package config). A --host passed to a successful login is saved to the
// config file so later commands can omit it.
package cli
