// Package credentials defines the stored unit of authentication, a username
// paired with a secret of some kind, and everything needed to persist and
// check it.
//
// A Credential is an immutable value. The only kind today is PasswordHash,
// a self-describing Argon2id string (see package cryptox). Credentials are
// either produced by Hasher.Hash from a plaintext password, or read back
// from storage with New / Deserialize / LoadFromFile.
//
// # Textual form
//
// A password credential serializes to
//
//	<username>+<encoded-hash>
//
// Only the first '+' is significant. Encoded hashes may contain '+' (they
// use standard base64), usernames may not: ValidateUsername restricts them
// to ASCII letters, digits, '_' and '-', and every construction path runs it.
package credentials
