// Package client is the client-side counterpart of the login server.
//
// # Overview
//
// Client is the transport-agnostic contract; HTTPClient implements it over
// HTTP+JSON. Request paths are resolved relative to the configured host, so
// "http://auth.example:4242/" yields "http://auth.example:4242/v1/login".
// A host without a trailing slash has its last path segment replaced, as
// with any relative URL reference.
//
// # Error Handling
//
// Security outcomes are values, not errors: TestLogin reports false for 403
// and 404. Login maps them to ErrUnauthorized and ErrUnknownUser. Network
// failures wrap ErrUnavailable and any other status is returned as
// *UnexpectedResponseError carrying the status and body.
package client
