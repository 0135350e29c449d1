// Package session models authenticated connections to the host application.
//
// Two kinds of session flow through every form operation: the caller's own
// session, built by the middleware from the host webapp's session token,
// and the privilege-elevated service session opened per request by
// pkg/elevate. Authorization decisions always use the caller's session;
// reads and writes of shared form state use the elevated one.
package session
