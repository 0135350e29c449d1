// Package elevate implements the privilege-elevation gate around form
// operations.
//
// Shared form state lives under a dedicated "forms admin" service account
// that ordinary users cannot touch. Every form operation therefore runs
// with two identities: the caller's session, which all authorization
// decisions are made against, and a per-request elevated session
// authenticated as the service account, which performs the actual storage
// reads and writes. The gate establishes the elevated session, verifies
// the service account still holds admin capability, and releases the
// session on every exit path.
package elevate
