// Package audit emits security-relevant events in RFC5424 syslog format.
//
// Elevation failures, authorization denials and all writes (form versions,
// assignments, data submissions) are audited. Validation failures are not;
// they are expected and frequent.
package audit
