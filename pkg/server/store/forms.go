package store

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrFormNotFound is returned when a form has no versions
var ErrFormNotFound = errors.New("form not found")

// FormVersion is one revision of a form definition. Schema and UISchema
// are opaque blobs passed through unchanged. Owners is derived
// storage-side: every user who authored a version owns the form, which is
// what makes the first writer of a new form id its implicit owner.
type FormVersion struct {
	FormID    string          `json:"id"`
	Schema    json.RawMessage `json:"schema"`
	UISchema  json.RawMessage `json:"uiSchema"`
	Message   string          `json:"message"`
	AuthorID  int64           `json:"author"`
	Timestamp time.Time       `json:"timestamp"`
	ObjTypes  []string        `json:"objTypes"`
	Editable  bool            `json:"editable"`
	Owners    []int64         `json:"owners"`
}

// NewVersion carries the fields of a version about to be appended.
type NewVersion struct {
	FormID    string
	Schema    string
	UISchema  string
	Message   string
	AuthorID  int64
	Timestamp time.Time
	ObjTypes  []string
}

// FormsStore abstracts form definition storage. All access runs under the
// elevated service identity; caller-side authorization happens before any
// of these are invoked.
type FormsStore interface {
	// ListForms returns the current version of every form, optionally
	// filtered to forms assigned to a group (groupID > 0) and/or
	// applicable to an object type (objType != "").
	ListForms(groupID int64, objType string) ([]FormVersion, error)

	// CurrentVersion returns the most recently added version of a form.
	// Returns ErrFormNotFound if the form has no versions.
	CurrentVersion(formID string) (*FormVersion, error)

	// Versions returns all versions of a form, oldest first.
	Versions(formID string) ([]FormVersion, error)

	// AddVersion appends a version. Prior versions are never mutated.
	AddVersion(v NewVersion) (*FormVersion, error)
}
