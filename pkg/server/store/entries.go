package store

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrEntryNotFound is returned when no data has been submitted for a
// (form, object) pair
var ErrEntryNotFound = errors.New("form entry not found")

// Entry is one submitted record of form data against a host object.
// Data is an opaque blob passed through unchanged.
type Entry struct {
	FormID        string          `json:"formId"`
	FormTimestamp string          `json:"formTimestamp"`
	ObjType       string          `json:"objType"`
	ObjID         int64           `json:"objId"`
	Data          json.RawMessage `json:"data"`
	Message       string          `json:"message"`
	ChangedBy     int64           `json:"changedBy"`
	ChangedAt     time.Time       `json:"changedAt"`
}

// NewEntry carries a submission about to be appended to the history.
type NewEntry struct {
	FormID        string
	FormTimestamp string
	ObjType       string
	ObjID         int64
	Data          string
	Message       string
	ChangedBy     int64
	ChangedAt     time.Time
}

// EntriesStore abstracts form data storage. History is append-only.
type EntriesStore interface {
	// Latest returns the most recent submission for the triple.
	// Returns ErrEntryNotFound when nothing has been submitted.
	Latest(formID, objType string, objID int64) (*Entry, error)

	// History returns all submissions for the triple, oldest first.
	History(formID, objType string, objID int64) ([]Entry, error)

	// Append records a submission.
	Append(e NewEntry) error

	// Annotate mirrors the latest submission onto the object itself, the
	// separate write path the host application reads. addedBy is the
	// service identity the annotation is recorded under.
	Annotate(objType string, objID int64, formID, data string, addedBy int64) error
}
