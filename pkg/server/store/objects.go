package store

import "errors"

// ErrObjectNotFound is returned when an object does not exist or is not
// visible to the caller. The two cases are deliberately indistinguishable
// so existence never leaks to unauthorized callers.
var ErrObjectNotFound = errors.New("object not found")

// Object is the caller-visible view of a host domain object.
type Object struct {
	ObjType     string `json:"objType"`
	ObjID       int64  `json:"objId"`
	GroupID     int64  `json:"groupId"`
	OwnerID     int64  `json:"ownerId"`
	Name        string `json:"name"`
	CanAnnotate bool   `json:"canAnnotate"`
}

// ObjectsStore resolves host objects under the caller's own permissions.
type ObjectsStore interface {
	// Fetch returns the object if the caller can see it: admins see
	// everything, everyone else only objects in groups they belong to.
	// Returns ErrObjectNotFound otherwise.
	Fetch(objType string, objID, callerID int64, admin bool) (*Object, error)
}
