package store

// Group is a host user group.
type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is a host user record, shaped for the client.
type User struct {
	ID        int64  `json:"id"`
	OmeName   string `json:"omeName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DirectoryStore reads the host user/group directory with the caller's
// own (non-elevated) scope.
type DirectoryStore interface {
	// ManagedGroups returns the groups the user administers: the groups
	// they own, or every group when the user is a host admin.
	ManagedGroups(userID int64, admin bool) ([]Group, error)

	// Users resolves user ids to user records. Unknown ids are skipped.
	Users(userIDs []int64) ([]User, error)
}
