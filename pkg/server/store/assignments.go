package store

// AssignmentsStore abstracts the Form-to-group assignment relation.
type AssignmentsStore interface {
	// FormAssignments returns the ids of groups a form is assigned to.
	FormAssignments(formID string) ([]int64, error)

	// GroupAssignments returns the assignment map restricted to the given
	// groups: decimal group id to the form ids assigned to it. Groups
	// without assignments appear with an empty list.
	GroupAssignments(groupIDs []int64) (map[string][]string, error)

	// Reconcile applies adds and removes as a single atomic mutation.
	Reconcile(formID string, add, remove []int64) error
}
