package gorm

import (
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/forms-in-go/pkg/model"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

// Ensure AssignmentsStore implements store.AssignmentsStore
var _ store.AssignmentsStore = (*AssignmentsStore)(nil)

// AssignmentsStore implements store.AssignmentsStore using GORM
type AssignmentsStore struct {
	db *gorm.DB
}

// NewAssignmentsStore creates a new AssignmentsStore
func NewAssignmentsStore(db *gorm.DB) *AssignmentsStore {
	return &AssignmentsStore{db: db}
}

// FormAssignments returns the ids of groups a form is assigned to.
func (s *AssignmentsStore) FormAssignments(formID string) ([]int64, error) {
	var rows []model.FormAssignment
	err := s.db.Raw(`
		SELECT group_id FROM form_assignments WHERE form_id = ? ORDER BY group_id
	`, formID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	groupIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		groupIDs = append(groupIDs, row.GroupID)
	}
	return groupIDs, nil
}

// GroupAssignments returns the assignment map for the given groups.
func (s *AssignmentsStore) GroupAssignments(groupIDs []int64) (map[string][]string, error) {
	assignments := make(map[string][]string, len(groupIDs))
	for _, gid := range groupIDs {
		assignments[strconv.FormatInt(gid, 10)] = []string{}
	}
	if len(groupIDs) == 0 {
		return assignments, nil
	}

	var rows []model.FormAssignment
	err := s.db.Raw(`
		SELECT form_id, group_id FROM form_assignments
		WHERE group_id IN (?)
		ORDER BY group_id, form_id
	`, groupIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		key := strconv.FormatInt(row.GroupID, 10)
		assignments[key] = append(assignments[key], row.FormID)
	}
	return assignments, nil
}

// Reconcile applies adds and removes in a single transaction. Concurrent
// reconciliations on the same form race last-committed-wins; per-row
// atomicity is all the contract requires.
func (s *AssignmentsStore) Reconcile(formID string, add, remove []int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if len(remove) > 0 {
			err := tx.Exec(`
				DELETE FROM form_assignments WHERE form_id = ? AND group_id IN (?)
			`, formID, remove).Error
			if err != nil {
				return err
			}
		}
		for _, gid := range add {
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.FormAssignment{FormID: formID, GroupID: gid}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
