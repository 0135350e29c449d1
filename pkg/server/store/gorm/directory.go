package gorm

import (
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/forms-in-go/pkg/model"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

// Ensure DirectoryStore implements store.DirectoryStore
var _ store.DirectoryStore = (*DirectoryStore)(nil)

// DirectoryStore implements store.DirectoryStore using GORM
type DirectoryStore struct {
	db *gorm.DB
}

// NewDirectoryStore creates a new DirectoryStore
func NewDirectoryStore(db *gorm.DB) *DirectoryStore {
	return &DirectoryStore{db: db}
}

// ManagedGroups returns the groups the user owns, or all groups for a
// host admin.
func (s *DirectoryStore) ManagedGroups(userID int64, admin bool) ([]store.Group, error) {
	query := `
		SELECT g.id, g.name
		FROM experimenter_groups g
		JOIN group_memberships m ON m.group_id = g.id
		WHERE m.experimenter_id = ? AND m.owner
		ORDER BY g.id
	`
	args := []interface{}{userID}

	if admin {
		query = `SELECT id, name FROM experimenter_groups ORDER BY id`
		args = nil
	}

	var rows []model.ExperimenterGroup
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	groups := make([]store.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, store.Group{ID: row.ID, Name: row.Name})
	}
	return groups, nil
}

// Users resolves user ids to user records. Unknown ids are skipped.
func (s *DirectoryStore) Users(userIDs []int64) ([]store.User, error) {
	if len(userIDs) == 0 {
		return []store.User{}, nil
	}

	var rows []model.Experimenter
	err := s.db.Raw(`
		SELECT id, omename, first_name, last_name, email
		FROM experimenters
		WHERE id IN (?)
		ORDER BY id
	`, userIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]store.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, store.User{
			ID:        row.ID,
			OmeName:   row.OmeName,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
		})
	}
	return users, nil
}
