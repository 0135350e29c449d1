package gorm

import (
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/forms-in-go/pkg/model"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

// Ensure ObjectsStore implements store.ObjectsStore
var _ store.ObjectsStore = (*ObjectsStore)(nil)

// ObjectsStore implements store.ObjectsStore using GORM
type ObjectsStore struct {
	db *gorm.DB
}

// NewObjectsStore creates a new ObjectsStore
func NewObjectsStore(db *gorm.DB) *ObjectsStore {
	return &ObjectsStore{db: db}
}

// Fetch returns the object if the caller can see it. Invisible and absent
// are the same ErrObjectNotFound; existence must not leak.
func (s *ObjectsStore) Fetch(objType string, objID, callerID int64, admin bool) (*store.Object, error) {
	var rows []model.HostObject
	err := s.db.Raw(`
		SELECT obj_type, obj_id, group_id, owner_id, name, can_annotate
		FROM host_objects
		WHERE obj_type = ? AND obj_id = ?
	`, objType, objID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrObjectNotFound
	}

	row := rows[0]
	if !admin && !s.isMember(callerID, row.GroupID) {
		return nil, store.ErrObjectNotFound
	}

	return &store.Object{
		ObjType:     row.ObjType,
		ObjID:       row.ObjID,
		GroupID:     row.GroupID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		CanAnnotate: row.CanAnnotate || row.OwnerID == callerID || admin,
	}, nil
}

func (s *ObjectsStore) isMember(userID, groupID int64) bool {
	var exists bool
	s.db.Raw(`
		SELECT EXISTS(
			SELECT 1 FROM group_memberships WHERE experimenter_id = ? AND group_id = ?
		)
	`, userID, groupID).Scan(&exists)
	return exists
}
