package gorm

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/forms-in-go/pkg/model"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

// Ensure EntriesStore implements store.EntriesStore
var _ store.EntriesStore = (*EntriesStore)(nil)

// EntriesStore implements store.EntriesStore using GORM
type EntriesStore struct {
	db *gorm.DB
}

// NewEntriesStore creates a new EntriesStore
func NewEntriesStore(db *gorm.DB) *EntriesStore {
	return &EntriesStore{db: db}
}

// Latest returns the most recent submission for the triple.
func (s *EntriesStore) Latest(formID, objType string, objID int64) (*store.Entry, error) {
	var rows []model.FormEntry
	err := s.db.Raw(`
		SELECT form_id, form_timestamp, obj_type, obj_id, data, message, changed_by, changed_at
		FROM form_entries
		WHERE form_id = ? AND obj_type = ? AND obj_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, formID, objType, objID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrEntryNotFound
	}

	entry := toEntry(rows[0])
	return &entry, nil
}

// History returns all submissions for the triple, oldest first.
func (s *EntriesStore) History(formID, objType string, objID int64) ([]store.Entry, error) {
	var rows []model.FormEntry
	err := s.db.Raw(`
		SELECT form_id, form_timestamp, obj_type, obj_id, data, message, changed_by, changed_at
		FROM form_entries
		WHERE form_id = ? AND obj_type = ? AND obj_id = ?
		ORDER BY id
	`, formID, objType, objID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]store.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toEntry(row))
	}
	return entries, nil
}

// Append records a submission. History is append-only; nothing is ever
// overwritten.
func (s *EntriesStore) Append(e store.NewEntry) error {
	return s.db.Exec(`
		INSERT INTO form_entries (form_id, form_timestamp, obj_type, obj_id, data, message, changed_by, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.FormID, e.FormTimestamp, e.ObjType, e.ObjID, e.Data, e.Message, e.ChangedBy, e.ChangedAt).Error
}

// Annotate mirrors the latest submission onto the object itself. The
// annotation is recorded under the service identity, matching who actually
// holds write access to shared state.
func (s *EntriesStore) Annotate(objType string, objID int64, formID, data string, addedBy int64) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "obj_type"}, {Name: "obj_id"}, {Name: "form_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"data", "added_by", "updated_at",
		}),
	}).Create(&model.ObjectAnnotation{
		ObjType:   objType,
		ObjID:     objID,
		FormID:    formID,
		Data:      data,
		AddedBy:   addedBy,
		UpdatedAt: time.Now().UTC(),
	}).Error
}

func toEntry(r model.FormEntry) store.Entry {
	return store.Entry{
		FormID:        r.FormID,
		FormTimestamp: r.FormTimestamp,
		ObjType:       r.ObjType,
		ObjID:         r.ObjID,
		Data:          rawJSON(r.Data),
		Message:       r.Message,
		ChangedBy:     r.ChangedBy,
		ChangedAt:     r.ChangedAt,
	}
}
