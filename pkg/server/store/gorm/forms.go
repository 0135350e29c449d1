package gorm

import (
	"encoding/json"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/forms-in-go/pkg/model"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

// Ensure FormsStore implements store.FormsStore
var _ store.FormsStore = (*FormsStore)(nil)

// FormsStore implements store.FormsStore using GORM
type FormsStore struct {
	db *gorm.DB
}

// NewFormsStore creates a new FormsStore
func NewFormsStore(db *gorm.DB) *FormsStore {
	return &FormsStore{db: db}
}

// ListForms returns the current version of every form, optionally filtered
// by assigned group and applicable object type.
func (s *FormsStore) ListForms(groupID int64, objType string) ([]store.FormVersion, error) {
	query := `
		SELECT fv.form_id, fv.schema, fv.ui_schema, fv.message, fv.author_id,
		       fv.created_at, fv.obj_types, fv.editable
		FROM form_versions fv
		JOIN (
			SELECT form_id, MAX(id) AS max_id
			FROM form_versions
			GROUP BY form_id
		) cur ON fv.id = cur.max_id
	`
	var args []interface{}

	if groupID > 0 {
		query += ` JOIN form_assignments fa ON fa.form_id = fv.form_id AND fa.group_id = ?`
		args = append(args, groupID)
	}

	var conds []string
	if objType != "" {
		conds = append(conds, `(',' || fv.obj_types || ',') LIKE ?`)
		args = append(args, "%,"+objType+",%")
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY fv.form_id`

	var rows []model.FormVersion
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	forms := make([]store.FormVersion, 0, len(rows))
	for _, row := range rows {
		v := toVersion(row)
		owners, err := s.owners(row.FormID)
		if err != nil {
			return nil, err
		}
		v.Owners = owners
		forms = append(forms, v)
	}
	return forms, nil
}

// CurrentVersion returns the most recently added version of a form.
func (s *FormsStore) CurrentVersion(formID string) (*store.FormVersion, error) {
	var rows []model.FormVersion
	err := s.db.Raw(`
		SELECT form_id, schema, ui_schema, message, author_id, created_at, obj_types, editable
		FROM form_versions
		WHERE form_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, formID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, store.ErrFormNotFound
	}

	v := toVersion(rows[0])
	owners, err := s.owners(formID)
	if err != nil {
		return nil, err
	}
	v.Owners = owners
	return &v, nil
}

// Versions returns all versions of a form, oldest first.
func (s *FormsStore) Versions(formID string) ([]store.FormVersion, error) {
	var rows []model.FormVersion
	err := s.db.Raw(`
		SELECT form_id, schema, ui_schema, message, author_id, created_at, obj_types, editable
		FROM form_versions
		WHERE form_id = ?
		ORDER BY id
	`, formID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	owners, err := s.owners(formID)
	if err != nil {
		return nil, err
	}

	versions := make([]store.FormVersion, 0, len(rows))
	for _, row := range rows {
		v := toVersion(row)
		v.Owners = owners
		versions = append(versions, v)
	}
	return versions, nil
}

// AddVersion appends a version. The editable flag of the current version
// carries forward; brand new forms start editable.
func (s *FormsStore) AddVersion(v store.NewVersion) (*store.FormVersion, error) {
	editable := true
	if current, err := s.CurrentVersion(v.FormID); err == nil {
		editable = current.Editable
	} else if err != store.ErrFormNotFound {
		return nil, err
	}

	err := s.db.Exec(`
		INSERT INTO form_versions (form_id, schema, ui_schema, message, author_id, created_at, obj_types, editable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, v.FormID, v.Schema, v.UISchema, v.Message, v.AuthorID, v.Timestamp,
		strings.Join(v.ObjTypes, ","), editable).Error
	if err != nil {
		return nil, err
	}

	return s.CurrentVersion(v.FormID)
}

// owners returns the distinct authors across all versions of a form.
func (s *FormsStore) owners(formID string) ([]int64, error) {
	var rows []model.FormVersion
	err := s.db.Raw(`
		SELECT DISTINCT author_id FROM form_versions WHERE form_id = ?
	`, formID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	owners := make([]int64, 0, len(rows))
	for _, row := range rows {
		owners = append(owners, row.AuthorID)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	return owners, nil
}

// rawJSON treats a stored text column as a raw JSON value, mapping the
// empty string to null.
func rawJSON(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	return json.RawMessage(s)
}

func toVersion(r model.FormVersion) store.FormVersion {
	var objTypes []string
	if r.ObjTypes != "" {
		objTypes = strings.Split(r.ObjTypes, ",")
	}
	return store.FormVersion{
		FormID:    r.FormID,
		Schema:    rawJSON(r.Schema),
		UISchema:  rawJSON(r.UISchema),
		Message:   r.Message,
		AuthorID:  r.AuthorID,
		Timestamp: r.CreatedAt,
		ObjTypes:  objTypes,
		Editable:  r.Editable,
	}
}
