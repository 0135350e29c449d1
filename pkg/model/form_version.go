package model

import "time"

// FormVersion is one immutable revision of a form definition. Versions are
// append-only; the current version of a form is the most recently added row
// for its FormID.
type FormVersion struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FormID    string    `gorm:"column:form_id;index;not null"`
	Schema    string    `gorm:"column:schema"`
	UISchema  string    `gorm:"column:ui_schema"`
	Message   string    `gorm:"column:message"`
	AuthorID  int64     `gorm:"column:author_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	ObjTypes  string    `gorm:"column:obj_types"`
	Editable  bool      `gorm:"column:editable;default:true"`
}

func (FormVersion) TableName() string {
	return "form_versions"
}
