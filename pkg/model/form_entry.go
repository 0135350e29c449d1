package model

import "time"

// FormEntry is one submission of form data against a host object. Entries
// are append-only; the latest row per (form_id, obj_type, obj_id) is the
// live submission and the older rows are its history.
type FormEntry struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FormID        string    `gorm:"column:form_id;index;not null"`
	FormTimestamp string    `gorm:"column:form_timestamp"`
	ObjType       string    `gorm:"column:obj_type;not null"`
	ObjID         int64     `gorm:"column:obj_id;not null"`
	Data          string    `gorm:"column:data"`
	Message       string    `gorm:"column:message"`
	ChangedBy     int64     `gorm:"column:changed_by;not null"`
	ChangedAt     time.Time `gorm:"column:changed_at;not null"`
}

func (FormEntry) TableName() string {
	return "form_entries"
}
