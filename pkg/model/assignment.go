package model

import "time"

// FormAssignment grants a group visibility of a form.
type FormAssignment struct {
	FormID  string `gorm:"column:form_id;primaryKey"`
	GroupID int64  `gorm:"column:group_id;primaryKey"`
}

func (FormAssignment) TableName() string {
	return "form_assignments"
}

// ObjectAnnotation mirrors the latest form submission onto the object it
// was submitted against, so the host application can surface it alongside
// the object's own metadata.
type ObjectAnnotation struct {
	ObjType   string    `gorm:"column:obj_type;primaryKey"`
	ObjID     int64     `gorm:"column:obj_id;primaryKey"`
	FormID    string    `gorm:"column:form_id;primaryKey"`
	Data      string    `gorm:"column:data"`
	AddedBy   int64     `gorm:"column:added_by"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ObjectAnnotation) TableName() string {
	return "object_annotations"
}
