package model

// Experimenter is a host application user account.
type Experimenter struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	OmeName      string `gorm:"column:omename"`
	FirstName    string `gorm:"column:first_name"`
	LastName     string `gorm:"column:last_name"`
	Email        string `gorm:"column:email"`
	PasswordHash []byte `gorm:"column:password_hash"`
	IsAdmin      bool   `gorm:"column:is_admin"`
}

func (Experimenter) TableName() string {
	return "experimenters"
}

// ExperimenterGroup is a host application user group.
type ExperimenterGroup struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (ExperimenterGroup) TableName() string {
	return "experimenter_groups"
}

// GroupMembership links an experimenter to a group. Owner marks group
// ownership, which is what makes a group "managed" by that experimenter.
type GroupMembership struct {
	GroupID        int64 `gorm:"column:group_id;primaryKey"`
	ExperimenterID int64 `gorm:"column:experimenter_id;primaryKey"`
	Owner          bool  `gorm:"column:owner"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}

// HostObject is the flattened view of a host domain object (project,
// dataset, plate or screen) that the plugin needs for permission checks.
type HostObject struct {
	ObjType     string `gorm:"column:obj_type;primaryKey"`
	ObjID       int64  `gorm:"column:obj_id;primaryKey"`
	GroupID     int64  `gorm:"column:group_id"`
	OwnerID     int64  `gorm:"column:owner_id"`
	Name        string `gorm:"column:name"`
	CanAnnotate bool   `gorm:"column:can_annotate"`
}

func (HostObject) TableName() string {
	return "host_objects"
}
