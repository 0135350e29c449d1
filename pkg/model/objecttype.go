package model

//go:generate go run github.com/dmarkham/enumer -type ObjectType -trimprefix ObjectType -json -output objecttype.gen.go

// ObjectType enumerates the host object kinds a form can be attached to.
// The set is closed; anything else is rejected at the HTTP boundary.
type ObjectType int

const (
	ObjectTypeProject ObjectType = iota
	ObjectTypeDataset
	ObjectTypePlate
	ObjectTypeScreen
)
