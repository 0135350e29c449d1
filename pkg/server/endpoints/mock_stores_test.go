package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

// MockFormsStore implements store.FormsStore for testing using testify/mock
type MockFormsStore struct {
	mock.Mock
}

func NewMockFormsStore() *MockFormsStore {
	return &MockFormsStore{}
}

func (m *MockFormsStore) ListForms(groupID int64, objType string) ([]store.FormVersion, error) {
	args := m.Called(groupID, objType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.FormVersion), args.Error(1)
}

func (m *MockFormsStore) CurrentVersion(formID string) (*store.FormVersion, error) {
	args := m.Called(formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FormVersion), args.Error(1)
}

func (m *MockFormsStore) Versions(formID string) ([]store.FormVersion, error) {
	args := m.Called(formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.FormVersion), args.Error(1)
}

func (m *MockFormsStore) AddVersion(v store.NewVersion) (*store.FormVersion, error) {
	args := m.Called(v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FormVersion), args.Error(1)
}

// MockEntriesStore implements store.EntriesStore for testing using testify/mock
type MockEntriesStore struct {
	mock.Mock
}

func NewMockEntriesStore() *MockEntriesStore {
	return &MockEntriesStore{}
}

func (m *MockEntriesStore) Latest(formID, objType string, objID int64) (*store.Entry, error) {
	args := m.Called(formID, objType, objID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Entry), args.Error(1)
}

func (m *MockEntriesStore) History(formID, objType string, objID int64) ([]store.Entry, error) {
	args := m.Called(formID, objType, objID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Entry), args.Error(1)
}

func (m *MockEntriesStore) Append(e store.NewEntry) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m *MockEntriesStore) Annotate(objType string, objID int64, formID, data string, addedBy int64) error {
	args := m.Called(objType, objID, formID, data, addedBy)
	return args.Error(0)
}

// MockAssignmentsStore implements store.AssignmentsStore for testing using testify/mock
type MockAssignmentsStore struct {
	mock.Mock
}

func NewMockAssignmentsStore() *MockAssignmentsStore {
	return &MockAssignmentsStore{}
}

func (m *MockAssignmentsStore) FormAssignments(formID string) ([]int64, error) {
	args := m.Called(formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAssignmentsStore) GroupAssignments(groupIDs []int64) (map[string][]string, error) {
	args := m.Called(groupIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]string), args.Error(1)
}

func (m *MockAssignmentsStore) Reconcile(formID string, add, remove []int64) error {
	args := m.Called(formID, add, remove)
	return args.Error(0)
}

// MockDirectoryStore implements store.DirectoryStore for testing using testify/mock
type MockDirectoryStore struct {
	mock.Mock
}

func NewMockDirectoryStore() *MockDirectoryStore {
	return &MockDirectoryStore{}
}

func (m *MockDirectoryStore) ManagedGroups(userID int64, admin bool) ([]store.Group, error) {
	args := m.Called(userID, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Group), args.Error(1)
}

func (m *MockDirectoryStore) Users(userIDs []int64) ([]store.User, error) {
	args := m.Called(userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.User), args.Error(1)
}

// MockObjectsStore implements store.ObjectsStore for testing using testify/mock
type MockObjectsStore struct {
	mock.Mock
}

func NewMockObjectsStore() *MockObjectsStore {
	return &MockObjectsStore{}
}

func (m *MockObjectsStore) Fetch(objType string, objID, callerID int64, admin bool) (*store.Object, error) {
	args := m.Called(objType, objID, callerID, admin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Object), args.Error(1)
}
