package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

func TestReconcileSets(t *testing.T) {
	tests := []struct {
		name       string
		current    []int64
		requested  []int64
		owned      []int64
		toAdd      []int64
		toRemove   []int64
		disallowed []int64
	}{
		{
			name:      "swap one managed group for another",
			current:   []int64{1, 2},
			requested: []int64{2, 3},
			owned:     []int64{1, 2, 3},
			toAdd:     []int64{3},
			toRemove:  []int64{1},
		},
		{
			name:      "assignments to unmanaged groups survive",
			current:   []int64{1, 9},
			requested: []int64{2},
			owned:     []int64{1, 2},
			toAdd:     []int64{2},
			toRemove:  []int64{1},
		},
		{
			name:       "requesting an unmanaged group is disallowed",
			current:    []int64{1},
			requested:  []int64{1, 5},
			owned:      []int64{1, 2},
			toAdd:      []int64{5},
			disallowed: []int64{5},
		},
		{
			name:      "identical request is a no-op",
			current:   []int64{1, 2},
			requested: []int64{1, 2},
			owned:     []int64{1, 2},
		},
		{
			name:      "empty request clears only managed assignments",
			current:   []int64{1, 2, 9},
			requested: []int64{},
			owned:     []int64{1, 2},
			toRemove:  []int64{1, 2},
		},
		{
			name:       "one requested group outside the managed set poisons the call",
			current:    []int64{1, 2, 3},
			requested:  []int64{3, 4, 5},
			owned:      []int64{2, 3, 4},
			toAdd:      []int64{4, 5},
			toRemove:   []int64{2},
			disallowed: []int64{5},
		},
		{
			name:       "dropping a managed group while requesting an unmanaged one still rejects",
			current:    []int64{1, 2, 3},
			requested:  []int64{2, 4},
			owned:      []int64{2, 3},
			toAdd:      []int64{4},
			toRemove:   []int64{3},
			disallowed: []int64{4},
		},
		{
			name:      "shrinking to one managed group removes only the managed remainder",
			current:   []int64{1, 2, 3},
			requested: []int64{2},
			owned:     []int64{2, 3},
			toRemove:  []int64{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toAdd, toRemove, disallowed := reconcileSets(tt.current, tt.requested, tt.owned)
			assert.Equal(t, tt.toAdd, toAdd)
			assert.Equal(t, tt.toRemove, toRemove)
			assert.Equal(t, tt.disallowed, disallowed)
		})
	}
}

func TestHandleGetFormAssignments(t *testing.T) {
	assignmentsStore := NewMockAssignmentsStore()
	directoryStore := NewMockDirectoryStore()
	directoryStore.On("ManagedGroups", int64(5), false).Return([]store.Group{
		{ID: 1, Name: "lab-a"},
		{ID: 2, Name: "lab-b"},
	}, nil)
	assignmentsStore.On("GroupAssignments", []int64{1, 2}).Return(map[string][]string{
		"1": {"metadata"},
		"2": {},
	}, nil)

	req := httptest.NewRequest("GET", "/forms/get_form_assignments", nil)
	w := httptest.NewRecorder()

	handleGetFormAssignments(assignmentsStore, directoryStore)(w, req, callerSession(5, false, 10), serviceSession(), testServiceUID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"assignments": {"1": ["metadata"], "2": []}}`, w.Body.String())
}

func TestHandleSaveFormAssignment(t *testing.T) {
	newRequest := func(body string) *http.Request {
		return httptest.NewRequest("POST", "/forms/save_form_assignment", strings.NewReader(body))
	}

	t.Run("requires a form id", func(t *testing.T) {
		assignmentsStore := NewMockAssignmentsStore()
		directoryStore := NewMockDirectoryStore()

		w := httptest.NewRecorder()
		handleSaveFormAssignment(assignmentsStore, directoryStore)(w, newRequest(`{"groupIds": [1]}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "requires a formId to be specified")
	})

	t.Run("applies the computed mutation", func(t *testing.T) {
		assignmentsStore := NewMockAssignmentsStore()
		directoryStore := NewMockDirectoryStore()
		directoryStore.On("ManagedGroups", int64(5), false).Return([]store.Group{
			{ID: 1}, {ID: 2}, {ID: 3},
		}, nil)
		assignmentsStore.On("FormAssignments", "metadata").Return([]int64{1, 2}, nil)
		assignmentsStore.On("Reconcile", "metadata", []int64{3}, []int64{1}).Return(nil)
		assignmentsStore.On("GroupAssignments", []int64{1, 2, 3}).Return(map[string][]string{
			"1": {},
			"2": {"metadata"},
			"3": {"metadata"},
		}, nil)

		w := httptest.NewRecorder()
		handleSaveFormAssignment(assignmentsStore, directoryStore)(w, newRequest(`{"formId": "metadata", "groupIds": [2, 3]}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusOK, w.Code)
		assignmentsStore.AssertExpectations(t)
	})

	t.Run("an unmanaged group rejects the whole request", func(t *testing.T) {
		assignmentsStore := NewMockAssignmentsStore()
		directoryStore := NewMockDirectoryStore()
		directoryStore.On("ManagedGroups", int64(5), false).Return([]store.Group{
			{ID: 1}, {ID: 2},
		}, nil)
		assignmentsStore.On("FormAssignments", "metadata").Return([]int64{1}, nil)

		w := httptest.NewRecorder()
		handleSaveFormAssignment(assignmentsStore, directoryStore)(w, newRequest(`{"formId": "metadata", "groupIds": [1, 2, 5]}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Can not assign to groups: [5]")
		assignmentsStore.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("a no-op request skips the mutation", func(t *testing.T) {
		assignmentsStore := NewMockAssignmentsStore()
		directoryStore := NewMockDirectoryStore()
		directoryStore.On("ManagedGroups", int64(5), false).Return([]store.Group{
			{ID: 1}, {ID: 2},
		}, nil)
		assignmentsStore.On("FormAssignments", "metadata").Return([]int64{1, 2}, nil)
		assignmentsStore.On("GroupAssignments", []int64{1, 2}).Return(map[string][]string{
			"1": {"metadata"},
			"2": {"metadata"},
		}, nil)

		w := httptest.NewRecorder()
		handleSaveFormAssignment(assignmentsStore, directoryStore)(w, newRequest(`{"formId": "metadata", "groupIds": [1, 2]}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusOK, w.Code)
		assignmentsStore.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("group ids may arrive as decimal strings", func(t *testing.T) {
		assignmentsStore := NewMockAssignmentsStore()
		directoryStore := NewMockDirectoryStore()
		directoryStore.On("ManagedGroups", int64(5), false).Return([]store.Group{
			{ID: 1},
		}, nil)
		assignmentsStore.On("FormAssignments", "metadata").Return([]int64{}, nil)
		assignmentsStore.On("Reconcile", "metadata", []int64{1}, []int64(nil)).Return(nil)
		assignmentsStore.On("GroupAssignments", []int64{1}).Return(map[string][]string{
			"1": {"metadata"},
		}, nil)

		w := httptest.NewRecorder()
		handleSaveFormAssignment(assignmentsStore, directoryStore)(w, newRequest(`{"formId": "metadata", "groupIds": ["1"]}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusOK, w.Code)
		assignmentsStore.AssertExpectations(t)
	})
}
