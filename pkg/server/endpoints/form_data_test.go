package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

func dataRequest(method, formID, objType, objID, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/forms/data/"+formID+"/"+objType+"/"+objID, nil)
	} else {
		req = httptest.NewRequest(method, "/forms/data/"+formID+"/"+objType+"/"+objID, strings.NewReader(body))
	}
	return mux.SetURLVars(req, map[string]string{
		"form_id":  formID,
		"obj_type": objType,
		"obj_id":   objID,
	})
}

func TestHandleGetFormData(t *testing.T) {
	t.Run("returns the latest submission", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		objectsStore := NewMockObjectsStore()
		objectsStore.On("Fetch", "Dataset", int64(42), int64(5), false).Return(&store.Object{
			ObjType: "Dataset", ObjID: 42, CanAnnotate: true,
		}, nil)
		entriesStore.On("Latest", "metadata", "Dataset", int64(42)).Return(&store.Entry{
			FormID:  "metadata",
			ObjType: "Dataset",
			ObjID:   42,
			Data:    json.RawMessage(`{"organism": "mouse"}`),
		}, nil)

		w := httptest.NewRecorder()
		handleGetFormData(entriesStore, objectsStore)(w, dataRequest("GET", "metadata", "Dataset", "42", ""), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"organism": "mouse"`)
	})

	t.Run("null data when nothing has been submitted", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		objectsStore := NewMockObjectsStore()
		objectsStore.On("Fetch", "Dataset", int64(42), int64(5), false).Return(&store.Object{
			ObjType: "Dataset", ObjID: 42, CanAnnotate: true,
		}, nil)
		entriesStore.On("Latest", "metadata", "Dataset", int64(42)).Return(nil, store.ErrEntryNotFound)

		w := httptest.NewRecorder()
		handleGetFormData(entriesStore, objectsStore)(w, dataRequest("GET", "metadata", "Dataset", "42", ""), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data": null}`, w.Body.String())
	})

	t.Run("rejects a non-integer object id", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		objectsStore := NewMockObjectsStore()

		w := httptest.NewRecorder()
		handleGetFormData(entriesStore, objectsStore)(w, dataRequest("GET", "metadata", "Dataset", "forty-two", ""), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Object ID must be a long integer")
	})

	t.Run("rejects unknown object types", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		objectsStore := NewMockObjectsStore()

		w := httptest.NewRecorder()
		handleGetFormData(entriesStore, objectsStore)(w, dataRequest("GET", "metadata", "Image", "42", ""), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Image not a valid obj_type")
	})
}

// A missing object and an invisible object must be impossible to tell
// apart, on reads and writes alike.
func TestFormDataNotFoundIndistinguishable(t *testing.T) {
	entriesStore := NewMockEntriesStore()
	objectsStore := NewMockObjectsStore()
	objectsStore.On("Fetch", "Dataset", int64(42), int64(5), false).Return(nil, store.ErrObjectNotFound)

	getW := httptest.NewRecorder()
	handleGetFormData(entriesStore, objectsStore)(getW, dataRequest("GET", "metadata", "Dataset", "42", ""), callerSession(5, false, 10), serviceSession(), testServiceUID)

	saveW := httptest.NewRecorder()
	handleSaveFormData(entriesStore, objectsStore)(saveW, dataRequest("POST", "metadata", "Dataset", "42", `{"formTimestamp": "t0", "data": {}, "message": ""}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

	assert.Equal(t, http.StatusNotFound, getW.Code)
	assert.Equal(t, http.StatusNotFound, saveW.Code)
	assert.Equal(t, getW.Body.String(), saveW.Body.String())
	entriesStore.AssertNotCalled(t, "Append", mock.Anything)
}

func TestHandleSaveFormData(t *testing.T) {
	t.Run("appends and mirrors under the service identity", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		objectsStore := NewMockObjectsStore()
		objectsStore.On("Fetch", "Dataset", int64(42), int64(5), false).Return(&store.Object{
			ObjType: "Dataset", ObjID: 42, CanAnnotate: true,
		}, nil)
		entriesStore.On("Append", mock.MatchedBy(func(e store.NewEntry) bool {
			return e.FormID == "metadata" &&
				e.ObjType == "Dataset" &&
				e.ObjID == 42 &&
				e.ChangedBy == 5 &&
				e.FormTimestamp == "t0"
		})).Return(nil)
		entriesStore.On("Annotate", "Dataset", int64(42), "metadata", `{"organism": "mouse"}`, testServiceUID).Return(nil)

		w := httptest.NewRecorder()
		handleSaveFormData(entriesStore, objectsStore)(w, dataRequest("POST", "metadata", "Dataset", "42", `{"formTimestamp": "t0", "data": {"organism": "mouse"}, "message": "initial"}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		entriesStore.AssertExpectations(t)
	})

	t.Run("401 without annotate permission", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		objectsStore := NewMockObjectsStore()
		objectsStore.On("Fetch", "Dataset", int64(42), int64(5), false).Return(&store.Object{
			ObjType: "Dataset", ObjID: 42, CanAnnotate: false,
		}, nil)

		w := httptest.NewRecorder()
		handleSaveFormData(entriesStore, objectsStore)(w, dataRequest("POST", "metadata", "Dataset", "42", `{"formTimestamp": "t0", "data": {}, "message": ""}`), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "does not have permission to submit data")
		entriesStore.AssertNotCalled(t, "Append", mock.Anything)
		entriesStore.AssertNotCalled(t, "Annotate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleGetFormDataHistory(t *testing.T) {
	t.Run("returns submissions and form versions together", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		formsStore := NewMockFormsStore()
		objectsStore := NewMockObjectsStore()
		objectsStore.On("Fetch", "Project", int64(7), int64(5), false).Return(&store.Object{
			ObjType: "Project", ObjID: 7, CanAnnotate: true,
		}, nil)
		entriesStore.On("History", "metadata", "Project", int64(7)).Return([]store.Entry{
			{FormID: "metadata", Message: "first"},
			{FormID: "metadata", Message: "second"},
		}, nil)
		formsStore.On("Versions", "metadata").Return([]store.FormVersion{
			{FormID: "metadata"},
		}, nil)

		w := httptest.NewRecorder()
		handleGetFormDataHistory(entriesStore, formsStore, objectsStore)(w, dataRequest("GET", "metadata", "Project", "7", ""), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data     []store.Entry       `json:"data"`
			Versions []store.FormVersion `json:"versions"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 2)
		assert.Len(t, resp.Versions, 1)
	})

	t.Run("404 for invisible objects", func(t *testing.T) {
		entriesStore := NewMockEntriesStore()
		formsStore := NewMockFormsStore()
		objectsStore := NewMockObjectsStore()
		objectsStore.On("Fetch", "Project", int64(7), int64(5), false).Return(nil, store.ErrObjectNotFound)

		w := httptest.NewRecorder()
		handleGetFormDataHistory(entriesStore, formsStore, objectsStore)(w, dataRequest("GET", "metadata", "Project", "7", ""), callerSession(5, false, 10), serviceSession(), testServiceUID)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "If this data exists")
	})
}
