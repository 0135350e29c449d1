package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/forms-in-go/pkg/audit"
	"github.com/doodlesbykumbi/forms-in-go/pkg/elevate"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

// The not-found responses below answer identically for an object that
// does not exist and one the caller may not see, so probing these
// endpoints never reveals which ids are real.
const (
	formDataNotFound        = "If this form exists, this user does not have permissions to read it"
	formDataHistoryNotFound = "If this data exists, this user does not have permissions to read it"
)

func RegisterFormDataEndpoints(s *server.Server) {
	entriesStore := s.EntriesStore
	formsStore := s.FormsStore
	objectsStore := s.ObjectsStore

	dataRouter := s.Router.PathPrefix("/forms").Subrouter()
	dataRouter.Use(s.SessionMiddleware.Middleware)

	// GET /forms/get_form_data/{form_id}/{obj_type}/{obj_id} - Latest submission
	dataRouter.HandleFunc(
		"/get_form_data/{form_id}/{obj_type}/{obj_id}",
		s.Elevator.Wrap(handleGetFormData(entriesStore, objectsStore)),
	).Methods("GET")

	// GET /forms/get_form_data_history/{form_id}/{obj_type}/{obj_id} - Full submission history
	dataRouter.HandleFunc(
		"/get_form_data_history/{form_id}/{obj_type}/{obj_id}",
		s.Elevator.Wrap(handleGetFormDataHistory(entriesStore, formsStore, objectsStore)),
	).Methods("GET")

	// POST /forms/save_form_data/{form_id}/{obj_type}/{obj_id} - Submit data
	dataRouter.HandleFunc(
		"/save_form_data/{form_id}/{obj_type}/{obj_id}",
		s.Elevator.Wrap(handleSaveFormData(entriesStore, objectsStore)),
	).Methods("POST")
}

func handleGetFormData(entriesStore store.EntriesStore, objectsStore store.ObjectsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		vars := mux.Vars(r)
		formID, err := url.PathUnescape(vars["form_id"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		objID, err := strconv.ParseInt(vars["obj_id"], 10, 64)
		if err != nil {
			http.Error(w, "Object ID must be a long integer", http.StatusBadRequest)
			return
		}

		objType := vars["obj_type"]
		if !validObjType(objType) {
			http.Error(w, fmt.Sprintf("%s not a valid obj_type", objType), http.StatusBadRequest)
			return
		}

		// Visibility is checked with the caller's own permissions, not
		// the service account's.
		if _, err := objectsStore.Fetch(objType, objID, caller.UserID, caller.IsAdmin()); err != nil {
			if errors.Is(err, store.ErrObjectNotFound) {
				http.Error(w, formDataNotFound, http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		entry, err := entriesStore.Latest(formID, objType, objID)
		if err != nil && !errors.Is(err, store.ErrEntryNotFound) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": entry})
	}
}

func handleGetFormDataHistory(entriesStore store.EntriesStore, formsStore store.FormsStore, objectsStore store.ObjectsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		vars := mux.Vars(r)
		formID, err := url.PathUnescape(vars["form_id"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		objType := vars["obj_type"]
		if !validObjType(objType) {
			http.Error(w, fmt.Sprintf("%s not a valid obj_type", objType), http.StatusBadRequest)
			return
		}

		objID, err := strconv.ParseInt(vars["obj_id"], 10, 64)
		if err != nil {
			http.Error(w, "Object ID must be a long integer", http.StatusBadRequest)
			return
		}

		if _, err := objectsStore.Fetch(objType, objID, caller.UserID, caller.IsAdmin()); err != nil {
			if errors.Is(err, store.ErrObjectNotFound) {
				http.Error(w, formDataHistoryNotFound, http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		entries, err := entriesStore.History(formID, objType, objID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		versions, err := formsStore.Versions(formID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"data":     entries,
			"versions": versions,
		})
	}
}

type saveFormDataRequest struct {
	FormTimestamp json.RawMessage `json:"formTimestamp"`
	Data          json.RawMessage `json:"data"`
	Message       string          `json:"message"`
}

func handleSaveFormData(entriesStore store.EntriesStore, objectsStore store.ObjectsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		vars := mux.Vars(r)
		formID, err := url.PathUnescape(vars["form_id"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		objType := vars["obj_type"]
		if !validObjType(objType) {
			http.Error(w, fmt.Sprintf("%s not a valid obj_type", objType), http.StatusBadRequest)
			return
		}

		objID, err := strconv.ParseInt(vars["obj_id"], 10, 64)
		if err != nil {
			http.Error(w, "Object ID must be a long integer", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req saveFormDataRequest
		if err := json.Unmarshal(body, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		clientIP := elevate.ClientIP(r)

		obj, err := objectsStore.Fetch(objType, objID, caller.UserID, caller.IsAdmin())
		if err != nil {
			if errors.Is(err, store.ErrObjectNotFound) {
				http.Error(w, formDataNotFound, http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if !obj.CanAnnotate {
			audit.Log(audit.DataSubmitEvent{
				UserID:       caller.UserID,
				ClientIP:     clientIP,
				FormID:       formID,
				ObjType:      objType,
				ObjID:        objID,
				Success:      false,
				ErrorMessage: "no annotate permission",
			})
			http.Error(w, "This user does not have permission to submit data to this form", http.StatusUnauthorized)
			return
		}

		err = entriesStore.Append(store.NewEntry{
			FormID:        formID,
			FormTimestamp: rawText(req.FormTimestamp),
			ObjType:       objType,
			ObjID:         objID,
			Data:          string(req.Data),
			Message:       req.Message,
			ChangedBy:     caller.UserID,
			ChangedAt:     time.Now().UTC(),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Mirror the submission onto the object itself, recorded under
		// the service identity that performed the write.
		if err := entriesStore.Annotate(objType, objID, formID, string(req.Data), serviceUID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		audit.Log(audit.DataSubmitEvent{
			UserID:   caller.UserID,
			ClientIP: clientIP,
			FormID:   formID,
			ObjType:  objType,
			ObjID:    objID,
			Success:  true,
		})

		w.WriteHeader(http.StatusOK)
	}
}
