package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/forms-in-go/pkg/audit"
	"github.com/doodlesbykumbi/forms-in-go/pkg/elevate"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

func RegisterFormsEndpoints(s *server.Server) {
	formsStore := s.FormsStore

	formsRouter := s.Router.PathPrefix("/forms").Subrouter()
	formsRouter.Use(s.SessionMiddleware.Middleware)

	// GET /forms/list - Current version of every form
	formsRouter.HandleFunc("/list", s.Elevator.Wrap(handleListForms(formsStore))).Methods("GET")

	// GET /forms/list_applicable(/{obj_type}) - Forms assigned to the caller's active group
	formsRouter.HandleFunc("/list_applicable", s.Elevator.Wrap(handleListApplicableForms(formsStore))).Methods("GET")
	formsRouter.HandleFunc("/list_applicable/{obj_type}", s.Elevator.Wrap(handleListApplicableForms(formsStore))).Methods("GET")

	// GET /forms/get_form/{form_id} - Current version of one form
	formsRouter.HandleFunc("/get_form/{form_id:.+}", s.Elevator.Wrap(handleGetForm(formsStore))).Methods("GET")

	// GET /forms/get_formid_editable/{form_id} - Existence/ownership probe for the designer
	formsRouter.HandleFunc("/get_formid_editable/{form_id:.+}", s.Elevator.Wrap(handleFormIDEditable(formsStore))).Methods("GET")

	// POST /forms/save_form - Append a new version
	formsRouter.HandleFunc("/save_form", s.Elevator.Wrap(handleSaveForm(formsStore))).Methods("POST")
}

func handleListForms(formsStore store.FormsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		forms, err := formsStore.ListForms(0, "")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
	}
}

func handleListApplicableForms(formsStore store.FormsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		objType := mux.Vars(r)["obj_type"]
		if objType != "" && !validObjType(objType) {
			http.Error(w, fmt.Sprintf("%s not a valid obj_type", objType), http.StatusBadRequest)
			return
		}

		forms, err := formsStore.ListForms(caller.ActiveGroup, objType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
	}
}

func handleGetForm(formsStore store.FormsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		formID, err := url.PathUnescape(mux.Vars(r)["form_id"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		form, err := formsStore.CurrentVersion(formID)
		if err != nil {
			if errors.Is(err, store.ErrFormNotFound) {
				http.Error(w, fmt.Sprintf("Form: %s, not found", formID), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"form": form})
	}
}

func handleFormIDEditable(formsStore store.FormsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		formID, err := url.PathUnescape(mux.Vars(r)["form_id"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		exists := false
		editable := true
		owners := []int64{}

		form, err := formsStore.CurrentVersion(formID)
		if err != nil && !errors.Is(err, store.ErrFormNotFound) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err == nil {
			exists = true
			editable = form.Editable
			owners = form.Owners
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"exists":   exists,
			"editable": editable,
			"owners":   owners,
		})
	}
}

type saveFormRequest struct {
	ID       *string         `json:"id"`
	Schema   json.RawMessage `json:"schema"`
	UISchema json.RawMessage `json:"uiSchema"`
	Message  string          `json:"message"`
	ObjTypes []string        `json:"objTypes"`
}

func handleSaveForm(formsStore store.FormsStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req saveFormRequest
		if err := json.Unmarshal(body, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.ID == nil {
			http.Error(w, "Adding or updating a form requires a formId to be specified", http.StatusBadRequest)
			return
		}
		formID := strings.TrimSpace(*req.ID)
		if formID == "" {
			http.Error(w, "Adding or updating a form requires a formId to be specified", http.StatusBadRequest)
			return
		}

		clientIP := elevate.ClientIP(r)

		// An existing form may only be updated by an owner, with host
		// admins exempt. A form that does not exist yet is claimable by
		// anyone; its first author becomes an owner.
		existing, err := formsStore.CurrentVersion(formID)
		if err != nil && !errors.Is(err, store.ErrFormNotFound) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if existing != nil {
			if !caller.IsAdmin() && !containsInt64(existing.Owners, caller.UserID) {
				audit.Log(audit.FormUpdateEvent{
					UserID:       caller.UserID,
					ClientIP:     clientIP,
					FormID:       formID,
					Success:      false,
					ErrorMessage: "Updating a form requires ownership",
				})
				http.Error(w, "Updating a form requires ownership", http.StatusUnauthorized)
				return
			}
		}

		for _, objType := range req.ObjTypes {
			if !validObjType(objType) {
				http.Error(w, fmt.Sprintf("%s not a valid obj_type", objType), http.StatusBadRequest)
				return
			}
		}

		form, err := formsStore.AddVersion(store.NewVersion{
			FormID:    formID,
			Schema:    string(req.Schema),
			UISchema:  string(req.UISchema),
			Message:   req.Message,
			AuthorID:  caller.UserID,
			Timestamp: time.Now().UTC(),
			ObjTypes:  req.ObjTypes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		audit.Log(audit.FormUpdateEvent{
			UserID:   caller.UserID,
			ClientIP: clientIP,
			FormID:   formID,
			Success:  true,
		})

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"form": form})
	}
}
