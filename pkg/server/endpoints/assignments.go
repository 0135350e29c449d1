package endpoints

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/doodlesbykumbi/forms-in-go/pkg/audit"
	"github.com/doodlesbykumbi/forms-in-go/pkg/elevate"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

func RegisterAssignmentsEndpoints(s *server.Server) {
	assignmentsStore := s.AssignmentsStore
	directoryStore := s.DirectoryStore

	assignRouter := s.Router.PathPrefix("/forms").Subrouter()
	assignRouter.Use(s.SessionMiddleware.Middleware)

	// GET /forms/get_form_assignments - Assignment map over the caller's managed groups
	assignRouter.HandleFunc(
		"/get_form_assignments",
		s.Elevator.Wrap(handleGetFormAssignments(assignmentsStore, directoryStore)),
	).Methods("GET")

	// POST /forms/save_form_assignment - Reconcile a form's group assignment set
	assignRouter.HandleFunc(
		"/save_form_assignment",
		s.Elevator.Wrap(handleSaveFormAssignment(assignmentsStore, directoryStore)),
	).Methods("POST")
}

func handleGetFormAssignments(assignmentsStore store.AssignmentsStore, directoryStore store.DirectoryStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		assignments, err := managedAssignments(assignmentsStore, directoryStore, caller)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
	}
}

type saveAssignmentRequest struct {
	FormID   *string           `json:"formId"`
	GroupIDs []json.RawMessage `json:"groupIds"`
}

func handleSaveFormAssignment(assignmentsStore store.AssignmentsStore, directoryStore store.DirectoryStore) elevate.Handler {
	return func(w http.ResponseWriter, r *http.Request, caller, elevated *session.Session, serviceUID int64) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req saveAssignmentRequest
		if err := json.Unmarshal(body, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.FormID == nil {
			http.Error(w, "Adding or updating a form requires a formId to be specified", http.StatusBadRequest)
			return
		}
		formID := strings.TrimSpace(*req.FormID)
		if formID == "" {
			http.Error(w, "Adding or updating a form requires a formId to be specified", http.StatusBadRequest)
			return
		}

		requested := make([]int64, 0, len(req.GroupIDs))
		for _, raw := range req.GroupIDs {
			id, err := parseID(raw)
			if err != nil {
				http.Error(w, "Group ID must be a long integer", http.StatusBadRequest)
				return
			}
			requested = append(requested, id)
		}

		clientIP := elevate.ClientIP(r)

		current, err := assignmentsStore.FormAssignments(formID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		groups, err := directoryStore.ManagedGroups(caller.UserID, caller.IsAdmin())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		owned := make([]int64, 0, len(groups))
		for _, g := range groups {
			owned = append(owned, g.ID)
		}

		toAdd, toRemove, disallowed := reconcileSets(current, requested, owned)

		// A single unmanaged group rejects the whole request; partial
		// application would leave the assignment set in a state the
		// caller never asked for.
		if len(disallowed) > 0 {
			message := fmt.Sprintf("Can not assign to groups: %v", disallowed)
			audit.Log(audit.AssignmentEvent{
				UserID:       caller.UserID,
				ClientIP:     clientIP,
				FormID:       formID,
				Success:      false,
				ErrorMessage: message,
			})
			http.Error(w, message, http.StatusUnauthorized)
			return
		}

		if len(toAdd) > 0 || len(toRemove) > 0 {
			if err := assignmentsStore.Reconcile(formID, toAdd, toRemove); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		audit.Log(audit.AssignmentEvent{
			UserID:   caller.UserID,
			ClientIP: clientIP,
			FormID:   formID,
			Added:    toAdd,
			Removed:  toRemove,
			Success:  true,
		})

		assignments, err := managedAssignments(assignmentsStore, directoryStore, caller)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
	}
}

// managedAssignments returns the assignment map restricted to the groups
// the caller manages.
func managedAssignments(assignmentsStore store.AssignmentsStore, directoryStore store.DirectoryStore, caller *session.Session) (map[string][]string, error) {
	groups, err := directoryStore.ManagedGroups(caller.UserID, caller.IsAdmin())
	if err != nil {
		return nil, err
	}

	groupIDs := make([]int64, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID)
	}

	return assignmentsStore.GroupAssignments(groupIDs)
}

// reconcileSets computes the mutation that moves a form's assignment set
// towards the requested set, touching only groups the caller manages:
//
//	toAdd      = requested - current
//	toRemove   = (owned - requested) n current
//	disallowed = requested - owned
//
// Unmanaged groups already assigned are preserved; the caller cannot see
// them, so their absence from the request carries no intent.
func reconcileSets(current, requested, owned []int64) (toAdd, toRemove, disallowed []int64) {
	currentSet := toSet(current)
	requestedSet := toSet(requested)
	ownedSet := toSet(owned)

	for id := range requestedSet {
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
		if !ownedSet[id] {
			disallowed = append(disallowed, id)
		}
	}
	for id := range ownedSet {
		if !requestedSet[id] && currentSet[id] {
			toRemove = append(toRemove, id)
		}
	}

	sortInt64s(toAdd)
	sortInt64s(toRemove)
	sortInt64s(disallowed)
	return toAdd, toRemove, disallowed
}

func toSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sortInt64s(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
