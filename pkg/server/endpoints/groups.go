package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

// RegisterGroupsEndpoints registers the managed groups endpoint. It runs
// entirely under the caller's own identity; no elevation is involved.
func RegisterGroupsEndpoints(s *server.Server) {
	directoryStore := s.DirectoryStore

	groupsRouter := s.Router.PathPrefix("/forms").Subrouter()
	groupsRouter.Use(s.SessionMiddleware.Middleware)

	// GET /forms/get_managed_groups - Groups the caller administers
	groupsRouter.HandleFunc("/get_managed_groups", handleManagedGroups(directoryStore)).Methods("GET")
}

func handleManagedGroups(directoryStore store.DirectoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := session.Get(r.Context())
		if !ok {
			http.Error(w, "Unable to determine caller identity", http.StatusUnauthorized)
			return
		}

		groups, err := directoryStore.ManagedGroups(caller.UserID, caller.IsAdmin())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
	}
}
