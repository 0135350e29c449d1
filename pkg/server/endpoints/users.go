package endpoints

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

// RegisterUsersEndpoint registers the user lookup endpoint. Like the
// groups endpoint it runs under the caller's own identity.
func RegisterUsersEndpoint(s *server.Server) {
	directoryStore := s.DirectoryStore

	usersRouter := s.Router.PathPrefix("/forms").Subrouter()
	usersRouter.Use(s.SessionMiddleware.Middleware)

	// POST /forms/get_users - Resolve user ids to user records
	usersRouter.HandleFunc("/get_users", handleGetUsers(directoryStore)).Methods("POST")
}

type getUsersRequest struct {
	UserIDs []json.RawMessage `json:"userIds"`
}

func handleGetUsers(directoryStore store.DirectoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.Get(r.Context()); !ok {
			http.Error(w, "Unable to determine caller identity", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req getUsersRequest
		if err := json.Unmarshal(body, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userIDs := make([]int64, 0, len(req.UserIDs))
		for _, raw := range req.UserIDs {
			id, err := parseID(raw)
			if err != nil {
				http.Error(w, "User ID must be a long integer", http.StatusBadRequest)
				return
			}
			userIDs = append(userIDs, id)
		}

		users, err := directoryStore.Users(userIDs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"users": users})
	}
}
