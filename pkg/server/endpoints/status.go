package endpoints

import (
	"net/http"
	"os"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
)

// StatusResponse represents the response from /forms/status
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoint registers the status endpoint. It requires no
// session so deployment tooling can poll it before any user exists.
func RegisterStatusEndpoint(s *server.Server) {
	// GET /forms/status - Health check (no auth required)
	s.Router.HandleFunc("/forms/status", handleStatus(s.DB)).Methods("GET")
}

func handleStatus(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("FORMS_VERSION_DISPLAY")
		if version == "" {
			version = "1.0.0"
		}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:  "error",
				Version: version,
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: version,
		})
	}
}
