package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/forms-in-go/pkg/elevate"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/forms-in-go/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

type Server struct {
	Router            *mux.Router
	DB                *gorm.DB
	Sessions          *session.Store
	Elevator          *elevate.Elevator
	SessionMiddleware *middleware.SessionAuthenticator

	FormsStore       store.FormsStore
	EntriesStore     store.EntriesStore
	AssignmentsStore store.AssignmentsStore
	DirectoryStore   store.DirectoryStore
	ObjectsStore     store.ObjectsStore

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	sessions := session.NewStore(db)

	return &Server{
		Router:            router,
		DB:                db,
		Sessions:          sessions,
		Elevator:          elevate.NewElevator(sessions),
		SessionMiddleware: middleware.NewSessionAuthenticator(sessions),
		FormsStore:        gormstore.NewFormsStore(db),
		EntriesStore:      gormstore.NewEntriesStore(db),
		AssignmentsStore:  gormstore.NewAssignmentsStore(db),
		DirectoryStore:    gormstore.NewDirectoryStore(db),
		ObjectsStore:      gormstore.NewObjectsStore(db),
		srv:               srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
