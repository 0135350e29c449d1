package endpoints

import (
	"github.com/doodlesbykumbi/forms-in-go/pkg/server"
)

// RegisterAll registers all form endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoint(srv)
	RegisterFormsEndpoints(srv)
	RegisterFormDataEndpoints(srv)
	RegisterAssignmentsEndpoints(srv)
	RegisterGroupsEndpoints(srv)
	RegisterUsersEndpoint(srv)
}
