// Package server provides the HTTP server for the forms plugin.
//
// The Server struct bundles the router, the database handle, the session
// store, the elevation gate and the storage interfaces the endpoints
// consume. Endpoints are registered via the endpoints subpackage:
//
//	srv := server.NewServer(db, "0.0.0.0", "8000")
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
package server
