// Package main provides formsctl, the CLI for the forms server.
//
// The forms server lets users design forms against JSON schemas, assign
// them to groups, attach them to Projects, Datasets, Plates and Screens,
// and keep every submission as an append-only history.
//
// # Architecture
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: storage interfaces and their GORM implementations
//   - pkg/elevate: the privilege-elevation gate around form operations
//   - pkg/session: host sessions and authentication
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	formsctl db migrate
//
//	# Verify the service account
//	formsctl service-account check
//
//	# Start the server
//	formsctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - FORMS_SERVICE_ACCOUNT_USER: service account username (default formmaster)
//   - FORMS_SERVICE_ACCOUNT_PASSWORD: service account password
//   - FORMS_SESSION_TOKEN_SECRET: HMAC secret for session tokens
//   - FORMS_LOG_LEVEL: log level (debug enables SQL logging)
//   - PORT: server port (default: 8000)
package main
