// Package gorm provides GORM-backed implementations of the store
// interfaces against PostgreSQL.
package gorm
