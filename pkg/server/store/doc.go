// Package store defines the storage interfaces consumed by the HTTP
// endpoints. The gorm subpackage provides the PostgreSQL implementations.
package store
