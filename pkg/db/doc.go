// Package db provides the database connection for the plugin.
package db
