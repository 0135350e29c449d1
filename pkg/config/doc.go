// Package config manages plugin configuration.
//
// Configuration is loaded from a YAML file and overridden by FORMS_*
// environment variables, with per-attribute source tracking so operators
// can see where each effective value came from.
//
// # Sources (highest precedence first)
//
//  1. Environment variables (FORMS_SERVICE_ACCOUNT_USER, ...)
//  2. Config file (/etc/forms/config/forms.yml by default)
//  3. Built-in defaults
//
// The service account credentials configured here are what the elevation
// gate authenticates as; DATABASE_URL is deliberately not part of this
// package and is consumed directly by pkg/db.
package config
