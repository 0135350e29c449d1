// Package model defines the database models for the forms namespace and
// the host application tables the plugin reads.
//
// The forms namespace (form_versions, form_entries, form_assignments,
// object_annotations) is owned by this plugin and created by the migrations
// under db/. The host tables (experimenters, experimenter_groups,
// group_memberships, host_objects) belong to the host application; the
// plugin only ever reads them.
package model
