package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/forms-in-go/pkg/server/store"
)

func objectRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"obj_type", "obj_id", "group_id", "owner_id", "name", "can_annotate"})
}

func TestFetchVisibleObject(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewObjectsStore(db)

	mock.ExpectQuery(`FROM host_objects`).
		WithArgs("Dataset", int64(12)).
		WillReturnRows(objectRows().
			AddRow("Dataset", int64(12), int64(3), int64(7), "cells", true))
	mock.ExpectQuery(`FROM group_memberships`).
		WithArgs(int64(5), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	obj, err := s.Fetch("Dataset", 12, 5, false)
	require.NoError(t, err)
	assert.Equal(t, "cells", obj.Name)
	assert.True(t, obj.CanAnnotate)
}

func TestFetchAbsentObject(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewObjectsStore(db)

	mock.ExpectQuery(`FROM host_objects`).
		WithArgs("Dataset", int64(99)).
		WillReturnRows(objectRows())

	_, err := s.Fetch("Dataset", 99, 5, false)
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

func TestFetchInvisibleObject(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewObjectsStore(db)

	mock.ExpectQuery(`FROM host_objects`).
		WithArgs("Dataset", int64(12)).
		WillReturnRows(objectRows().
			AddRow("Dataset", int64(12), int64(3), int64(7), "cells", true))
	mock.ExpectQuery(`FROM group_memberships`).
		WithArgs(int64(5), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	// Same error as absent, so existence does not leak across groups.
	_, err := s.Fetch("Dataset", 12, 5, false)
	assert.ErrorIs(t, err, store.ErrObjectNotFound)
}

func TestFetchAsAdminSkipsMembership(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewObjectsStore(db)

	mock.ExpectQuery(`FROM host_objects`).
		WithArgs("Dataset", int64(12)).
		WillReturnRows(objectRows().
			AddRow("Dataset", int64(12), int64(3), int64(7), "cells", false))

	obj, err := s.Fetch("Dataset", 12, 5, true)
	require.NoError(t, err)
	assert.True(t, obj.CanAnnotate, "admins can always annotate")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchOwnerCanAnnotate(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewObjectsStore(db)

	mock.ExpectQuery(`FROM host_objects`).
		WithArgs("Plate", int64(4)).
		WillReturnRows(objectRows().
			AddRow("Plate", int64(4), int64(3), int64(5), "wells", false))
	mock.ExpectQuery(`FROM group_memberships`).
		WithArgs(int64(5), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	obj, err := s.Fetch("Plate", 4, 5, false)
	require.NoError(t, err)
	assert.True(t, obj.CanAnnotate, "owners can annotate even when the group flag is off")
}
