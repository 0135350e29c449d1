package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormAssignments(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAssignmentsStore(db)

	mock.ExpectQuery(`FROM form_assignments`).
		WithArgs("metadata").
		WillReturnRows(sqlmock.NewRows([]string{"group_id"}).
			AddRow(int64(1)).
			AddRow(int64(3)))

	groupIDs, err := s.FormAssignments("metadata")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, groupIDs)
}

func TestGroupAssignmentsSeedsEveryGroup(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAssignmentsStore(db)

	mock.ExpectQuery(`FROM form_assignments`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"form_id", "group_id"}).
			AddRow("metadata", int64(1)).
			AddRow("screening", int64(1)))

	assignments, err := s.GroupAssignments([]int64{1, 2})
	require.NoError(t, err)

	// A managed group with no assignments still appears, with an empty
	// list rather than missing.
	assert.Equal(t, map[string][]string{
		"1": {"metadata", "screening"},
		"2": {},
	}, assignments)
}

func TestGroupAssignmentsNoGroups(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewAssignmentsStore(db)

	assignments, err := s.GroupAssignments(nil)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestReconcile(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAssignmentsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM form_assignments`).
		WithArgs("metadata", int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "form_assignments" .+ ON CONFLICT`).
		WithArgs("metadata", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Reconcile("metadata", []int64{3}, []int64{1, 2})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileAddOnly(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAssignmentsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "form_assignments" .+ ON CONFLICT`).
		WithArgs("metadata", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Reconcile("metadata", []int64{4}, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcileRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewAssignmentsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM form_assignments`).
		WithArgs("metadata", int64(1)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := s.Reconcile("metadata", nil, []int64{1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
