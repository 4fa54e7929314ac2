package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courseColumns = []string{"code", "title", "description", "units", "prerequisites",
	"corequisites", "not_for_major", "not_for_taken", "is_graded", "original", "parsed"}

func writeDump(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("COURSE_DATA_FILENAME", path)
}

func TestSyncLoadsNewDataset(t *testing.T) {
	writeDump(t, `{"version": 2, "courses": [
		{"code": "COMP1001", "title": "Introduction to Computing", "units": 3, "is_graded": true, "parsed": true}
	]}`)

	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer poolMock.Close()

	poolMock.ExpectQuery("SELECT value FROM config").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("1"))
	poolMock.ExpectBegin()
	poolMock.ExpectExec("DELETE FROM courses").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	poolMock.ExpectCopyFrom(pgx.Identifier{"courses"}, courseColumns).
		WillReturnResult(1)
	poolMock.ExpectExec("INSERT INTO config").
		WithArgs("2").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	poolMock.ExpectCommit()

	require.NoError(t, Sync(context.Background(), poolMock))
	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestSyncSkipsCurrentDataset(t *testing.T) {
	writeDump(t, `{"version": 2, "courses": []}`)

	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer poolMock.Close()

	poolMock.ExpectQuery("SELECT value FROM config").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("2"))

	require.NoError(t, Sync(context.Background(), poolMock))
	require.NoError(t, poolMock.ExpectationsWereMet())
}

func TestSyncRejectsBadVersion(t *testing.T) {
	writeDump(t, `{"version": 0, "courses": []}`)

	poolMock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer poolMock.Close()

	assert.Error(t, Sync(context.Background(), poolMock))
	require.NoError(t, poolMock.ExpectationsWereMet())
}
