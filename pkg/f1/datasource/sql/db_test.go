package sql

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(...any)          {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Info(...any)           {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Error(...any)          {}
func (nopLogger) Errorf(string, ...any) {}

type recordingMetrics struct {
	counters   map[string]int
	histograms map[string]int
	gauges     map[string]float64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counters: map[string]int{}, histograms: map[string]int{}, gauges: map[string]float64{}}
}

func (m *recordingMetrics) IncrementCounter(_ context.Context, name string, _ ...string) {
	m.counters[name]++
}

func (m *recordingMetrics) RecordHistogram(_ context.Context, name string, _ float64, _ ...string) {
	m.histograms[name]++
}

func (m *recordingMetrics) SetGauge(name string, value float64, _ ...string) {
	m.gauges[name] = value
}

func mysqlConfig() *DBConfig {
	return &DBConfig{Dialect: dialectMySQL, HostName: "localhost", Port: "3306", User: "root", Database: "f1_db",
		MaxOpenConns: 1, MaxIdleConns: 1}
}

func newMockDB(t *testing.T, cfg *DBConfig) (*DB, sqlmock.Sqlmock, *recordingMetrics) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() { _ = mockDB.Close() })

	m := newRecordingMetrics()
	db := New(cfg, nopLogger{}, m, WithOpener(func(string, string) (*sql.DB, error) {
		return mockDB, nil
	}))

	return db, mock, m
}

func TestDB_ExecuteQuery(t *testing.T) {
	db, mock, m := newMockDB(t, mysqlConfig())

	mock.ExpectQuery("SELECT DriverID, FirstName FROM Drivers WHERE Nationality = ?").
		WithArgs("British").
		WillReturnRows(sqlmock.NewRows([]string{"DriverID", "FirstName"}).
			AddRow(1, "Lewis").
			AddRow(2, "Lando"))

	rows, err := db.ExecuteQuery(context.Background(), "SELECT DriverID, FirstName FROM Drivers WHERE Nationality = ?",
		"British")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"DriverID", "FirstName"}, rows.Columns())
	assert.Equal(t, int64(1), rows[0].Value("DriverID"))
	assert.Equal(t, "Lando", rows[1].String("FirstName"))
	assert.Equal(t, 1, m.histograms["app_sql_stats"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ExecuteQuery_Empty(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	mock.ExpectQuery("SELECT * FROM Races").WillReturnRows(sqlmock.NewRows([]string{"RaceID"}))

	rows, err := db.ExecuteQuery(context.Background(), "SELECT * FROM Races")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDB_ExecuteQuery_Error(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	mock.ExpectQuery("SELECT * FROM Nope").WillReturnError(errors.New("table f1_db.Nope doesn't exist"))

	rows, err := db.ExecuteQuery(context.Background(), "SELECT * FROM Nope")

	require.Error(t, err)
	assert.Nil(t, rows)
	require.ErrorIs(t, err, ErrQuery)
	assert.Contains(t, err.Error(), "doesn't exist")

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 500, qe.StatusCode())
}

func TestDB_CallProcedure_FlattensResultSets(t *testing.T) {
	db, mock, m := newMockDB(t, mysqlConfig())

	first := sqlmock.NewRows([]string{"Race", "Points"}).
		AddRow("Bahrain", 25).
		AddRow("Jeddah", 18).
		AddRow("Melbourne", 0)
	second := sqlmock.NewRows([]string{"Total"}).
		AddRow(43).
		AddRow(3)

	mock.ExpectQuery("CALL GetDriverStats(?)").WithArgs(1).WillReturnRows(first, second)

	rows, err := db.CallProcedure(context.Background(), "GetDriverStats", 1)
	require.NoError(t, err)

	require.Len(t, rows, 5)
	assert.Equal(t, "Bahrain", rows[0].String("Race"))
	assert.Equal(t, "Melbourne", rows[2].String("Race"))
	assert.Equal(t, int64(43), rows[3].Value("Total"))
	assert.Equal(t, int64(3), rows[4].Value("Total"))
	assert.Equal(t, 1, m.counters["app_procedure_calls"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_CallProcedure_NoResultSets(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	mock.ExpectQuery("CALL RefreshStandings()").WillReturnRows(sqlmock.NewRows(nil))

	rows, err := db.CallProcedure(context.Background(), "RefreshStandings")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDB_CallProcedure_Errors(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	mock.ExpectQuery("CALL GetTeamPerformance(?)").WithArgs(99).
		WillReturnError(errors.New("PROCEDURE f1_db.GetTeamPerformance does not exist"))

	rows, err := db.CallProcedure(context.Background(), "GetTeamPerformance", 99)
	require.ErrorIs(t, err, ErrProcedure)
	assert.Nil(t, rows)

	_, err = db.CallProcedure(context.Background(), "Drop Table;--", 1)
	require.ErrorIs(t, err, ErrProcedure)
	require.ErrorIs(t, err, errInvalidProcedureName)
}

func TestDB_CallProcedure_MidStreamError(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	rs := sqlmock.NewRows([]string{"Race"}).
		AddRow("Bahrain").
		AddRow("Jeddah").
		RowError(1, errors.New("connection reset"))

	mock.ExpectQuery("CALL GetRaceResults(?)").WithArgs(3).WillReturnRows(rs)

	rows, err := db.CallProcedure(context.Background(), "GetRaceResults", 3)
	require.ErrorIs(t, err, ErrProcedure)
	assert.Nil(t, rows)
}

func TestDB_ProcedureStatement(t *testing.T) {
	tests := []struct {
		dialect  string
		argc     int
		expected string
		err      error
	}{
		{dialectMySQL, 0, "CALL GetDriverStats()", nil},
		{dialectMySQL, 2, "CALL GetDriverStats(?, ?)", nil},
		{dialectPostgres, 2, "SELECT * FROM GetDriverStats($1, $2)", nil},
		{dialectSQLite, 1, "", errNoProcedures},
		{"oracle", 1, "", errUnsupportedDialect},
	}

	for i, tc := range tests {
		db := New(&DBConfig{Dialect: tc.dialect}, nil, nil)

		stmt, err := db.procedureStatement("GetDriverStats", tc.argc)

		assert.Equal(t, tc.expected, stmt, "TEST[%d] Failed: %s", i, tc.dialect)
		assert.ErrorIs(t, err, tc.err, "TEST[%d] Failed: %s", i, tc.dialect)
	}
}

func TestDB_ExecuteMutation_Commits(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO Drivers (FirstName, LastName) VALUES (?, ?)").
		WithArgs("Oscar", "Piastri").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	res, err := db.ExecuteMutation(context.Background(), "INSERT INTO Drivers (FirstName, LastName) VALUES (?, ?)",
		"Oscar", "Piastri")
	require.NoError(t, err)

	assert.Equal(t, MutationResult{RowsAffected: 1, LastInsertID: 21}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ExecuteMutation_RollsBackOnFailure(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO Results (RaceID) VALUES (?)").
		WithArgs(999).
		WillReturnError(errors.New("Cannot add or update a child row: a foreign key constraint fails"))
	mock.ExpectRollback()

	res, err := db.ExecuteMutation(context.Background(), "INSERT INTO Results (RaceID) VALUES (?)", 999)

	require.ErrorIs(t, err, ErrMutation)
	assert.Contains(t, err.Error(), "foreign key")
	assert.Equal(t, MutationResult{}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ExecuteMutation_CommitFailure(t *testing.T) {
	db, mock, _ := newMockDB(t, mysqlConfig())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM Drivers WHERE DriverID = ?").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("deadlock"))

	_, err := db.ExecuteMutation(context.Background(), "DELETE FROM Drivers WHERE DriverID = ?", 1)
	require.ErrorIs(t, err, ErrMutation)
}

func TestDB_ConnectionUnavailable(t *testing.T) {
	attempts := 0
	db := New(mysqlConfig(), nopLogger{}, nil, WithOpener(func(string, string) (*sql.DB, error) {
		attempts++
		return nil, errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")
	}))

	ctx := context.Background()

	rows, err := db.ExecuteQuery(ctx, "SELECT 1")
	require.ErrorIs(t, err, ErrConnectionUnavailable)
	assert.Nil(t, rows)

	rows, err = db.CallProcedure(ctx, "GetDriverStats", 1)
	require.ErrorIs(t, err, ErrConnectionUnavailable)
	assert.Nil(t, rows)

	_, err = db.ExecuteMutation(ctx, "DELETE FROM Drivers")
	require.ErrorIs(t, err, ErrConnectionUnavailable)

	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 503, ce.StatusCode())

	// each call makes exactly one attempt and failures are not remembered
	assert.Equal(t, 3, attempts)
}

func TestDB_PingFailureIsNotCached(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	defer mockDB.Close()

	db := New(mysqlConfig(), nopLogger{}, nil, WithOpener(func(string, string) (*sql.DB, error) {
		return mockDB, nil
	}))

	mock.ExpectPing().WillReturnError(errors.New("server has gone away"))

	_, err = db.Conn(context.Background())
	require.ErrorIs(t, err, ErrConnectionUnavailable)

	db.mu.Lock()
	assert.Nil(t, db.conn)
	db.mu.Unlock()
}

func TestDB_ConnOpensOnce(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)

	defer mockDB.Close()

	opens := 0
	db := New(mysqlConfig(), nopLogger{}, nil, WithOpener(func(string, string) (*sql.DB, error) {
		opens++
		return mockDB, nil
	}))

	first, err := db.Conn(context.Background())
	require.NoError(t, err)

	second, err := db.Conn(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, opens)
}

func TestDB_Rebind(t *testing.T) {
	pg := New(&DBConfig{Dialect: dialectPostgres}, nil, nil)
	my := New(&DBConfig{Dialect: dialectMySQL}, nil, nil)

	query := "SELECT * FROM Results WHERE RaceID = ? AND DriverID = ?"

	assert.Equal(t, "SELECT * FROM Results WHERE RaceID = $1 AND DriverID = $2", pg.rebind(query))
	assert.Equal(t, query, my.rebind(query))
}

func TestDB_HealthCheck(t *testing.T) {
	db, _, _ := newMockDB(t, mysqlConfig())

	h := db.HealthCheck(context.Background())
	assert.Equal(t, "UP", h.Status)
	assert.Equal(t, "localhost:3306/f1_db", h.Details["host"])

	down := New(mysqlConfig(), nopLogger{}, nil, WithOpener(func(string, string) (*sql.DB, error) {
		return nil, errors.New("refused")
	}))

	h = down.HealthCheck(context.Background())
	assert.Equal(t, "DOWN", h.Status)
	assert.Contains(t, h.Details["error"], "refused")
}

func TestGetOperationType(t *testing.T) {
	assert.Equal(t, "SELECT", getOperationType("  select * from Drivers"))
	assert.Equal(t, "CALL", getOperationType("CALL GetDriverStats(?)"))
	assert.Empty(t, getOperationType("   "))
}

func newSQLiteDB(t *testing.T) *DB {
	t.Helper()

	db := New(&DBConfig{
		Dialect:      dialectSQLite,
		Database:     filepath.Join(t.TempDir(), "f1.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, nopLogger{}, newRecordingMetrics())

	t.Cleanup(func() { _ = db.Close() })

	_, err := db.ExecuteMutation(context.Background(), `CREATE TABLE Drivers (
		DriverID INTEGER PRIMARY KEY AUTOINCREMENT,
		FirstName TEXT NOT NULL,
		LastName TEXT NOT NULL,
		Nationality TEXT
	)`)
	require.NoError(t, err)

	return db
}

func TestDB_SQLite_WriteThenRead(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	res, err := db.ExecuteMutation(ctx, "INSERT INTO Drivers (FirstName, LastName, Nationality) VALUES (?, ?, ?)",
		"Max", "Verstappen", "Dutch")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Equal(t, int64(1), res.LastInsertID)

	rows, err := db.ExecuteQuery(ctx, "SELECT DriverID, FirstName, Nationality FROM Drivers WHERE LastName = ?",
		"Verstappen")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Max", rows[0].String("FirstName"))

	again, err := db.ExecuteQuery(ctx, "SELECT DriverID, FirstName, Nationality FROM Drivers WHERE LastName = ?",
		"Verstappen")
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}

func TestDB_SQLite_FailedMutationLeavesNoRow(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	_, err := db.ExecuteMutation(ctx, "INSERT INTO Drivers (FirstName, LastName) VALUES (?, NULL)", "Nobody")
	require.ErrorIs(t, err, ErrMutation)

	rows, err := db.ExecuteQuery(ctx, "SELECT COUNT(*) AS n FROM Drivers")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows[0].Value("n"))

	_, err = db.CallProcedure(ctx, "GetDriverStats", 1)
	require.ErrorIs(t, err, errNoProcedures)
}
